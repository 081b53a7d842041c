package repository

import (
	"errors"
	"strings"

	"github.com/webild-pos/internal/models"

	"gorm.io/gorm"
)

// StoreRepository 商户数据访问接口
type StoreRepository interface {
	GetBySlug(slug string) (*models.Store, error)
	GetByID(id uint) (*models.Store, error)
	GetByOwner(ownerID string) (*models.Store, error)
	Create(store *models.Store) error
	Update(store *models.Store) error
	CountBySlug(slug string, excludeID *uint) (int64, error)
}

// GormStoreRepository GORM 实现
type GormStoreRepository struct {
	db *gorm.DB
}

// NewStoreRepository 创建商户仓库
func NewStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// GetBySlug 根据店铺标识获取商户
func (r *GormStoreRepository) GetBySlug(slug string) (*models.Store, error) {
	var store models.Store
	if err := r.db.Where("slug = ?", strings.ToLower(strings.TrimSpace(slug))).First(&store).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

// GetByID 根据 ID 获取商户
func (r *GormStoreRepository) GetByID(id uint) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

// GetByOwner 获取店主名下的商户
func (r *GormStoreRepository) GetByOwner(ownerID string) (*models.Store, error) {
	var store models.Store
	if err := r.db.Where("owner_id = ?", ownerID).Order("id ASC").First(&store).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

// Create 创建商户
func (r *GormStoreRepository) Create(store *models.Store) error {
	return r.db.Create(store).Error
}

// Update 更新商户
func (r *GormStoreRepository) Update(store *models.Store) error {
	return r.db.Save(store).Error
}

// CountBySlug 统计 slug 数量
func (r *GormStoreRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Store{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
