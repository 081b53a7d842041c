package repository

import (
	"errors"

	"github.com/webild-pos/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 菜品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(storeID, id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(storeID, id uint) error
	SetAvailability(storeID, id uint, available bool) (int64, error)
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建菜品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// List 菜品列表，按创建时间升序（菜单展示顺序）
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product

	query := r.db.Model(&models.Product{}).Scopes(ownedBy(filter.StoreID))
	if filter.OnlyAvailable {
		query = query.Where("is_available = ?", true)
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	query = query.Scopes(containsAny(filter.Search, "name"))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Scopes(filter.paginate).Order("created_at ASC, id ASC").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetByID 根据 ID 获取菜品
func (r *GormProductRepository) GetByID(storeID, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Scopes(ownedBy(storeID)).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Create 创建菜品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新菜品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete 删除菜品
func (r *GormProductRepository) Delete(storeID, id uint) error {
	return r.db.Scopes(ownedBy(storeID)).Delete(&models.Product{}, id).Error
}

// SetAvailability 切换可售状态，返回受影响行数
func (r *GormProductRepository) SetAvailability(storeID, id uint, available bool) (int64, error) {
	result := r.db.Model(&models.Product{}).
		Where("store_id = ? AND id = ?", storeID, id).
		Update("is_available", available)
	return result.RowsAffected, result.Error
}
