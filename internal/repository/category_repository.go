package repository

import (
	"errors"

	"github.com/webild-pos/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository 分类数据访问接口，所有查询都限定在商户内
type CategoryRepository interface {
	ListByStore(storeID uint) ([]models.Category, error)
	GetByID(storeID, id uint) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	DeleteEmpty(storeID, id uint) (int64, error)
	CountProducts(storeID, categoryID uint) (int64, error)
}

// GormCategoryRepository GORM 实现
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

func ownedBy(storeID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("store_id = ?", storeID)
	}
}

// ListByStore 按菜单展示顺序返回分类
func (r *GormCategoryRepository) ListByStore(storeID uint) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Scopes(ownedBy(storeID)).
		Order("sort_order DESC, id ASC").
		Find(&categories).Error
	return categories, err
}

// GetByID 不存在时返回 nil, nil
func (r *GormCategoryRepository) GetByID(storeID, id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.Scopes(ownedBy(storeID)).Take(&category, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	case err != nil:
		return nil, err
	}
	return &category, nil
}

func (r *GormCategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// Update 只写可编辑列，避免覆盖 store_id
func (r *GormCategoryRepository) Update(category *models.Category) error {
	return r.db.Model(category).
		Scopes(ownedBy(category.StoreID)).
		Select("name", "sort_order").
		Updates(category).Error
}

// DeleteEmpty 在同一事务内确认分类下没有菜品后删除；
// 返回仍挂在分类下的菜品数，大于 0 时未删除
func (r *GormCategoryRepository) DeleteEmpty(storeID, id uint) (int64, error) {
	var remaining int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		count, err := countCategoryProducts(tx, storeID, id)
		if err != nil {
			return err
		}
		if count > 0 {
			remaining = count
			return nil
		}
		return tx.Scopes(ownedBy(storeID)).Delete(&models.Category{}, id).Error
	})
	return remaining, err
}

// CountProducts 统计某分类下菜品数（含已下架）
func (r *GormCategoryRepository) CountProducts(storeID, categoryID uint) (int64, error) {
	return countCategoryProducts(r.db, storeID, categoryID)
}

func countCategoryProducts(db *gorm.DB, storeID, categoryID uint) (int64, error) {
	var count int64
	err := db.Model(&models.Product{}).
		Scopes(ownedBy(storeID)).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}
