package repository

import (
	"errors"

	"github.com/webild-pos/internal/models"

	"gorm.io/gorm"
)

// ModifierRepository 加料数据访问接口
type ModifierRepository interface {
	ListByStore(storeID uint, onlyAvailable bool) ([]models.Modifier, error)
	GetByID(storeID, id uint) (*models.Modifier, error)
	Create(modifier *models.Modifier) error
	Update(modifier *models.Modifier) error
	Delete(storeID, id uint) error
	SetAvailability(storeID, id uint, available bool) (int64, error)
}

// GormModifierRepository GORM 实现
type GormModifierRepository struct {
	db *gorm.DB
}

// NewModifierRepository 创建加料仓库
func NewModifierRepository(db *gorm.DB) *GormModifierRepository {
	return &GormModifierRepository{db: db}
}

// ListByStore 商户加料列表
func (r *GormModifierRepository) ListByStore(storeID uint, onlyAvailable bool) ([]models.Modifier, error) {
	var modifiers []models.Modifier
	query := r.db.Scopes(ownedBy(storeID))
	if onlyAvailable {
		query = query.Where("is_available = ?", true)
	}
	if err := query.Order("created_at ASC, id ASC").Find(&modifiers).Error; err != nil {
		return nil, err
	}
	return modifiers, nil
}

// GetByID 根据 ID 获取加料
func (r *GormModifierRepository) GetByID(storeID, id uint) (*models.Modifier, error) {
	var modifier models.Modifier
	if err := r.db.Scopes(ownedBy(storeID)).First(&modifier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &modifier, nil
}

// Create 创建加料
func (r *GormModifierRepository) Create(modifier *models.Modifier) error {
	return r.db.Create(modifier).Error
}

// Update 更新加料
func (r *GormModifierRepository) Update(modifier *models.Modifier) error {
	return r.db.Save(modifier).Error
}

// Delete 删除加料
func (r *GormModifierRepository) Delete(storeID, id uint) error {
	return r.db.Scopes(ownedBy(storeID)).Delete(&models.Modifier{}, id).Error
}

// SetAvailability 切换可用状态
func (r *GormModifierRepository) SetAvailability(storeID, id uint, available bool) (int64, error) {
	result := r.db.Model(&models.Modifier{}).
		Where("store_id = ? AND id = ?", storeID, id).
		Update("is_available", available)
	return result.RowsAffected, result.Error
}
