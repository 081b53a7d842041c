package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 菜单分类；sort_order 越大越靠前
type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	StoreID   uint           `gorm:"not null;index:idx_categories_store_sort,priority:1" json:"store_id"`
	Name      string         `gorm:"type:varchar(120);not null" json:"name"`
	SortOrder int            `gorm:"not null;default:0;index:idx_categories_store_sort,priority:2" json:"sort_order"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Category) TableName() string {
	return "categories"
}
