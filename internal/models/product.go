package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 菜品表
type Product struct {
	ID               uint           `gorm:"primarykey" json:"id"`                                      // 主键
	StoreID          uint           `gorm:"not null;index" json:"store_id"`                            // 所属商户
	CategoryID       uint           `gorm:"not null;index" json:"category_id"`                         // 分类ID
	Name             string         `gorm:"type:varchar(200);not null" json:"name"`                    // 名称
	Description      string         `gorm:"type:text" json:"description"`                              // 描述
	Price            Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`        // 基础价格（主币种）
	ImageURL         string         `gorm:"type:varchar(500)" json:"image_url"`                        // 图片
	IsAvailable      bool           `gorm:"not null;index" json:"is_available"`                        // 是否可售
	IsPromoted       bool           `gorm:"not null" json:"is_promoted"`                               // 是否推荐
	AllowedModifiers StringArray    `gorm:"type:json" json:"allowed_modifiers"`                        // 可选加料ID
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt        time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
