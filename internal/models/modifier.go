package models

import (
	"time"

	"gorm.io/gorm"
)

// Modifier 加料表（商户级，菜品通过 AllowedModifiers 引用）
type Modifier struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	StoreID     uint           `gorm:"not null;index" json:"store_id"`
	Name        string         `gorm:"type:varchar(120);not null" json:"name"`
	Price       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	IsAvailable bool           `gorm:"not null;index" json:"is_available"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Modifier) TableName() string {
	return "modifiers"
}
