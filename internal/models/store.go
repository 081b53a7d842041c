package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Store 商户（租户）表
type Store struct {
	ID             uint            `gorm:"primarykey" json:"id"`                                       // 主键
	OwnerID        string          `gorm:"type:varchar(64);not null;index" json:"owner_id"`            // 外部认证平台的用户ID
	Slug           string          `gorm:"type:varchar(80);uniqueIndex;not null" json:"slug"`          // 店铺地址标识
	Name           string          `gorm:"type:varchar(120);not null" json:"name"`                     // 店名
	Phone          string          `gorm:"type:varchar(40)" json:"phone"`                              // 接单号码（原样保存，下发时归一化）
	RateVES        decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"rate_ves"`      // 本币汇率，不做两位取整
	Schedule       string          `gorm:"type:varchar(255)" json:"schedule"`                          // 营业时间（展示用）
	DeliveryCities StringArray     `gorm:"type:json" json:"delivery_cities"`                           // 配送区域，空表示自由填写
	LogoURL        string          `gorm:"type:varchar(500)" json:"logo_url"`                          // Logo
	HeroURL        string          `gorm:"type:varchar(500)" json:"hero_url"`                          // 头图
	CreatedAt      time.Time       `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt      time.Time       `json:"updated_at"`                                                 // 更新时间
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`                                             // 软删除时间
}

// TableName 指定表名
func (Store) TableName() string {
	return "stores"
}
