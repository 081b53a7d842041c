package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AllCategoryID 合成分类ID，匹配全部商品
const AllCategoryID = "all"

// AllCategoryName 合成分类默认名称
const AllCategoryName = "Todos"

// Category 菜单分类
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Product 可购买的菜单商品（只读）
type Product struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	BasePrice        decimal.Decimal `json:"price"`
	IsAvailable      bool            `json:"is_available"`
	IsPromoted       bool            `json:"is_promoted"`
	CategoryID       string          `json:"category_id"`
	ImageURL         string          `json:"image_url"`
	AllowedModifiers []string        `json:"allowed_modifiers"`
}

// AllowsModifier 判断商品是否允许该加料
func (p Product) AllowsModifier(modifierID string) bool {
	for _, id := range p.AllowedModifiers {
		if id == modifierID {
			return true
		}
	}
	return false
}

// Modifier 加料/附加项（只读）
type Modifier struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable bool            `json:"is_available"`
}

// StoreContext 商户级设置，供计价与下单格式化使用
type StoreContext struct {
	ID             string          `json:"id"`
	Slug           string          `json:"slug"`
	Name           string          `json:"name"`
	ContactChannel string          `json:"phone"`
	Rate           decimal.Decimal `json:"rate"`
	Schedule       string          `json:"schedule"`
	DeliveryZones  []string        `json:"delivery_zones"`
	LogoURL        string          `json:"logo_url"`
	HeroURL        string          `json:"hero_url"`
}

// HasDeliveryZones 是否配置了封闭的配送区域列表
func (s StoreContext) HasDeliveryZones() bool {
	for _, zone := range s.DeliveryZones {
		if strings.TrimSpace(zone) != "" {
			return true
		}
	}
	return false
}

// ModifierLookup 按ID解析加料
type ModifierLookup interface {
	LookupModifier(id string) (Modifier, bool)
}

// ModifierIndex 基于 map 的加料索引
type ModifierIndex map[string]Modifier

// NewModifierIndex 创建加料索引
func NewModifierIndex(modifiers []Modifier) ModifierIndex {
	index := make(ModifierIndex, len(modifiers))
	for _, m := range modifiers {
		index[m.ID] = m
	}
	return index
}

// LookupModifier 实现 ModifierLookup
func (idx ModifierIndex) LookupModifier(id string) (Modifier, bool) {
	if idx == nil {
		return Modifier{}, false
	}
	m, ok := idx[id]
	return m, ok
}
