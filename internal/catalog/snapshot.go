package catalog

import (
	"strings"
	"time"
)

// Snapshot 单个商户在一次浏览会话内的只读目录
// 加载一次后不再轮询或订阅变更
type Snapshot struct {
	Store      StoreContext `json:"store"`
	Categories []Category   `json:"categories"`
	Products   []Product    `json:"products"`
	Modifiers  []Modifier   `json:"modifiers"`
	LoadedAt   time.Time    `json:"loaded_at"`

	modifierIndex ModifierIndex
	productIndex  map[string]int
}

// NewSnapshot 构建快照：只保留可售商品与可用加料，并在分类最前面插入合成的 "all"
func NewSnapshot(store StoreContext, categories []Category, products []Product, modifiers []Modifier, loadedAt time.Time) *Snapshot {
	cats := make([]Category, 0, len(categories)+1)
	cats = append(cats, Category{ID: AllCategoryID, Name: AllCategoryName})
	for _, c := range categories {
		if c.ID == AllCategoryID {
			continue
		}
		cats = append(cats, c)
	}

	available := make([]Product, 0, len(products))
	for _, p := range products {
		if p.IsAvailable {
			available = append(available, p)
		}
	}
	mods := make([]Modifier, 0, len(modifiers))
	for _, m := range modifiers {
		if m.IsAvailable {
			mods = append(mods, m)
		}
	}

	s := &Snapshot{
		Store:      store,
		Categories: cats,
		Products:   available,
		Modifiers:  mods,
		LoadedAt:   loadedAt,
	}
	s.reindex()
	return s
}

// Reindex 反序列化后重建内部索引
func (s *Snapshot) Reindex() {
	if s == nil {
		return
	}
	s.reindex()
}

func (s *Snapshot) reindex() {
	s.modifierIndex = NewModifierIndex(s.Modifiers)
	s.productIndex = make(map[string]int, len(s.Products))
	for i, p := range s.Products {
		s.productIndex[p.ID] = i
	}
}

// LookupModifier 实现 ModifierLookup
func (s *Snapshot) LookupModifier(id string) (Modifier, bool) {
	if s == nil {
		return Modifier{}, false
	}
	if s.modifierIndex == nil {
		s.reindex()
	}
	return s.modifierIndex.LookupModifier(id)
}

// Product 根据ID获取可售商品
func (s *Snapshot) Product(id string) (Product, bool) {
	if s == nil {
		return Product{}, false
	}
	if s.productIndex == nil {
		s.reindex()
	}
	i, ok := s.productIndex[id]
	if !ok {
		return Product{}, false
	}
	return s.Products[i], true
}

// FilterProducts 按分类与名称关键字筛选商品
// categoryID 为空或 "all" 时匹配全部分类；关键字大小写不敏感
func (s *Snapshot) FilterProducts(categoryID, term string) []Product {
	if s == nil {
		return nil
	}
	categoryID = strings.TrimSpace(categoryID)
	term = strings.ToLower(strings.TrimSpace(term))
	result := make([]Product, 0, len(s.Products))
	for _, p := range s.Products {
		if categoryID != "" && categoryID != AllCategoryID && p.CategoryID != categoryID {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(p.Name), term) {
			continue
		}
		result = append(result, p)
	}
	return result
}

// ModifiersFor 商品可选加料：商户可用加料与商品允许列表的交集，保持商户顺序
func (s *Snapshot) ModifiersFor(product Product) []Modifier {
	if s == nil || len(product.AllowedModifiers) == 0 {
		return []Modifier{}
	}
	result := make([]Modifier, 0, len(product.AllowedModifiers))
	for _, m := range s.Modifiers {
		if product.AllowsModifier(m.ID) {
			result = append(result, m)
		}
	}
	return result
}
