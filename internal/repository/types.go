package repository

import "gorm.io/gorm"

// ProductListFilter 查询菜品列表的过滤条件
type ProductListFilter struct {
	Page          int
	PageSize      int
	StoreID       uint
	CategoryID    uint
	Search        string
	OnlyAvailable bool
}

// paginate 分页作用域；PageSize <= 0 时返回全部记录（前台菜单）
func (f ProductListFilter) paginate(db *gorm.DB) *gorm.DB {
	if f.PageSize <= 0 {
		return db
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	return db.Offset((page - 1) * f.PageSize).Limit(f.PageSize)
}
