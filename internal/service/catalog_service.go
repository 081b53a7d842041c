package service

import (
	"context"
	"strings"
	"time"

	"github.com/webild-pos/internal/cache"
	"github.com/webild-pos/internal/catalog"
	"github.com/webild-pos/internal/logger"
	"github.com/webild-pos/internal/models"
	"github.com/webild-pos/internal/repository"
)

// CatalogService 店铺菜单快照服务
type CatalogService struct {
	storeRepo    repository.StoreRepository
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	modifierRepo repository.ModifierRepository
	cacheTTL     time.Duration
	now          func() time.Time
}

// NewCatalogService 创建菜单服务
func NewCatalogService(
	storeRepo repository.StoreRepository,
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	modifierRepo repository.ModifierRepository,
	cacheTTL time.Duration,
) *CatalogService {
	return &CatalogService{
		storeRepo:    storeRepo,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		modifierRepo: modifierRepo,
		cacheTTL:     cacheTTL,
		now:          time.Now,
	}
}

// MenuView 菜单浏览结果
type MenuView struct {
	Store          catalog.StoreContext `json:"store"`
	Categories     []catalog.Category   `json:"categories"`
	Products       []catalog.Product    `json:"products"`
	ActiveCategory string               `json:"active_category"`
	Query          string               `json:"query"`
}

// ProductDetail 菜品详情及可选加料
type ProductDetail struct {
	Product   catalog.Product    `json:"product"`
	Modifiers []catalog.Modifier `json:"modifiers"`
}

// LoadSnapshot 按店铺标识加载菜单快照（优先读缓存）
func (s *CatalogService) LoadSnapshot(ctx context.Context, slug string) (*catalog.Snapshot, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, ErrStoreNotFound
	}
	if s.cacheTTL > 0 {
		snapshot, hit, err := cache.GetCatalogSnapshot(ctx, slug)
		if err != nil {
			logger.FromContext(ctx).Warnw("catalog_cache_get_failed", "store_slug", slug, "error", err)
		} else if hit {
			return snapshot, nil
		}
	}

	store, err := s.storeRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}
	snapshot, err := s.buildSnapshot(store)
	if err != nil {
		return nil, err
	}

	if s.cacheTTL > 0 {
		if err := cache.SetCatalogSnapshot(ctx, snapshot, s.cacheTTL); err != nil {
			logger.FromContext(ctx).Warnw("catalog_cache_set_failed", "store_slug", slug, "error", err)
		}
	}
	return snapshot, nil
}

func (s *CatalogService) buildSnapshot(store *models.Store) (*catalog.Snapshot, error) {
	categories, err := s.categoryRepo.ListByStore(store.ID)
	if err != nil {
		return nil, err
	}
	products, _, err := s.productRepo.List(repository.ProductListFilter{
		StoreID:       store.ID,
		OnlyAvailable: true,
	})
	if err != nil {
		return nil, err
	}
	modifiers, err := s.modifierRepo.ListByStore(store.ID, true)
	if err != nil {
		return nil, err
	}

	cats := make([]catalog.Category, 0, len(categories))
	for _, c := range categories {
		cats = append(cats, toCatalogCategory(c))
	}
	items := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		items = append(items, toCatalogProduct(p))
	}
	mods := make([]catalog.Modifier, 0, len(modifiers))
	for _, m := range modifiers {
		mods = append(mods, toCatalogModifier(m))
	}
	return catalog.NewSnapshot(toStoreContext(store), cats, items, mods, s.now()), nil
}

// StoreContext 店铺设置
func (s *CatalogService) StoreContext(ctx context.Context, slug string) (catalog.StoreContext, error) {
	snapshot, err := s.LoadSnapshot(ctx, slug)
	if err != nil {
		return catalog.StoreContext{}, err
	}
	return snapshot.Store, nil
}

// Menu 按分类与关键字浏览菜单
func (s *CatalogService) Menu(ctx context.Context, slug, categoryID, query string) (*MenuView, error) {
	snapshot, err := s.LoadSnapshot(ctx, slug)
	if err != nil {
		return nil, err
	}
	active := strings.TrimSpace(categoryID)
	if active == "" {
		active = catalog.AllCategoryID
	}
	return &MenuView{
		Store:          snapshot.Store,
		Categories:     snapshot.Categories,
		Products:       snapshot.FilterProducts(active, query),
		ActiveCategory: active,
		Query:          strings.TrimSpace(query),
	}, nil
}

// ProductDetail 菜品详情
func (s *CatalogService) ProductDetail(ctx context.Context, slug, productID string) (*ProductDetail, error) {
	snapshot, err := s.LoadSnapshot(ctx, slug)
	if err != nil {
		return nil, err
	}
	product, ok := snapshot.Product(strings.TrimSpace(productID))
	if !ok {
		return nil, ErrProductNotFound
	}
	return &ProductDetail{
		Product:   product,
		Modifiers: snapshot.ModifiersFor(product),
	}, nil
}

// Invalidate 清除店铺快照缓存
func (s *CatalogService) Invalidate(ctx context.Context, slugs ...string) {
	for _, slug := range slugs {
		if err := cache.DelCatalogSnapshot(ctx, slug); err != nil {
			logger.FromContext(ctx).Warnw("catalog_cache_invalidate_failed", "store_slug", slug, "error", err)
		}
	}
}
