package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/webild-pos/internal/cache"
	"github.com/webild-pos/internal/models"
	"github.com/webild-pos/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type serviceFixture struct {
	db        *gorm.DB
	sessions  *cache.MemorySessionStore
	catalog   *CatalogService
	admin     *StoreAdminService
	cart      *CartService
	store     *models.Store
	burgers   *models.Category
	smash     *models.Product
	volcano   *models.Product
	ghost     *models.Product
	bacon     *models.Modifier
	cheese    *models.Modifier
	ownerID   string
	sessionID string
}

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Store{}, &models.Category{}, &models.Product{}, &models.Modifier{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func boolPtr(v bool) *bool {
	return &v
}

// newServiceFixture 建一家店：汉堡分类、两个可售菜品、一个下架菜品、一个可用和一个停用的加料
func newServiceFixture(t *testing.T, cacheTTL time.Duration) *serviceFixture {
	t.Helper()
	db := openServiceTestDB(t)
	storeRepo := repository.NewStoreRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	modifierRepo := repository.NewModifierRepository(db)

	catalogService := NewCatalogService(storeRepo, categoryRepo, productRepo, modifierRepo, cacheTTL)
	admin := NewStoreAdminService(storeRepo, categoryRepo, productRepo, modifierRepo, catalogService)
	sessions := cache.NewMemorySessionStore(time.Hour)

	f := &serviceFixture{
		db:        db,
		sessions:  sessions,
		catalog:   catalogService,
		admin:     admin,
		cart:      NewCartService(catalogService, sessions),
		ownerID:   "owner-1",
		sessionID: "sess-1",
	}
	ctx := context.Background()

	var err error
	if _, err = admin.CreateStore(ctx, f.ownerID, CreateStoreInput{Name: "Tito Station"}); err != nil {
		t.Fatalf("create store failed: %v", err)
	}
	f.store, err = admin.UpdateStore(ctx, f.ownerID, UpdateStoreInput{
		Name:           "Tito Station",
		Phone:          "+58 414-123-4567",
		Rate:           "50",
		DeliveryCities: []string{"Centro", " Norte ", "centro"},
	})
	if err != nil {
		t.Fatalf("update store failed: %v", err)
	}
	if f.burgers, err = admin.CreateCategory(ctx, f.ownerID, CategoryInput{Name: "Burgers"}); err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if f.bacon, err = admin.CreateModifier(ctx, f.ownerID, ModifierInput{Name: "Extra Bacon", Price: "1.50"}); err != nil {
		t.Fatalf("create modifier failed: %v", err)
	}
	if f.cheese, err = admin.CreateModifier(ctx, f.ownerID, ModifierInput{Name: "Extra Cheese", Price: "1.00", IsAvailable: boolPtr(false)}); err != nil {
		t.Fatalf("create modifier failed: %v", err)
	}
	if f.smash, err = admin.CreateProduct(ctx, f.ownerID, ProductInput{
		CategoryID:       f.burgers.ID,
		Name:             "Classic Smash",
		Price:            "9.99",
		AllowedModifiers: []string{formatID(f.bacon.ID), formatID(f.cheese.ID)},
	}); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if f.volcano, err = admin.CreateProduct(ctx, f.ownerID, ProductInput{Name: "Volcano Roll", Price: "12"}); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if f.ghost, err = admin.CreateProduct(ctx, f.ownerID, ProductInput{Name: "Ghost Burger", Price: "5", IsAvailable: boolPtr(false)}); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return f
}

func (f *serviceFixture) add(t *testing.T, product *models.Product, qty int, mods ...*models.Modifier) *CartView {
	t.Helper()
	ids := make([]string, 0, len(mods))
	for _, m := range mods {
		ids = append(ids, formatID(m.ID))
	}
	view, err := f.cart.AddItem(context.Background(), AddCartItemInput{
		StoreSlug:   f.store.Slug,
		SessionID:   f.sessionID,
		ProductID:   formatID(product.ID),
		Quantity:    qty,
		ModifierIDs: ids,
	})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	return view
}
