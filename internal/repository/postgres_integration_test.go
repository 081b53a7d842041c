//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"

	"github.com/webild-pos/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.Product{},
		&models.Modifier{},
		&models.Category{},
		&models.Store{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(&models.Store{}, &models.Category{}, &models.Product{}, &models.Modifier{}); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresProductSearchAndStoreRate(t *testing.T) {
	db := setupPostgresIntegrationDB(t)

	stores := NewStoreRepository(db)
	store := &models.Store{OwnerID: "o", Slug: "pg-store", Name: "PG", RateVES: decimal.RequireFromString("36.555")}
	if err := stores.Create(store); err != nil {
		t.Fatalf("create store failed: %v", err)
	}
	got, err := stores.GetBySlug("pg-store")
	if err != nil || got == nil || !got.RateVES.Equal(decimal.RequireFromString("36.555")) {
		t.Fatalf("store rate roundtrip failed: %+v %v", got, err)
	}

	products := NewProductRepository(db)
	product := &models.Product{
		StoreID:     store.ID,
		CategoryID:  1,
		Name:        "Classic SMASH",
		Price:       models.NewMoney(decimal.RequireFromString("9.99")),
		IsAvailable: true,
	}
	if err := products.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	list, total, err := products.List(ProductListFilter{StoreID: store.ID, Search: "smash", OnlyAvailable: true})
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if total != 1 || len(list) != 1 {
		t.Fatalf("ilike search want 1 got %d", total)
	}
}
