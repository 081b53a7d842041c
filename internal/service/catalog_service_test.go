package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/webild-pos/internal/cache"
	"github.com/webild-pos/internal/catalog"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestCatalogServiceLoadSnapshot(t *testing.T) {
	f := newServiceFixture(t, 0)
	ctx := context.Background()

	if _, err := f.catalog.LoadSnapshot(ctx, "missing-store"); !errors.Is(err, ErrStoreNotFound) {
		t.Fatalf("expected ErrStoreNotFound, got %v", err)
	}

	snapshot, err := f.catalog.LoadSnapshot(ctx, "  TITO-STATION ")
	if err != nil {
		t.Fatalf("load snapshot failed: %v", err)
	}
	if snapshot.Store.Slug != "tito-station" || snapshot.Store.ContactChannel != "+58 414-123-4567" {
		t.Fatalf("unexpected store context: %+v", snapshot.Store)
	}
	if got := snapshot.Store.DeliveryZones; len(got) != 2 || got[0] != "Centro" || got[1] != "Norte" {
		t.Fatalf("unexpected delivery zones: %v", got)
	}
	if snapshot.Categories[0].ID != catalog.AllCategoryID || len(snapshot.Categories) != 2 {
		t.Fatalf("expected synthetic all category first: %+v", snapshot.Categories)
	}
	if len(snapshot.Products) != 2 || snapshot.Products[0].Name != "Classic Smash" {
		t.Fatalf("expected available products in creation order: %+v", snapshot.Products)
	}
	if _, ok := snapshot.Product(formatID(f.ghost.ID)); ok {
		t.Fatalf("unavailable product must not be in snapshot")
	}
	if _, ok := snapshot.LookupModifier(formatID(f.cheese.ID)); ok {
		t.Fatalf("unavailable modifier must not be in snapshot")
	}
	volcano, _ := snapshot.Product(formatID(f.volcano.ID))
	if volcano.CategoryID != "" {
		t.Fatalf("unassigned product should have empty category, got %q", volcano.CategoryID)
	}
}

func TestCatalogServiceMenuAndDetail(t *testing.T) {
	f := newServiceFixture(t, 0)
	ctx := context.Background()

	menu, err := f.catalog.Menu(ctx, f.store.Slug, "", "")
	if err != nil {
		t.Fatalf("menu failed: %v", err)
	}
	if menu.ActiveCategory != catalog.AllCategoryID || len(menu.Products) != 2 {
		t.Fatalf("unexpected all menu: %+v", menu)
	}

	menu, _ = f.catalog.Menu(ctx, f.store.Slug, formatID(f.burgers.ID), "")
	if len(menu.Products) != 1 || menu.Products[0].Name != "Classic Smash" {
		t.Fatalf("unexpected category filter: %+v", menu.Products)
	}

	menu, _ = f.catalog.Menu(ctx, f.store.Slug, "", "volc")
	if len(menu.Products) != 1 || menu.Products[0].Name != "Volcano Roll" {
		t.Fatalf("unexpected search filter: %+v", menu.Products)
	}

	detail, err := f.catalog.ProductDetail(ctx, f.store.Slug, formatID(f.smash.ID))
	if err != nil {
		t.Fatalf("detail failed: %v", err)
	}
	if len(detail.Modifiers) != 1 || detail.Modifiers[0].Name != "Extra Bacon" {
		t.Fatalf("expected only available allowed modifiers: %+v", detail.Modifiers)
	}
	if _, err := f.catalog.ProductDetail(ctx, f.store.Slug, formatID(f.ghost.ID)); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCatalogServiceCacheInvalidatedByAdminWrites(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.UseClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "test")
	t.Cleanup(func() { _ = cache.Close() })

	f := newServiceFixture(t, time.Minute)
	ctx := context.Background()

	if _, err := f.catalog.LoadSnapshot(ctx, f.store.Slug); err != nil {
		t.Fatalf("load snapshot failed: %v", err)
	}
	if !mr.Exists("test:catalog:tito-station") {
		t.Fatalf("snapshot should be cached, keys=%v", mr.Keys())
	}

	if err := f.db.Model(f.volcano).Update("name", "Changed Directly").Error; err != nil {
		t.Fatalf("direct update failed: %v", err)
	}
	snapshot, _ := f.catalog.LoadSnapshot(ctx, f.store.Slug)
	if p, _ := snapshot.Product(formatID(f.volcano.ID)); p.Name != "Volcano Roll" {
		t.Fatalf("expected cached name, got %q", p.Name)
	}

	if err := f.admin.SetProductAvailability(ctx, f.ownerID, f.volcano.ID, false); err != nil {
		t.Fatalf("toggle availability failed: %v", err)
	}
	if mr.Exists("test:catalog:tito-station") {
		t.Fatalf("admin write must invalidate the cached snapshot")
	}
	snapshot, _ = f.catalog.LoadSnapshot(ctx, f.store.Slug)
	if _, ok := snapshot.Product(formatID(f.volcano.ID)); ok {
		t.Fatalf("hidden product still visible after invalidation")
	}
}
