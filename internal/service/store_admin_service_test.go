package service

import (
	"context"
	"errors"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Tito Station":        "tito-station",
		"  Café Ñandú  ":      "cafe-nandu",
		"Sushi & Roll #1":     "sushi-roll-1",
		"---":                 "",
		"Arepas  La  Reina!!": "arepas-la-reina",
	}
	for input, want := range tests {
		if got := Slugify(input); got != want {
			t.Fatalf("Slugify(%q)=%q want %q", input, got, want)
		}
	}
}

func TestStoreAdminCreateStore(t *testing.T) {
	f := newServiceFixture(t, 0)
	ctx := context.Background()

	if f.store.Slug != "tito-station" || f.store.RateVES.String() != "50" {
		t.Fatalf("unexpected fixture store: %+v", f.store)
	}
	if _, err := f.admin.CreateStore(ctx, f.ownerID, CreateStoreInput{Name: "Second"}); !errors.Is(err, ErrStoreExists) {
		t.Fatalf("expected ErrStoreExists, got %v", err)
	}
	if _, err := f.admin.CreateStore(ctx, "owner-2", CreateStoreInput{Name: "Other", Slug: "tito-station"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
	if _, err := f.admin.CreateStore(ctx, "owner-2", CreateStoreInput{Name: "Other", Slug: "Bad Slug!"}); !errors.Is(err, ErrSlugInvalid) {
		t.Fatalf("expected ErrSlugInvalid, got %v", err)
	}
	if _, err := f.admin.CreateStore(ctx, "owner-2", CreateStoreInput{Name: " "}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
	if _, err := f.admin.CreateStore(ctx, "", CreateStoreInput{Name: "x"}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := f.admin.GetStore("owner-2"); !errors.Is(err, ErrStoreNotFound) {
		t.Fatalf("expected ErrStoreNotFound, got %v", err)
	}
}

func TestStoreAdminUpdateStore(t *testing.T) {
	f := newServiceFixture(t, 0)
	ctx := context.Background()

	if _, err := f.admin.UpdateStore(ctx, f.ownerID, UpdateStoreInput{Name: "Tito", Rate: "-1"}); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate, got %v", err)
	}
	if _, err := f.admin.UpdateStore(ctx, f.ownerID, UpdateStoreInput{Name: "Tito", Rate: "abc"}); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate, got %v", err)
	}

	store, err := f.admin.UpdateStore(ctx, f.ownerID, UpdateStoreInput{Name: "Tito Burgers", Slug: "tito-burgers", Rate: "36,5"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if store.Slug != "tito-burgers" || store.RateVES.String() != "36.5" {
		t.Fatalf("unexpected store: %+v", store)
	}
	if _, err := f.catalog.LoadSnapshot(ctx, "tito-station"); !errors.Is(err, ErrStoreNotFound) {
		t.Fatalf("old slug should no longer resolve, got %v", err)
	}
	if _, err := f.catalog.LoadSnapshot(ctx, "tito-burgers"); err != nil {
		t.Fatalf("new slug should resolve: %v", err)
	}
}

func TestStoreAdminMenuValidation(t *testing.T) {
	f := newServiceFixture(t, 0)
	ctx := context.Background()

	if _, err := f.admin.CreateProduct(ctx, f.ownerID, ProductInput{Name: "Free", Price: "-2"}); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
	if _, err := f.admin.CreateProduct(ctx, f.ownerID, ProductInput{Name: "Lost", Price: "1", CategoryID: 9999}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
	if _, err := f.admin.CreateProduct(ctx, f.ownerID, ProductInput{Name: "Odd", Price: "1", AllowedModifiers: []string{"abc"}}); !errors.Is(err, ErrModifierNotFound) {
		t.Fatalf("expected ErrModifierNotFound, got %v", err)
	}

	if _, err := f.admin.CreateStore(ctx, "owner-2", CreateStoreInput{Name: "Sushi Bar"}); err != nil {
		t.Fatalf("create second store failed: %v", err)
	}
	if _, err := f.admin.CreateProduct(ctx, "owner-2", ProductInput{Name: "Roll", Price: "8", AllowedModifiers: []string{formatID(f.bacon.ID)}}); !errors.Is(err, ErrModifierNotFound) {
		t.Fatalf("modifiers from another store must be rejected, got %v", err)
	}
	if err := f.admin.DeleteProduct(ctx, "owner-2", f.smash.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("products from another store must be invisible, got %v", err)
	}

	if err := f.admin.DeleteCategory(ctx, f.ownerID, f.burgers.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}
	if err := f.admin.DeleteProduct(ctx, f.ownerID, f.smash.ID); err != nil {
		t.Fatalf("delete product failed: %v", err)
	}
	if err := f.admin.DeleteCategory(ctx, f.ownerID, f.burgers.ID); err != nil {
		t.Fatalf("delete category failed: %v", err)
	}

	product, err := f.admin.CreateProduct(ctx, f.ownerID, ProductInput{
		Name:             "Combo",
		Price:            "10.5",
		AllowedModifiers: []string{formatID(f.cheese.ID), formatID(f.bacon.ID), formatID(f.cheese.ID)},
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if !product.IsAvailable || len(product.AllowedModifiers) != 2 || product.AllowedModifiers[0] != formatID(f.cheese.ID) {
		t.Fatalf("unexpected product: %+v", product)
	}
	if product.Price.String() != "10.50" {
		t.Fatalf("unexpected price: %s", product.Price)
	}
}

func TestStoreAdminListing(t *testing.T) {
	f := newServiceFixture(t, 0)

	products, total, err := f.admin.ListProducts(f.ownerID, 0, "", 1, 20)
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if total != 3 || len(products) != 3 {
		t.Fatalf("admin listing must include hidden products: total=%d", total)
	}
	products, _, _ = f.admin.ListProducts(f.ownerID, 0, "smash", 1, 20)
	if len(products) != 1 {
		t.Fatalf("expected search to match one product, got %d", len(products))
	}
	modifiers, err := f.admin.ListModifiers(f.ownerID)
	if err != nil || len(modifiers) != 2 {
		t.Fatalf("admin modifier listing must include disabled ones: %v %d", err, len(modifiers))
	}
	categories, err := f.admin.ListCategories(f.ownerID)
	if err != nil || len(categories) != 1 {
		t.Fatalf("unexpected categories: %v %d", err, len(categories))
	}
}
