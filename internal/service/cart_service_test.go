package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/webild-pos/internal/cart"
	"github.com/webild-pos/internal/constants"
)

func TestCartServiceAddMergesSameSelection(t *testing.T) {
	f := newServiceFixture(t, 0)

	f.add(t, f.smash, 1, f.bacon)
	view := f.add(t, f.smash, 1, f.bacon)
	view = f.add(t, f.volcano, 1)

	if len(view.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %+v", view.Lines)
	}
	first := view.Lines[0]
	if first.Quantity != 2 || first.UnitPrice.String() != "11.49" || first.Subtotal.String() != "22.98" {
		t.Fatalf("unexpected merged line: %+v", first)
	}
	if len(first.ModifierNames) != 1 || first.ModifierNames[0] != "Extra Bacon" {
		t.Fatalf("unexpected modifier names: %v", first.ModifierNames)
	}
	if view.Count != 3 || view.Subtotal.String() != "34.98" || view.SubtotalLocal.String() != "1749.00" {
		t.Fatalf("unexpected totals: count=%d subtotal=%s local=%s", view.Count, view.Subtotal, view.SubtotalLocal)
	}
	if view.Rate != "50" {
		t.Fatalf("unexpected rate: %s", view.Rate)
	}
	if view.Lines[1].ID != formatID(f.volcano.ID) || len(view.Lines[1].ModifierIDs) != 0 {
		t.Fatalf("line without modifiers should use product id: %+v", view.Lines[1])
	}
}

func TestCartServiceAddValidation(t *testing.T) {
	f := newServiceFixture(t, 0)
	ctx := context.Background()

	tests := []struct {
		name  string
		input AddCartItemInput
		want  error
	}{
		{"missing session", AddCartItemInput{StoreSlug: f.store.Slug, ProductID: formatID(f.smash.ID), Quantity: 1}, ErrSessionRequired},
		{"zero quantity", AddCartItemInput{StoreSlug: f.store.Slug, SessionID: "s", ProductID: formatID(f.smash.ID), Quantity: 0}, cart.ErrInvalidQuantity},
		{"quantity too large", AddCartItemInput{StoreSlug: f.store.Slug, SessionID: "s", ProductID: formatID(f.smash.ID), Quantity: constants.MaxCartLineQuantity + 1}, ErrQuantityTooLarge},
		{"unknown store", AddCartItemInput{StoreSlug: "nope", SessionID: "s", ProductID: formatID(f.smash.ID), Quantity: 1}, ErrStoreNotFound},
		{"unavailable product", AddCartItemInput{StoreSlug: f.store.Slug, SessionID: "s", ProductID: formatID(f.ghost.ID), Quantity: 1}, ErrProductNotAvailable},
		{"modifier not allowed", AddCartItemInput{StoreSlug: f.store.Slug, SessionID: "s", ProductID: formatID(f.volcano.ID), Quantity: 1, ModifierIDs: []string{formatID(f.bacon.ID)}}, ErrModifierNotAllowed},
		{"modifier unavailable", AddCartItemInput{StoreSlug: f.store.Slug, SessionID: "s", ProductID: formatID(f.smash.ID), Quantity: 1, ModifierIDs: []string{formatID(f.cheese.ID)}}, ErrModifierNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.cart.AddItem(ctx, tt.input); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	if session, _ := f.sessions.Load(ctx, f.store.Slug, "s"); session != nil {
		t.Fatalf("rejected adds must not create a session: %+v", session)
	}
}

func TestCartServiceUpdateAndRemove(t *testing.T) {
	f := newServiceFixture(t, 0)
	ctx := context.Background()

	view := f.add(t, f.smash, 2, f.bacon)
	lineID := view.Lines[0].ID

	view, err := f.cart.UpdateItem(ctx, f.store.Slug, f.sessionID, lineID, 5)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if view.Lines[0].Quantity != 5 || view.Lines[0].UnitPrice.String() != "11.49" {
		t.Fatalf("unexpected line after update: %+v", view.Lines[0])
	}

	if _, err := f.cart.UpdateItem(ctx, f.store.Slug, f.sessionID, "missing", 1); !errors.Is(err, ErrLineNotFound) {
		t.Fatalf("expected ErrLineNotFound, got %v", err)
	}

	view, err = f.cart.UpdateItem(ctx, f.store.Slug, f.sessionID, lineID, 0)
	if err != nil {
		t.Fatalf("update to zero failed: %v", err)
	}
	if len(view.Lines) != 0 || view.Count != 0 || !view.Subtotal.IsZero() {
		t.Fatalf("quantity zero should remove the line: %+v", view)
	}

	if _, err := f.cart.RemoveItem(ctx, f.store.Slug, f.sessionID, lineID); err != nil {
		t.Fatalf("removing a missing line should be a no-op, got %v", err)
	}
}

func TestCartServiceCheckoutToggle(t *testing.T) {
	f := newServiceFixture(t, 0)
	ctx := context.Background()

	if _, err := f.cart.OpenCheckout(ctx, f.store.Slug, f.sessionID); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}

	view := f.add(t, f.volcano, 1)
	view, err := f.cart.OpenCheckout(ctx, f.store.Slug, f.sessionID)
	if err != nil || !view.CheckoutOpen {
		t.Fatalf("open checkout failed: %v %+v", err, view)
	}

	view, err = f.cart.CloseCheckout(ctx, f.store.Slug, f.sessionID)
	if err != nil || view.CheckoutOpen || len(view.Lines) != 1 {
		t.Fatalf("close checkout must keep lines: %v %+v", err, view)
	}

	_, _ = f.cart.OpenCheckout(ctx, f.store.Slug, f.sessionID)
	view, err = f.cart.RemoveItem(ctx, f.store.Slug, f.sessionID, view.Lines[0].ID)
	if err != nil || view.CheckoutOpen {
		t.Fatalf("removing the last line must close checkout: %v %+v", err, view)
	}

	f.add(t, f.volcano, 1)
	view, err = f.cart.Clear(ctx, f.store.Slug, f.sessionID)
	if err != nil || len(view.Lines) != 0 {
		t.Fatalf("clear failed: %v %+v", err, view)
	}
	view, _ = f.cart.Get(ctx, f.store.Slug, f.sessionID)
	if len(view.Lines) != 0 {
		t.Fatalf("cart should stay empty after clear: %+v", view)
	}
}

func TestCartServiceKeepsPriceSnapshot(t *testing.T) {
	f := newServiceFixture(t, 0)
	ctx := context.Background()

	f.add(t, f.smash, 1, f.bacon)
	if _, err := f.admin.UpdateModifier(ctx, f.ownerID, f.bacon.ID, ModifierInput{Name: "Extra Bacon", Price: "3.00"}); err != nil {
		t.Fatalf("update modifier failed: %v", err)
	}
	if _, err := f.admin.UpdateProduct(ctx, f.ownerID, f.smash.ID, ProductInput{
		CategoryID:       f.burgers.ID,
		Name:             "Classic Smash",
		Price:            "15.00",
		AllowedModifiers: []string{formatID(f.bacon.ID)},
	}); err != nil {
		t.Fatalf("update product failed: %v", err)
	}

	view, err := f.cart.Get(ctx, f.store.Slug, f.sessionID)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if view.Lines[0].UnitPrice.String() != "11.49" {
		t.Fatalf("existing line must keep its add-time price, got %s", view.Lines[0].UnitPrice)
	}

	view = f.add(t, f.smash, 1, f.bacon)
	if view.Lines[0].Quantity != 2 || view.Lines[0].UnitPrice.String() != "11.49" {
		t.Fatalf("merge must keep the first price snapshot: %+v", view.Lines[0])
	}

	if err := f.admin.DeleteModifier(ctx, f.ownerID, f.bacon.ID); err != nil {
		t.Fatalf("delete modifier failed: %v", err)
	}
	view, _ = f.cart.Get(ctx, f.store.Slug, f.sessionID)
	if len(view.Lines[0].ModifierNames) != 0 || view.Lines[0].Subtotal.String() != "22.98" {
		t.Fatalf("unresolved modifier should be skipped without repricing: %+v", view.Lines[0])
	}
}

func TestCartServiceReadsCurrentCatalogEachRequest(t *testing.T) {
	f := newServiceFixture(t, time.Minute)
	ctx := context.Background()

	f.add(t, f.smash, 1, f.bacon)
	if _, err := f.admin.UpdateModifier(ctx, f.ownerID, f.bacon.ID, ModifierInput{Name: "Tocineta", Price: "2.00", IsAvailable: boolPtr(true)}); err != nil {
		t.Fatalf("update modifier failed: %v", err)
	}

	view, err := f.cart.Get(ctx, f.store.Slug, f.sessionID)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	line := view.Lines[0]
	if len(line.ModifierNames) != 1 || line.ModifierNames[0] != "Tocineta" {
		t.Fatalf("cart should show the current modifier name, got %v", line.ModifierNames)
	}
	if line.UnitPrice.String() != "11.49" {
		t.Fatalf("unit price stays at add time, got %s", line.UnitPrice)
	}

	session, err := f.sessions.Load(ctx, f.store.Slug, f.sessionID)
	if err != nil || session == nil || len(session.Cart.Lines) != 1 {
		t.Fatalf("session should hold only the cart lines: %+v (%v)", session, err)
	}
}

func TestCartServiceGetWithoutSession(t *testing.T) {
	f := newServiceFixture(t, 0)
	view, err := f.cart.Get(context.Background(), f.store.Slug, "")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if view.SessionID != "" || len(view.Lines) != 0 || view.Lines == nil {
		t.Fatalf("expected empty cart view, got %+v", view)
	}
}
