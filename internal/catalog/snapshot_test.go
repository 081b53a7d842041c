package catalog

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func demoSnapshot() *Snapshot {
	return NewSnapshot(
		StoreContext{ID: "1", Slug: "titostation", Name: "Tito Station"},
		[]Category{{ID: "burgers", Name: "Burgers"}, {ID: "sushi", Name: "Sushi"}},
		[]Product{
			{ID: "1", Name: "The King Truffle", CategoryID: "burgers", BasePrice: decimal.RequireFromString("14.50"), IsAvailable: true, AllowedModifiers: []string{"bacon", "fries"}},
			{ID: "2", Name: "Classic Smash", CategoryID: "burgers", BasePrice: decimal.RequireFromString("9.99"), IsAvailable: true},
			{ID: "3", Name: "Volcano Roll", CategoryID: "sushi", BasePrice: decimal.RequireFromString("12.00"), IsAvailable: true},
			{ID: "4", Name: "Hidden", CategoryID: "", BasePrice: decimal.NewFromInt(1), IsAvailable: false},
		},
		[]Modifier{
			{ID: "fries", Name: "Papas Fritas", Price: decimal.RequireFromString("2.50"), IsAvailable: true},
			{ID: "bacon", Name: "Extra Bacon", Price: decimal.RequireFromString("1.50"), IsAvailable: true},
			{ID: "soda", Name: "Coca Cola", Price: decimal.RequireFromString("1.50"), IsAvailable: false},
		},
		time.Unix(1700000000, 0),
	)
}

func TestNewSnapshotPrependsAllAndDropsUnavailable(t *testing.T) {
	s := demoSnapshot()
	if len(s.Categories) != 3 || s.Categories[0].ID != AllCategoryID {
		t.Fatalf("expected synthetic all category first, got %+v", s.Categories)
	}
	if len(s.Products) != 3 {
		t.Fatalf("expected 3 available products, got %d", len(s.Products))
	}
	if _, ok := s.Product("4"); ok {
		t.Fatalf("unavailable product should not be in snapshot")
	}
	if _, ok := s.LookupModifier("soda"); ok {
		t.Fatalf("unavailable modifier should not resolve")
	}
}

func TestFilterProducts(t *testing.T) {
	s := demoSnapshot()
	cases := []struct {
		name     string
		category string
		term     string
		want     int
	}{
		{name: "all", category: AllCategoryID, want: 3},
		{name: "empty category", category: "", want: 3},
		{name: "burgers", category: "burgers", want: 2},
		{name: "term case insensitive", category: AllCategoryID, term: "SMASH", want: 1},
		{name: "category and term", category: "sushi", term: "smash", want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := s.FilterProducts(tc.category, tc.term)
			if len(got) != tc.want {
				t.Fatalf("want %d products got %d", tc.want, len(got))
			}
		})
	}
}

func TestModifiersForKeepsStoreOrder(t *testing.T) {
	s := demoSnapshot()
	p, _ := s.Product("1")
	mods := s.ModifiersFor(p)
	if len(mods) != 2 || mods[0].ID != "fries" || mods[1].ID != "bacon" {
		t.Fatalf("unexpected modifiers: %+v", mods)
	}
	p2, _ := s.Product("2")
	if got := s.ModifiersFor(p2); len(got) != 0 {
		t.Fatalf("product without allowed modifiers should have none, got %+v", got)
	}
}

func TestSnapshotLookupAfterJSONRoundTrip(t *testing.T) {
	raw, err := json.Marshal(demoSnapshot())
	if err != nil {
		t.Fatalf("marshal snapshot failed: %v", err)
	}
	var restored Snapshot
	if err := json.Unmarshal(raw, &restored); err != nil {
		t.Fatalf("unmarshal snapshot failed: %v", err)
	}
	m, ok := restored.LookupModifier("bacon")
	if !ok || !m.Price.Equal(decimal.RequireFromString("1.50")) {
		t.Fatalf("lookup after restore failed: %+v %v", m, ok)
	}
	if _, ok := restored.Product("3"); !ok {
		t.Fatalf("product lookup after restore failed")
	}
}

func TestStoreContextHasDeliveryZones(t *testing.T) {
	if (StoreContext{DeliveryZones: []string{" ", ""}}).HasDeliveryZones() {
		t.Fatalf("blank zones should not count")
	}
	if !(StoreContext{DeliveryZones: []string{"Centro"}}).HasDeliveryZones() {
		t.Fatalf("expected zones")
	}
}
