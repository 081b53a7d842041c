package service

import (
	"strconv"
	"strings"

	"github.com/webild-pos/internal/catalog"
	"github.com/webild-pos/internal/models"
)

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func toStoreContext(store *models.Store) catalog.StoreContext {
	zones := make([]string, 0, len(store.DeliveryCities))
	for _, zone := range store.DeliveryCities {
		if trimmed := strings.TrimSpace(zone); trimmed != "" {
			zones = append(zones, trimmed)
		}
	}
	return catalog.StoreContext{
		ID:             formatID(store.ID),
		Slug:           store.Slug,
		Name:           store.Name,
		ContactChannel: store.Phone,
		Rate:           store.RateVES,
		Schedule:       store.Schedule,
		DeliveryZones:  zones,
		LogoURL:        store.LogoURL,
		HeroURL:        store.HeroURL,
	}
}

func toCatalogCategory(c models.Category) catalog.Category {
	return catalog.Category{ID: formatID(c.ID), Name: c.Name}
}

func toCatalogProduct(p models.Product) catalog.Product {
	categoryID := ""
	if p.CategoryID != 0 {
		categoryID = formatID(p.CategoryID)
	}
	allowed := make([]string, 0, len(p.AllowedModifiers))
	allowed = append(allowed, p.AllowedModifiers...)
	return catalog.Product{
		ID:               formatID(p.ID),
		Name:             p.Name,
		Description:      p.Description,
		BasePrice:        p.Price.Decimal,
		IsAvailable:      p.IsAvailable,
		IsPromoted:       p.IsPromoted,
		CategoryID:       categoryID,
		ImageURL:         p.ImageURL,
		AllowedModifiers: allowed,
	}
}

func toCatalogModifier(m models.Modifier) catalog.Modifier {
	return catalog.Modifier{
		ID:          formatID(m.ID),
		Name:        m.Name,
		Price:       m.Price.Decimal,
		IsAvailable: m.IsAvailable,
	}
}
