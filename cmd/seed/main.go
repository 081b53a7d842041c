package main

import (
	"context"
	"errors"
	"flag"
	"strconv"

	"github.com/webild-pos/internal/config"
	"github.com/webild-pos/internal/logger"
	"github.com/webild-pos/internal/models"
	"github.com/webild-pos/internal/repository"
	"github.com/webild-pos/internal/service"
)

type seedProduct struct {
	category  string
	name      string
	desc      string
	price     string
	image     string
	promoted  bool
	modifiers []string
}

var seedCategories = []string{"Burgers", "Combos", "Sushi", "Bebidas"}

var seedModifiers = []service.ModifierInput{
	{Name: "Papas Fritas", Price: "2.50"},
	{Name: "Extra Bacon", Price: "1.50"},
	{Name: "Coca Cola", Price: "1.50"},
}

var seedProducts = []seedProduct{
	{
		category:  "Burgers",
		name:      "The King Truffle",
		desc:      "200g Carne Angus, mayonesa de trufa negra, queso brie fundido.",
		price:     "14.50",
		image:     "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?w=800",
		promoted:  true,
		modifiers: []string{"Papas Fritas", "Extra Bacon", "Coca Cola"},
	},
	{
		category:  "Burgers",
		name:      "Classic Smash",
		desc:      "Doble carne aplastada, queso americano, cebolla caramelizada.",
		price:     "9.99",
		image:     "https://images.unsplash.com/photo-1594212699903-ec8a3eca50f5?w=800",
		modifiers: []string{"Papas Fritas", "Extra Bacon"},
	},
	{
		category: "Sushi",
		name:     "Volcano Roll",
		desc:     "Langostino tempura, topping de kani picante.",
		price:    "12.00",
		image:    "https://images.unsplash.com/photo-1579871494447-9811cf80d66c?w=600&auto=format&fit=crop",
	},
	{
		category:  "Combos",
		name:      "Date Night",
		desc:      "2 Burgers + 2 Fries + 2 Drinks.",
		price:     "22.00",
		image:     "https://images.unsplash.com/photo-1551782450-a2132b4ba21d?w=800",
		promoted:  true,
		modifiers: []string{"Coca Cola"},
	},
}

func main() {
	var ownerID, storeName, phone string
	flag.StringVar(&ownerID, "owner", "demo-owner", "店主ID（认证平台 sub）")
	flag.StringVar(&storeName, "name", "Tito Station", "店名")
	flag.StringVar(&phone, "phone", "+58 414-000-0000", "接单 WhatsApp 号码")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, false); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	storeRepo := repository.NewStoreRepository(models.DB)
	categoryRepo := repository.NewCategoryRepository(models.DB)
	productRepo := repository.NewProductRepository(models.DB)
	modifierRepo := repository.NewModifierRepository(models.DB)
	catalogService := service.NewCatalogService(storeRepo, categoryRepo, productRepo, modifierRepo, 0)
	admin := service.NewStoreAdminService(storeRepo, categoryRepo, productRepo, modifierRepo, catalogService)
	ctx := context.Background()

	if existing, err := admin.GetStore(ownerID); err == nil {
		stdLog.Printf("Store already exists for owner %s: %s", ownerID, existing.Slug)
		return
	} else if !errors.Is(err, service.ErrStoreNotFound) {
		stdLog.Fatalf("Failed to load store: %v", err)
	}

	store, err := admin.CreateStore(ctx, ownerID, service.CreateStoreInput{Name: storeName})
	if err != nil {
		stdLog.Fatalf("Failed to create store: %v", err)
	}
	if _, err := admin.UpdateStore(ctx, ownerID, service.UpdateStoreInput{
		Name:           store.Name,
		Phone:          phone,
		Rate:           "36.50",
		Schedule:       "Lun-Dom 12:00 - 23:00",
		DeliveryCities: []string{"Centro", "Norte", "Este"},
	}); err != nil {
		stdLog.Fatalf("Failed to update store: %v", err)
	}
	stdLog.Printf("Created store: %s", store.Slug)

	categoryIDs := make(map[string]uint, len(seedCategories))
	for i, name := range seedCategories {
		category, err := admin.CreateCategory(ctx, ownerID, service.CategoryInput{Name: name, SortOrder: i + 1})
		if err != nil {
			stdLog.Fatalf("Failed to create category %s: %v", name, err)
		}
		categoryIDs[name] = category.ID
	}

	modifierIDs := make(map[string]string, len(seedModifiers))
	for _, input := range seedModifiers {
		modifier, err := admin.CreateModifier(ctx, ownerID, input)
		if err != nil {
			stdLog.Fatalf("Failed to create modifier %s: %v", input.Name, err)
		}
		modifierIDs[input.Name] = strconv.FormatUint(uint64(modifier.ID), 10)
	}

	for _, item := range seedProducts {
		allowed := make([]string, 0, len(item.modifiers))
		for _, name := range item.modifiers {
			allowed = append(allowed, modifierIDs[name])
		}
		if _, err := admin.CreateProduct(ctx, ownerID, service.ProductInput{
			CategoryID:       categoryIDs[item.category],
			Name:             item.name,
			Description:      item.desc,
			Price:            item.price,
			ImageURL:         item.image,
			IsPromoted:       item.promoted,
			AllowedModifiers: allowed,
		}); err != nil {
			stdLog.Printf("Failed to create product %s: %v", item.name, err)
			continue
		}
		stdLog.Printf("Created product: %s", item.name)
	}

	stdLog.Printf("Seed completed. Storefront: /api/v1/public/stores/%s", store.Slug)
}
