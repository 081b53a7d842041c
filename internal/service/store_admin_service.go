package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/webild-pos/internal/logger"
	"github.com/webild-pos/internal/models"
	"github.com/webild-pos/internal/repository"

	"github.com/shopspring/decimal"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

const maxSlugLength = 80

// StoreAdminService 店主后台：店铺设置与菜单维护
// 所有操作都限定在 ownerID 名下的店铺内
type StoreAdminService struct {
	storeRepo    repository.StoreRepository
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	modifierRepo repository.ModifierRepository
	catalog      *CatalogService
}

// NewStoreAdminService 创建后台服务
func NewStoreAdminService(
	storeRepo repository.StoreRepository,
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	modifierRepo repository.ModifierRepository,
	catalogService *CatalogService,
) *StoreAdminService {
	return &StoreAdminService{
		storeRepo:    storeRepo,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		modifierRepo: modifierRepo,
		catalog:      catalogService,
	}
}

// CreateStoreInput 开店输入
type CreateStoreInput struct {
	Name string
	Slug string
}

// UpdateStoreInput 店铺设置
type UpdateStoreInput struct {
	Name           string
	Slug           string
	Phone          string
	Rate           string
	Schedule       string
	DeliveryCities []string
	LogoURL        string
	HeroURL        string
}

// Slugify 由店名生成店铺标识
func Slugify(raw string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(raw)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if folded, ok := accentFold[r]; ok {
				b.WriteRune(folded)
				dash = false
				continue
			}
			if b.Len() > 0 && !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	slug := strings.TrimRight(b.String(), "-")
	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-")
	}
	return slug
}

var accentFold = map[rune]rune{
	'á': 'a', 'à': 'a', 'ä': 'a', 'â': 'a',
	'é': 'e', 'è': 'e', 'ë': 'e', 'ê': 'e',
	'í': 'i', 'ì': 'i', 'ï': 'i', 'î': 'i',
	'ó': 'o', 'ò': 'o', 'ö': 'o', 'ô': 'o',
	'ú': 'u', 'ù': 'u', 'ü': 'u', 'û': 'u',
	'ñ': 'n', 'ç': 'c',
}

func normalizeSlug(raw, fallbackName string) (string, error) {
	slug := strings.ToLower(strings.TrimSpace(raw))
	if slug == "" {
		slug = Slugify(fallbackName)
	}
	if slug == "" || len(slug) > maxSlugLength || !slugPattern.MatchString(slug) {
		return "", ErrSlugInvalid
	}
	return slug, nil
}

func parseRate(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	rate, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", "."))
	if err != nil || rate.IsNegative() {
		return decimal.Zero, ErrInvalidRate
	}
	return rate, nil
}

func parsePrice(raw string) (models.Money, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.Money{}, ErrInvalidPrice
	}
	price, err := models.ParseMoney(raw)
	if err != nil || price.IsNegative() {
		return models.Money{}, ErrInvalidPrice
	}
	return price, nil
}

// CreateStore 开店；每个店主只能有一家店
func (s *StoreAdminService) CreateStore(ctx context.Context, ownerID string, input CreateStoreInput) (*models.Store, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, ErrUnauthorized
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	existing, err := s.storeRepo.GetByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrStoreExists
	}
	slug, err := normalizeSlug(input.Slug, name)
	if err != nil {
		return nil, err
	}
	count, err := s.storeRepo.CountBySlug(slug, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	store := models.Store{
		OwnerID:        ownerID,
		Slug:           slug,
		Name:           name,
		RateVES:        decimal.Zero,
		DeliveryCities: models.StringArray{},
	}
	if err := s.storeRepo.Create(&store); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Infow("store_created", "store_slug", slug, "owner_id", ownerID)
	return &store, nil
}

// GetStore 获取店主名下的店铺
func (s *StoreAdminService) GetStore(ownerID string) (*models.Store, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, ErrUnauthorized
	}
	store, err := s.storeRepo.GetByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}
	return store, nil
}

// UpdateStore 更新店铺设置；修改标识时新旧快照都失效
func (s *StoreAdminService) UpdateStore(ctx context.Context, ownerID string, input UpdateStoreInput) (*models.Store, error) {
	store, err := s.GetStore(ownerID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	slug := store.Slug
	if strings.TrimSpace(input.Slug) != "" {
		slug, err = normalizeSlug(input.Slug, name)
		if err != nil {
			return nil, err
		}
	}
	if slug != store.Slug {
		count, err := s.storeRepo.CountBySlug(slug, &store.ID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSlugExists
		}
	}
	rate, err := parseRate(input.Rate)
	if err != nil {
		return nil, err
	}
	cities := models.CompactStrings(input.DeliveryCities)

	oldSlug := store.Slug
	store.Name = name
	store.Slug = slug
	store.Phone = strings.TrimSpace(input.Phone)
	store.RateVES = rate
	store.Schedule = strings.TrimSpace(input.Schedule)
	store.DeliveryCities = cities
	store.LogoURL = strings.TrimSpace(input.LogoURL)
	store.HeroURL = strings.TrimSpace(input.HeroURL)
	if err := s.storeRepo.Update(store); err != nil {
		return nil, err
	}
	if oldSlug != slug {
		s.catalog.Invalidate(ctx, oldSlug, slug)
	} else {
		s.catalog.Invalidate(ctx, slug)
	}
	return store, nil
}
