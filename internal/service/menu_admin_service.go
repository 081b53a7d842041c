package service

import (
	"context"
	"strings"

	"github.com/webild-pos/internal/models"
	"github.com/webild-pos/internal/repository"
)

// CategoryInput 分类输入
type CategoryInput struct {
	Name      string
	SortOrder int
}

// ProductInput 菜品输入
type ProductInput struct {
	CategoryID       uint
	Name             string
	Description      string
	Price            string
	ImageURL         string
	IsAvailable      *bool
	IsPromoted       bool
	AllowedModifiers []string
}

// ModifierInput 加料输入
type ModifierInput struct {
	Name        string
	Price       string
	IsAvailable *bool
}

// ListCategories 分类列表
func (s *StoreAdminService) ListCategories(ownerID string) ([]models.Category, error) {
	store, err := s.GetStore(ownerID)
	if err != nil {
		return nil, err
	}
	return s.categoryRepo.ListByStore(store.ID)
}

// CreateCategory 创建分类
func (s *StoreAdminService) CreateCategory(ctx context.Context, ownerID string, input CategoryInput) (*models.Category, error) {
	store, err := s.GetStore(ownerID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	category := models.Category{StoreID: store.ID, Name: name, SortOrder: input.SortOrder}
	if err := s.categoryRepo.Create(&category); err != nil {
		return nil, err
	}
	s.catalog.Invalidate(ctx, store.Slug)
	return &category, nil
}

// UpdateCategory 更新分类
func (s *StoreAdminService) UpdateCategory(ctx context.Context, ownerID string, id uint, input CategoryInput) (*models.Category, error) {
	store, err := s.GetStore(ownerID)
	if err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.GetByID(store.ID, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	category.Name = name
	category.SortOrder = input.SortOrder
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	s.catalog.Invalidate(ctx, store.Slug)
	return category, nil
}

// DeleteCategory 删除分类；仍有菜品时拒绝
func (s *StoreAdminService) DeleteCategory(ctx context.Context, ownerID string, id uint) error {
	store, err := s.GetStore(ownerID)
	if err != nil {
		return err
	}
	category, err := s.categoryRepo.GetByID(store.ID, id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	remaining, err := s.categoryRepo.DeleteEmpty(store.ID, id)
	if err != nil {
		return err
	}
	if remaining > 0 {
		return ErrCategoryInUse
	}
	s.catalog.Invalidate(ctx, store.Slug)
	return nil
}

// ListProducts 后台菜品列表（包含已下架）
func (s *StoreAdminService) ListProducts(ownerID string, categoryID uint, search string, page, pageSize int) ([]models.Product, int64, error) {
	store, err := s.GetStore(ownerID)
	if err != nil {
		return nil, 0, err
	}
	return s.productRepo.List(repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		StoreID:    store.ID,
		CategoryID: categoryID,
		Search:     strings.TrimSpace(search),
	})
}

// CreateProduct 创建菜品
func (s *StoreAdminService) CreateProduct(ctx context.Context, ownerID string, input ProductInput) (*models.Product, error) {
	store, err := s.GetStore(ownerID)
	if err != nil {
		return nil, err
	}
	product := models.Product{StoreID: store.ID, IsAvailable: true}
	if err := s.applyProductInput(store, &product, input); err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(&product); err != nil {
		return nil, err
	}
	s.catalog.Invalidate(ctx, store.Slug)
	return &product, nil
}

// UpdateProduct 更新菜品
func (s *StoreAdminService) UpdateProduct(ctx context.Context, ownerID string, id uint, input ProductInput) (*models.Product, error) {
	store, err := s.GetStore(ownerID)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(store.ID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := s.applyProductInput(store, product, input); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	s.catalog.Invalidate(ctx, store.Slug)
	return product, nil
}

// DeleteProduct 删除菜品
func (s *StoreAdminService) DeleteProduct(ctx context.Context, ownerID string, id uint) error {
	store, err := s.GetStore(ownerID)
	if err != nil {
		return err
	}
	product, err := s.productRepo.GetByID(store.ID, id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if err := s.productRepo.Delete(store.ID, id); err != nil {
		return err
	}
	s.catalog.Invalidate(ctx, store.Slug)
	return nil
}

// SetProductAvailability 上下架
func (s *StoreAdminService) SetProductAvailability(ctx context.Context, ownerID string, id uint, available bool) error {
	store, err := s.GetStore(ownerID)
	if err != nil {
		return err
	}
	product, err := s.productRepo.GetByID(store.ID, id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if _, err := s.productRepo.SetAvailability(store.ID, id, available); err != nil {
		return err
	}
	s.catalog.Invalidate(ctx, store.Slug)
	return nil
}

func (s *StoreAdminService) applyProductInput(store *models.Store, product *models.Product, input ProductInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ErrNameRequired
	}
	price, err := parsePrice(input.Price)
	if err != nil {
		return err
	}
	if input.CategoryID != 0 {
		category, err := s.categoryRepo.GetByID(store.ID, input.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return ErrCategoryNotFound
		}
	}
	allowed, err := s.resolveAllowedModifiers(store.ID, input.AllowedModifiers)
	if err != nil {
		return err
	}

	product.CategoryID = input.CategoryID
	product.Name = name
	product.Description = strings.TrimSpace(input.Description)
	product.Price = price
	product.ImageURL = strings.TrimSpace(input.ImageURL)
	product.IsPromoted = input.IsPromoted
	product.AllowedModifiers = allowed
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}
	return nil
}

// resolveAllowedModifiers 校验加料属于本店，保留输入顺序并去重
func (s *StoreAdminService) resolveAllowedModifiers(storeID uint, raw []string) (models.StringArray, error) {
	result := make(models.StringArray, 0, len(raw))
	seen := make(map[uint]struct{}, len(raw))
	for _, item := range raw {
		if strings.TrimSpace(item) == "" {
			continue
		}
		id, ok := parseID(item)
		if !ok {
			return nil, ErrModifierNotFound
		}
		if _, dup := seen[id]; dup {
			continue
		}
		modifier, err := s.modifierRepo.GetByID(storeID, id)
		if err != nil {
			return nil, err
		}
		if modifier == nil {
			return nil, ErrModifierNotFound
		}
		seen[id] = struct{}{}
		result = append(result, formatID(id))
	}
	return result, nil
}

// ListModifiers 加料列表
func (s *StoreAdminService) ListModifiers(ownerID string) ([]models.Modifier, error) {
	store, err := s.GetStore(ownerID)
	if err != nil {
		return nil, err
	}
	return s.modifierRepo.ListByStore(store.ID, false)
}

// CreateModifier 创建加料
func (s *StoreAdminService) CreateModifier(ctx context.Context, ownerID string, input ModifierInput) (*models.Modifier, error) {
	store, err := s.GetStore(ownerID)
	if err != nil {
		return nil, err
	}
	modifier := models.Modifier{StoreID: store.ID, IsAvailable: true}
	if err := applyModifierInput(&modifier, input); err != nil {
		return nil, err
	}
	if err := s.modifierRepo.Create(&modifier); err != nil {
		return nil, err
	}
	s.catalog.Invalidate(ctx, store.Slug)
	return &modifier, nil
}

// UpdateModifier 更新加料；已在购物车中的行保留加入时的单价
func (s *StoreAdminService) UpdateModifier(ctx context.Context, ownerID string, id uint, input ModifierInput) (*models.Modifier, error) {
	store, err := s.GetStore(ownerID)
	if err != nil {
		return nil, err
	}
	modifier, err := s.modifierRepo.GetByID(store.ID, id)
	if err != nil {
		return nil, err
	}
	if modifier == nil {
		return nil, ErrModifierNotFound
	}
	if err := applyModifierInput(modifier, input); err != nil {
		return nil, err
	}
	if err := s.modifierRepo.Update(modifier); err != nil {
		return nil, err
	}
	s.catalog.Invalidate(ctx, store.Slug)
	return modifier, nil
}

// DeleteModifier 删除加料；菜品上的引用保留，读取时按无法解析处理
func (s *StoreAdminService) DeleteModifier(ctx context.Context, ownerID string, id uint) error {
	store, err := s.GetStore(ownerID)
	if err != nil {
		return err
	}
	modifier, err := s.modifierRepo.GetByID(store.ID, id)
	if err != nil {
		return err
	}
	if modifier == nil {
		return ErrModifierNotFound
	}
	if err := s.modifierRepo.Delete(store.ID, id); err != nil {
		return err
	}
	s.catalog.Invalidate(ctx, store.Slug)
	return nil
}

// SetModifierAvailability 启用/停用加料
func (s *StoreAdminService) SetModifierAvailability(ctx context.Context, ownerID string, id uint, available bool) error {
	store, err := s.GetStore(ownerID)
	if err != nil {
		return err
	}
	modifier, err := s.modifierRepo.GetByID(store.ID, id)
	if err != nil {
		return err
	}
	if modifier == nil {
		return ErrModifierNotFound
	}
	if _, err := s.modifierRepo.SetAvailability(store.ID, id, available); err != nil {
		return err
	}
	s.catalog.Invalidate(ctx, store.Slug)
	return nil
}

func applyModifierInput(modifier *models.Modifier, input ModifierInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ErrNameRequired
	}
	price, err := parsePrice(input.Price)
	if err != nil {
		return err
	}
	modifier.Name = name
	modifier.Price = price
	if input.IsAvailable != nil {
		modifier.IsAvailable = *input.IsAvailable
	}
	return nil
}
