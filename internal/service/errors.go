package service

import (
	"errors"

	"github.com/webild-pos/internal/cart"
)

var (
	ErrStoreNotFound       = errors.New("store not found")
	ErrStoreExists         = errors.New("owner already has a store")
	ErrSlugExists          = errors.New("slug already exists")
	ErrSlugInvalid         = errors.New("slug is invalid")
	ErrNameRequired        = errors.New("name is required")
	ErrInvalidPrice        = errors.New("price must be a non-negative amount")
	ErrInvalidRate         = errors.New("exchange rate must be a non-negative number")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryInUse       = errors.New("category still has products")
	ErrProductNotFound     = errors.New("product not found")
	ErrProductNotAvailable = errors.New("product not available")
	ErrModifierNotFound    = errors.New("modifier not found")
	ErrModifierNotAllowed  = errors.New("modifier not allowed for product")
	ErrLineNotFound        = errors.New("cart line not found")
	ErrSessionRequired     = errors.New("cart session is required")
	ErrQuantityTooLarge    = errors.New("quantity exceeds limit")
	ErrCartFull            = errors.New("cart has too many lines")
	ErrUnauthorized        = errors.New("unauthorized")
	// ErrCartEmpty 购物车为空（结账/打开结账页）
	ErrCartEmpty = cart.ErrCartEmpty
)
