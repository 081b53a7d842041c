package admin

import (
	"strconv"

	handlershared "github.com/webild-pos/internal/http/handlers/shared"
	"github.com/webild-pos/internal/http/response"
	"github.com/webild-pos/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductRequest 菜品创建/更新请求
type ProductRequest struct {
	CategoryID       uint     `json:"category_id"`
	Name             string   `json:"name" binding:"required"`
	Description      string   `json:"description"`
	Price            string   `json:"price" binding:"required"`
	ImageURL         string   `json:"image_url"`
	IsAvailable      *bool    `json:"is_available"`
	IsPromoted       bool     `json:"is_promoted"`
	AllowedModifiers []string `json:"allowed_modifiers"`
}

// AvailabilityRequest 上下架请求
type AvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		CategoryID:       r.CategoryID,
		Name:             r.Name,
		Description:      r.Description,
		Price:            r.Price,
		ImageURL:         r.ImageURL,
		IsAvailable:      r.IsAvailable,
		IsPromoted:       r.IsPromoted,
		AllowedModifiers: r.AllowedModifiers,
	}
}

// GetProducts 后台菜品列表（分页，包含已下架）
func (h *Handler) GetProducts(c *gin.Context) {
	_, ownerID, ok := ownerContext(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.QueryPagination(c)
	var categoryID uint
	if raw := c.Query("category_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.id_invalid", nil)
			return
		}
		categoryID = uint(parsed)
	}
	products, total, err := h.StoreAdminService.ListProducts(ownerID, categoryID, c.Query("search"), page, pageSize)
	if err != nil {
		respondWithMappedError(c, err, menuAdminErrorRules, response.CodeInternal, "error.store_fetch_failed")
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// CreateProduct 创建菜品
func (h *Handler) CreateProduct(c *gin.Context) {
	ctx, ownerID, ok := ownerContext(c)
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	product, err := h.StoreAdminService.CreateProduct(ctx, ownerID, req.toInput())
	if err != nil {
		respondMenuAdminError(c, err)
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新菜品
func (h *Handler) UpdateProduct(c *gin.Context) {
	ctx, ownerID, ok := ownerContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	product, err := h.StoreAdminService.UpdateProduct(ctx, ownerID, id, req.toInput())
	if err != nil {
		respondMenuAdminError(c, err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除菜品
func (h *Handler) DeleteProduct(c *gin.Context) {
	ctx, ownerID, ok := ownerContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.StoreAdminService.DeleteProduct(ctx, ownerID, id); err != nil {
		respondMenuAdminError(c, err)
		return
	}
	response.Success(c, nil)
}

// SetProductAvailability 菜品上下架
func (h *Handler) SetProductAvailability(c *gin.Context) {
	ctx, ownerID, ok := ownerContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsAvailable == nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.StoreAdminService.SetProductAvailability(ctx, ownerID, id, *req.IsAvailable); err != nil {
		respondMenuAdminError(c, err)
		return
	}
	response.Success(c, gin.H{"id": id, "is_available": *req.IsAvailable})
}
