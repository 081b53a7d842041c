package admin

import (
	"github.com/webild-pos/internal/http/response"
	"github.com/webild-pos/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateStoreRequest 开店请求
type CreateStoreRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug"`
}

// UpdateStoreRequest 店铺设置请求
type UpdateStoreRequest struct {
	Name           string   `json:"name" binding:"required"`
	Slug           string   `json:"slug"`
	Phone          string   `json:"phone"`
	Rate           string   `json:"rate_ves"`
	Schedule       string   `json:"schedule"`
	DeliveryCities []string `json:"delivery_cities"`
	LogoURL        string   `json:"logo_url"`
	HeroURL        string   `json:"hero_url"`
}

// GetStore 获取当前店主的店铺
func (h *Handler) GetStore(c *gin.Context) {
	_, ownerID, ok := ownerContext(c)
	if !ok {
		return
	}
	store, err := h.StoreAdminService.GetStore(ownerID)
	if err != nil {
		respondWithMappedError(c, err, storeAdminErrorRules, response.CodeInternal, "error.store_fetch_failed")
		return
	}
	response.Success(c, store)
}

// CreateStore 开店（每位店主一家）
func (h *Handler) CreateStore(c *gin.Context) {
	ctx, ownerID, ok := ownerContext(c)
	if !ok {
		return
	}
	var req CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.name_required", nil)
		return
	}
	store, err := h.StoreAdminService.CreateStore(ctx, ownerID, service.CreateStoreInput{
		Name: req.Name,
		Slug: req.Slug,
	})
	if err != nil {
		respondStoreAdminError(c, err)
		return
	}
	response.Success(c, store)
}

// UpdateStore 更新店铺设置
func (h *Handler) UpdateStore(c *gin.Context) {
	ctx, ownerID, ok := ownerContext(c)
	if !ok {
		return
	}
	var req UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.name_required", nil)
		return
	}
	store, err := h.StoreAdminService.UpdateStore(ctx, ownerID, service.UpdateStoreInput{
		Name:           req.Name,
		Slug:           req.Slug,
		Phone:          req.Phone,
		Rate:           req.Rate,
		Schedule:       req.Schedule,
		DeliveryCities: req.DeliveryCities,
		LogoURL:        req.LogoURL,
		HeroURL:        req.HeroURL,
	})
	if err != nil {
		respondStoreAdminError(c, err)
		return
	}
	response.Success(c, store)
}
