package admin

import (
	"github.com/webild-pos/internal/http/response"
	"github.com/webild-pos/internal/service"

	"github.com/gin-gonic/gin"
)

// ModifierRequest 加料创建/更新请求
type ModifierRequest struct {
	Name        string `json:"name" binding:"required"`
	Price       string `json:"price"`
	IsAvailable *bool  `json:"is_available"`
}

func (r ModifierRequest) toInput() service.ModifierInput {
	return service.ModifierInput{Name: r.Name, Price: r.Price, IsAvailable: r.IsAvailable}
}

// GetModifiers 加料列表
func (h *Handler) GetModifiers(c *gin.Context) {
	_, ownerID, ok := ownerContext(c)
	if !ok {
		return
	}
	modifiers, err := h.StoreAdminService.ListModifiers(ownerID)
	if err != nil {
		respondWithMappedError(c, err, menuAdminErrorRules, response.CodeInternal, "error.store_fetch_failed")
		return
	}
	response.Success(c, modifiers)
}

// CreateModifier 创建加料
func (h *Handler) CreateModifier(c *gin.Context) {
	ctx, ownerID, ok := ownerContext(c)
	if !ok {
		return
	}
	var req ModifierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.name_required", nil)
		return
	}
	modifier, err := h.StoreAdminService.CreateModifier(ctx, ownerID, req.toInput())
	if err != nil {
		respondMenuAdminError(c, err)
		return
	}
	response.Success(c, modifier)
}

// UpdateModifier 更新加料
func (h *Handler) UpdateModifier(c *gin.Context) {
	ctx, ownerID, ok := ownerContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req ModifierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.name_required", nil)
		return
	}
	modifier, err := h.StoreAdminService.UpdateModifier(ctx, ownerID, id, req.toInput())
	if err != nil {
		respondMenuAdminError(c, err)
		return
	}
	response.Success(c, modifier)
}

// DeleteModifier 删除加料；已引用它的菜品不受影响，前台会忽略失效的加料
func (h *Handler) DeleteModifier(c *gin.Context) {
	ctx, ownerID, ok := ownerContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.StoreAdminService.DeleteModifier(ctx, ownerID, id); err != nil {
		respondMenuAdminError(c, err)
		return
	}
	response.Success(c, nil)
}

// SetModifierAvailability 加料上下架
func (h *Handler) SetModifierAvailability(c *gin.Context) {
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
	if err := h.StoreAdminService.SetModifierAvailability(ctx, ownerID, id, *req.IsAvailable); err != nil {
		respondMenuAdminError(c, err)
		return
	}
	response.Success(c, gin.H{"id": id, "is_available": *req.IsAvailable})
}
