package admin

import (
	"github.com/webild-pos/internal/http/response"
	"github.com/webild-pos/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 分类创建/更新请求
type CategoryRequest struct {
	Name      string `json:"name" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

// GetCategories 分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	_, ownerID, ok := ownerContext(c)
	if !ok {
		return
	}
	categories, err := h.StoreAdminService.ListCategories(ownerID)
	if err != nil {
		respondWithMappedError(c, err, menuAdminErrorRules, response.CodeInternal, "error.store_fetch_failed")
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	ctx, ownerID, ok := ownerContext(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.name_required", nil)
		return
	}
	category, err := h.StoreAdminService.CreateCategory(ctx, ownerID, service.CategoryInput{
		Name:      req.Name,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respondMenuAdminError(c, err)
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	ctx, ownerID, ok := ownerContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.name_required", nil)
		return
	}
	category, err := h.StoreAdminService.UpdateCategory(ctx, ownerID, id, service.CategoryInput{
		Name:      req.Name,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respondMenuAdminError(c, err)
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类（仍有菜品时拒绝）
func (h *Handler) DeleteCategory(c *gin.Context) {
	ctx, ownerID, ok := ownerContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.StoreAdminService.DeleteCategory(ctx, ownerID, id); err != nil {
		respondMenuAdminError(c, err)
		return
	}
	response.Success(c, nil)
}
