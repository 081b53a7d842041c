package public

import (
	"github.com/webild-pos/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetStore 店铺信息（名称、联系方式、汇率、营业时间、配送区域）
func (h *Handler) GetStore(c *gin.Context) {
	ctx, slug := storeContext(c)
	store, err := h.CatalogService.StoreContext(ctx, slug)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, store)
}

// GetMenu 菜单浏览，支持 ?category= 与 ?q= 过滤
func (h *Handler) GetMenu(c *gin.Context) {
	ctx, slug := storeContext(c)
	menu, err := h.CatalogService.Menu(ctx, slug, c.Query("category"), c.Query("q"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, menu)
}

// GetProduct 菜品详情及可选加料
func (h *Handler) GetProduct(c *gin.Context) {
	ctx, slug := storeContext(c)
	detail, err := h.CatalogService.ProductDetail(ctx, slug, c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, detail)
}
