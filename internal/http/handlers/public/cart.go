package public

import (
	"github.com/webild-pos/internal/http/response"
	"github.com/webild-pos/internal/service"

	"github.com/gin-gonic/gin"
)

// CartItemRequest 加入购物车请求
type CartItemRequest struct {
	ProductID   string   `json:"product_id" binding:"required"`
	Quantity    *int     `json:"qty"`
	ModifierIDs []string `json:"mods"`
}

// CartQuantityRequest 修改数量请求；qty <= 0 表示移除
type CartQuantityRequest struct {
	Quantity *int `json:"qty" binding:"required"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	ctx, slug := storeContext(c)
	view, err := h.CartService.Get(ctx, slug, h.cartSessionID(c, false))
	if err != nil {
		respondCartError(c, err, "error.cart_fetch_failed")
		return
	}
	response.Success(c, view)
}

// AddCartItem 加入购物车；相同菜品与加料组合合并数量
func (h *Handler) AddCartItem(c *gin.Context) {
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	ctx, slug := storeContext(c)
	view, err := h.CartService.AddItem(ctx, service.AddCartItemInput{
		StoreSlug:   slug,
		SessionID:   h.cartSessionID(c, true),
		ProductID:   req.ProductID,
		Quantity:    quantity,
		ModifierIDs: req.ModifierIDs,
	})
	if err != nil {
		respondCartError(c, err, "error.cart_update_failed")
		return
	}
	response.Success(c, view)
}

// UpdateCartItem 修改购物车行数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req CartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	ctx, slug := storeContext(c)
	view, err := h.CartService.UpdateItem(ctx, slug, h.cartSessionID(c, false), c.Param("line_id"), *req.Quantity)
	if err != nil {
		respondCartError(c, err, "error.cart_update_failed")
		return
	}
	response.Success(c, view)
}

// RemoveCartItem 移除购物车行
func (h *Handler) RemoveCartItem(c *gin.Context) {
	ctx, slug := storeContext(c)
	view, err := h.CartService.RemoveItem(ctx, slug, h.cartSessionID(c, false), c.Param("line_id"))
	if err != nil {
		respondCartError(c, err, "error.cart_update_failed")
		return
	}
	response.Success(c, view)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	ctx, slug := storeContext(c)
	view, err := h.CartService.Clear(ctx, slug, h.cartSessionID(c, false))
	if err != nil {
		respondCartError(c, err, "error.cart_update_failed")
		return
	}
	response.Success(c, view)
}

// OpenCheckout 打开结账页
func (h *Handler) OpenCheckout(c *gin.Context) {
	ctx, slug := storeContext(c)
	view, err := h.CartService.OpenCheckout(ctx, slug, h.cartSessionID(c, false))
	if err != nil {
		respondCartError(c, err, "error.cart_update_failed")
		return
	}
	response.Success(c, view)
}

// CloseCheckout 关闭结账页
func (h *Handler) CloseCheckout(c *gin.Context) {
	ctx, slug := storeContext(c)
	view, err := h.CartService.CloseCheckout(ctx, slug, h.cartSessionID(c, false))
	if err != nil {
		respondCartError(c, err, "error.cart_update_failed")
		return
	}
	response.Success(c, view)
}
