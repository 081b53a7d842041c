package public

import (
	"strings"

	"github.com/webild-pos/internal/http/response"
	"github.com/webild-pos/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest 结账表单
type CheckoutRequest struct {
	CustomerName string `json:"customer_name"`
	Mode         string `json:"mode"`
	Destination  string `json:"destination"`
	Locale       string `json:"locale"`
}

func (h *Handler) bindCheckout(c *gin.Context) (service.CheckoutInput, bool) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return service.CheckoutInput{}, false
	}
	return service.CheckoutInput{
		StoreSlug:    strings.ToLower(strings.TrimSpace(c.Param("slug"))),
		SessionID:    h.cartSessionID(c, false),
		CustomerName: req.CustomerName,
		Mode:         req.Mode,
		Destination:  req.Destination,
		Locale:       explicitLocale(c, req.Locale),
	}, true
}

// PreviewCheckout 预览订单消息，不下发
func (h *Handler) PreviewCheckout(c *gin.Context) {
	input, ok := h.bindCheckout(c)
	if !ok {
		return
	}
	ctx, _ := storeContext(c)
	preview, err := h.CheckoutService.Preview(ctx, input)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, preview)
}

// SubmitCheckout 生成订单消息并下发给商户 WhatsApp
func (h *Handler) SubmitCheckout(c *gin.Context) {
	input, ok := h.bindCheckout(c)
	if !ok {
		return
	}
	ctx, _ := storeContext(c)
	result, err := h.CheckoutService.Submit(ctx, input)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, result)
}
