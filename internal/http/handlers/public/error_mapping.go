package public

import (
	"errors"

	"github.com/webild-pos/internal/cache"
	"github.com/webild-pos/internal/cart"
	"github.com/webild-pos/internal/http/response"
	"github.com/webild-pos/internal/messaging/whatsapp"
	"github.com/webild-pos/internal/order"
	"github.com/webild-pos/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var storeErrorRules = []mappedHandlerError{
	{target: service.ErrStoreNotFound, code: response.CodeNotFound, key: "error.store_not_found"},
}

var catalogErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrSessionRequired, code: response.CodeBadRequest, key: "error.session_required"},
	{target: cart.ErrInvalidQuantity, code: response.CodeBadRequest, key: "error.quantity_invalid"},
	{target: cart.ErrInvalidProduct, code: response.CodeBadRequest, key: "error.product_not_available"},
	{target: service.ErrQuantityTooLarge, code: response.CodeBadRequest, key: "error.quantity_too_large"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, key: "error.product_not_available"},
	{target: service.ErrModifierNotAllowed, code: response.CodeBadRequest, key: "error.modifier_not_allowed"},
	{target: service.ErrCartFull, code: response.CodeBadRequest, key: "error.cart_full"},
	{target: service.ErrLineNotFound, code: response.CodeNotFound, key: "error.line_not_found"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: cache.ErrSessionConflict, code: response.CodeConflict, key: "error.session_conflict"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: order.ErrFulfillmentModeInvalid, code: response.CodeBadRequest, key: "error.fulfillment_mode_invalid"},
	{target: order.ErrDestinationRequired, code: response.CodeBadRequest, key: "error.destination_required"},
	{target: order.ErrDestinationNotAllowed, code: response.CodeBadRequest, key: "error.destination_not_allowed"},
	{target: order.ErrContactNotConfigured, code: response.CodeConflict, key: "error.contact_not_configured"},
	{target: whatsapp.ErrRecipientInvalid, code: response.CodeConflict, key: "error.contact_not_configured"},
}

var dispatchErrorRules = []mappedHandlerError{
	{target: order.ErrMessengerUnavailable, code: response.CodeBadGateway, key: "error.dispatch_failed"},
	{target: whatsapp.ErrConfigInvalid, code: response.CodeBadGateway, key: "error.dispatch_failed"},
	{target: whatsapp.ErrRequestFailed, code: response.CodeBadGateway, key: "error.dispatch_failed"},
	{target: whatsapp.ErrResponseInvalid, code: response.CodeBadGateway, key: "error.dispatch_failed"},
}

func respondStoreError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(storeErrorRules, catalogErrorRules), response.CodeInternal, "error.store_fetch_failed")
}

func respondCartError(c *gin.Context, err error, fallbackKey string) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(storeErrorRules, cartErrorRules), response.CodeInternal, fallbackKey)
}

func respondCheckoutError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(storeErrorRules, cartErrorRules, checkoutErrorRules, dispatchErrorRules), response.CodeInternal, "error.checkout_failed")
}
