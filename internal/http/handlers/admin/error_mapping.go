package admin

import (
	"errors"

	"github.com/webild-pos/internal/http/response"
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

var storeAdminErrorRules = []mappedHandlerError{
	{target: service.ErrUnauthorized, code: response.CodeUnauthorized, key: "error.unauthorized"},
	{target: service.ErrStoreNotFound, code: response.CodeNotFound, key: "error.store_not_found"},
	{target: service.ErrStoreExists, code: response.CodeConflict, key: "error.store_exists"},
	{target: service.ErrSlugExists, code: response.CodeConflict, key: "error.slug_exists"},
	{target: service.ErrSlugInvalid, code: response.CodeBadRequest, key: "error.slug_invalid"},
	{target: service.ErrNameRequired, code: response.CodeBadRequest, key: "error.name_required"},
	{target: service.ErrInvalidRate, code: response.CodeBadRequest, key: "error.rate_invalid"},
}

var menuAdminErrorRules = []mappedHandlerError{
	{target: service.ErrUnauthorized, code: response.CodeUnauthorized, key: "error.unauthorized"},
	{target: service.ErrStoreNotFound, code: response.CodeNotFound, key: "error.store_not_found"},
	{target: service.ErrNameRequired, code: response.CodeBadRequest, key: "error.name_required"},
	{target: service.ErrInvalidPrice, code: response.CodeBadRequest, key: "error.price_invalid"},
	{target: service.ErrCategoryNotFound, code: response.CodeNotFound, key: "error.category_not_found"},
	{target: service.ErrCategoryInUse, code: response.CodeConflict, key: "error.category_in_use"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrModifierNotFound, code: response.CodeNotFound, key: "error.modifier_not_found"},
}

func respondStoreAdminError(c *gin.Context, err error) {
	respondWithMappedError(c, err, storeAdminErrorRules, response.CodeInternal, "error.store_save_failed")
}

func respondMenuAdminError(c *gin.Context, err error) {
	respondWithMappedError(c, err, menuAdminErrorRules, response.CodeInternal, "error.menu_save_failed")
}
