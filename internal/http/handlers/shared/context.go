package shared

import (
	"strconv"
	"strings"

	"github.com/webild-pos/internal/constants"
	"github.com/webild-pos/internal/http/response"

	"github.com/gin-gonic/gin"
)

// OwnerIDKey 鉴权中间件写入的店主ID
const OwnerIDKey = constants.ContextKeyOwnerID

// GetOwnerID 读取当前店主ID，缺失时直接返回 401。
func GetOwnerID(c *gin.Context) (string, bool) {
	value, exists := c.Get(OwnerIDKey)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return "", false
	}
	ownerID, ok := value.(string)
	if !ok || strings.TrimSpace(ownerID) == "" {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return "", false
	}
	return ownerID, true
}

// ParseUintParam 解析路径中的数字ID，非法时返回 400。
func ParseUintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id == 0 {
		RespondError(c, response.CodeBadRequest, "error.id_invalid", nil)
		return 0, false
	}
	return uint(id), true
}
