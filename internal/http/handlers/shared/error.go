package shared

import (
	"github.com/webild-pos/internal/http/response"
	"github.com/webild-pos/internal/i18n"
	"github.com/webild-pos/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 请求级日志（带 request_id 及处理器附加的 store_slug/owner_id）
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil || c.Request == nil {
		return logger.S()
	}
	return logger.FromContext(c.Request.Context())
}

// RespondError 按请求语言翻译 key 并写出错误响应；err 非空时记录日志，5xx 记 error，其余记 warn
func RespondError(c *gin.Context, code int, key string, err error) {
	appErr := response.WrapError(code, i18n.T(i18n.ResolveLocale(c), key), err)
	if err != nil {
		log := RequestLog(c).With("code", appErr.Code, "key", key, "path", c.FullPath())
		if code >= response.CodeInternal {
			log.Errorw("handler_error", "error", err)
		} else {
			log.Warnw("handler_error", "error", err)
		}
	}
	response.Error(c, appErr.Code, appErr.Message)
}
