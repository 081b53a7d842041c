package public

import (
	"context"
	"strings"

	"github.com/webild-pos/internal/constants"
	"github.com/webild-pos/internal/i18n"
	"github.com/webild-pos/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) sessionHeader() string {
	if h.Container != nil && h.Config != nil {
		if header := strings.TrimSpace(h.Config.Storefront.SessionHeader); header != "" {
			return header
		}
	}
	return constants.DefaultCartSessionHeader
}

// cartSessionID 读取购物车会话ID；缺失或非法时按需生成新ID，并始终回写到响应头
func (h *Handler) cartSessionID(c *gin.Context, create bool) string {
	header := h.sessionHeader()
	sessionID := strings.TrimSpace(c.GetHeader(header))
	if _, err := uuid.Parse(sessionID); err != nil {
		sessionID = ""
	}
	if sessionID == "" && create {
		sessionID = uuid.NewString()
	}
	if sessionID != "" {
		c.Writer.Header().Set(header, sessionID)
	}
	return sessionID
}

// storeContext 返回携带店铺标识日志字段的请求上下文
func storeContext(c *gin.Context) (context.Context, string) {
	slug := strings.ToLower(strings.TrimSpace(c.Param("slug")))
	return logger.WithContext(c.Request.Context(), "store_slug", slug), slug
}

// explicitLocale 仅返回请求显式指定的语言，未指定时由服务端默认语言决定
func explicitLocale(c *gin.Context, body string) string {
	if locale := i18n.Normalize(body); locale != "" {
		return locale
	}
	if locale := i18n.Normalize(c.Query("lang")); locale != "" {
		return locale
	}
	return i18n.Normalize(c.GetHeader(i18n.LocaleHeader))
}
