package admin

import (
	"context"

	handlershared "github.com/webild-pos/internal/http/handlers/shared"
	"github.com/webild-pos/internal/logger"

	"github.com/gin-gonic/gin"
)

// ownerContext 读取店主ID并返回携带 owner_id 日志字段的上下文
func ownerContext(c *gin.Context) (context.Context, string, bool) {
	ownerID, ok := handlershared.GetOwnerID(c)
	if !ok {
		return nil, "", false
	}
	return logger.WithContext(c.Request.Context(), "owner_id", ownerID), ownerID, true
}

func parseID(c *gin.Context) (uint, bool) {
	return handlershared.ParseUintParam(c, "id")
}
