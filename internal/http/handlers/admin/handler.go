package admin

import "github.com/webild-pos/internal/provider"

// Handler 商户后台接口处理器入口
// 说明：该处理器仅用于店主管理自己店铺的 API，需携带外部平台签发的令牌。
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
