package public

import "github.com/webild-pos/internal/provider"

// Handler 店铺前台接口处理器入口
// 说明：该处理器仅用于顾客侧（无需登录）的菜单、购物车与结账 API。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
