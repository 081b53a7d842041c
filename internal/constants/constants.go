package constants

// 队列与任务常量
const (
	QueueDefault      = "default"
	QueueCritical     = "critical"
	TaskOrderDispatch = "order:dispatch"
)

// 订单消息下发重试
const (
	OrderDispatchMaxRetry       = 5
	OrderDispatchTimeoutSeconds = 30
)

// 购物车会话
const (
	DefaultCartSessionHeader = "X-Cart-Session"
	MaxCartLineQuantity      = 99
	MaxCartLines             = 50
)

// 请求上下文键
const (
	ContextKeyRequestID = "request_id"
	ContextKeyOwnerID   = "owner_id"
)
