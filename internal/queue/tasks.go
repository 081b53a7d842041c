package queue

import (
	"encoding/json"

	"github.com/webild-pos/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderDispatch 订单消息下发任务（Cloud API）
	TaskOrderDispatch = constants.TaskOrderDispatch
)

// OrderDispatchPayload 订单消息下发任务载荷
type OrderDispatchPayload struct {
	StoreSlug string `json:"store_slug"`
	Recipient string `json:"recipient"`
	Text      string `json:"text"`
}

// NewOrderDispatchTask 创建订单消息下发任务
func NewOrderDispatchTask(payload OrderDispatchPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderDispatch, body), nil
}

// ParseOrderDispatchPayload 解析任务载荷
func ParseOrderDispatchPayload(task *asynq.Task) (OrderDispatchPayload, error) {
	var payload OrderDispatchPayload
	if task == nil {
		return payload, nil
	}
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
