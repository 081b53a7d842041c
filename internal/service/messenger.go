package service

import (
	"context"

	"github.com/webild-pos/internal/logger"
	"github.com/webild-pos/internal/order"
	"github.com/webild-pos/internal/queue"
)

// QueuedMessenger 通过队列异步下发；队列未启用时直接调用发送器
type QueuedMessenger struct {
	queue  *queue.Client
	sender order.Messenger
}

// NewQueuedMessenger 创建异步消息通道
func NewQueuedMessenger(queueClient *queue.Client, sender order.Messenger) *QueuedMessenger {
	return &QueuedMessenger{queue: queueClient, sender: sender}
}

// Name 通道名称
func (m *QueuedMessenger) Name() string {
	if m == nil || m.sender == nil {
		return ""
	}
	return m.sender.Name()
}

// Send 入队订单消息，返回任务ID作为引用
func (m *QueuedMessenger) Send(ctx context.Context, msg order.Message) (order.Outcome, error) {
	if m == nil || m.sender == nil {
		return order.Outcome{}, order.ErrMessengerUnavailable
	}
	if !m.queue.Enabled() {
		return m.sender.Send(ctx, msg)
	}
	taskID, err := m.queue.EnqueueOrderDispatch(queue.OrderDispatchPayload{
		StoreSlug: msg.StoreSlug,
		Recipient: msg.Recipient,
		Text:      msg.Text,
	})
	if err != nil {
		logger.FromContext(ctx).Errorw("order_dispatch_enqueue_failed", "store_slug", msg.StoreSlug, "error", err)
		return order.Outcome{}, err
	}
	return order.Outcome{
		Channel:   m.sender.Name(),
		Recipient: msg.Recipient,
		Reference: taskID,
		Queued:    true,
	}, nil
}
