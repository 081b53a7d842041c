package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/webild-pos/internal/logger"
	"github.com/webild-pos/internal/messaging/whatsapp"
	"github.com/webild-pos/internal/order"
	"github.com/webild-pos/internal/provider"
	"github.com/webild-pos/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderDispatch, c.handleOrderDispatch)
}

func (c *Consumer) handleOrderDispatch(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_dispatch_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseOrderDispatchPayload(task)
	if err != nil {
		logger.Warnw("worker_order_dispatch_unmarshal_failed", "error", err)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if strings.TrimSpace(payload.Recipient) == "" || strings.TrimSpace(payload.Text) == "" {
		logger.Warnw("worker_order_dispatch_skip_invalid_payload",
			"store_slug", payload.StoreSlug,
			"recipient_empty", strings.TrimSpace(payload.Recipient) == "",
			"text_empty", strings.TrimSpace(payload.Text) == "",
		)
		return fmt.Errorf("invalid order dispatch payload: %w", asynq.SkipRetry)
	}
	if c.Container == nil || c.OrderSender == nil {
		logger.Warnw("worker_order_dispatch_skip_sender_nil", "store_slug", payload.StoreSlug)
		return fmt.Errorf("%v: %w", order.ErrMessengerUnavailable, asynq.SkipRetry)
	}

	outcome, err := c.OrderSender.Send(ctx, order.Message{
		Text:      payload.Text,
		Recipient: payload.Recipient,
		StoreSlug: payload.StoreSlug,
	})
	if err != nil {
		if errors.Is(err, whatsapp.ErrConfigInvalid) || errors.Is(err, whatsapp.ErrRecipientInvalid) {
			logger.Errorw("worker_order_dispatch_rejected",
				"store_slug", payload.StoreSlug,
				"channel", c.OrderSender.Name(),
				"error", err,
			)
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		logger.Warnw("worker_order_dispatch_failed",
			"store_slug", payload.StoreSlug,
			"channel", c.OrderSender.Name(),
			"error", err,
		)
		return err
	}
	logger.Infow("worker_order_dispatch_sent",
		"store_slug", payload.StoreSlug,
		"channel", outcome.Channel,
		"reference", outcome.Reference,
	)
	return nil
}
