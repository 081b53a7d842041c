package service

import (
	"context"
	"strings"

	"github.com/webild-pos/internal/cache"
	"github.com/webild-pos/internal/cart"
	"github.com/webild-pos/internal/catalog"
	"github.com/webild-pos/internal/logger"
	"github.com/webild-pos/internal/models"
	"github.com/webild-pos/internal/order"
	"github.com/webild-pos/internal/pricing"
)

// CheckoutInput 结账表单
type CheckoutInput struct {
	StoreSlug    string
	SessionID    string
	CustomerName string
	Mode         string
	Destination  string
	Locale       string
}

// CheckoutPreview 订单预览
type CheckoutPreview struct {
	Text          string       `json:"text"`
	Mode          string       `json:"mode"`
	Destination   string       `json:"destination,omitempty"`
	Subtotal      models.Money `json:"subtotal"`
	SubtotalLocal models.Money `json:"subtotal_local"`
	Rate          string       `json:"rate"`
	Count         int          `json:"count"`
}

// CheckoutResult 结账结果
type CheckoutResult struct {
	CheckoutPreview
	Dispatch order.Outcome `json:"dispatch"`
}

// CheckoutService 生成订单消息并下发给商户
type CheckoutService struct {
	catalog       *CatalogService
	sessions      cache.SessionStore
	dispatcher    *order.Dispatcher
	defaultLocale string
}

// NewCheckoutService 创建结账服务
func NewCheckoutService(catalogService *CatalogService, sessions cache.SessionStore, messenger order.Messenger, defaultLocale string) *CheckoutService {
	locale := strings.TrimSpace(defaultLocale)
	if locale == "" {
		locale = order.DefaultLocale
	}
	return &CheckoutService{
		catalog:       catalogService,
		sessions:      sessions,
		dispatcher:    order.NewDispatcher(messenger),
		defaultLocale: locale,
	}
}

// Preview 生成订单文本但不下发
func (s *CheckoutService) Preview(ctx context.Context, input CheckoutInput) (*CheckoutPreview, error) {
	preview, _, err := s.build(ctx, input)
	if err != nil {
		return nil, err
	}
	return preview, nil
}

// Submit 生成订单文本并下发；购物车保持不变
func (s *CheckoutService) Submit(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	preview, snapshot, err := s.build(ctx, input)
	if err != nil {
		return nil, err
	}
	outcome, err := s.dispatcher.Dispatch(ctx, preview.Text, snapshot.Store.ContactChannel, snapshot.Store.Slug)
	if err != nil {
		logger.FromContext(ctx).Warnw("checkout_dispatch_failed",
			"store_slug", snapshot.Store.Slug,
			"config_error", order.IsConfigError(err),
			"error", err,
		)
		return nil, err
	}
	logger.FromContext(ctx).Infow("checkout_dispatched",
		"store_slug", snapshot.Store.Slug,
		"channel", outcome.Channel,
		"queued", outcome.Queued,
		"mode", preview.Mode,
		"count", preview.Count,
	)
	return &CheckoutResult{CheckoutPreview: *preview, Dispatch: outcome}, nil
}

func (s *CheckoutService) build(ctx context.Context, input CheckoutInput) (*CheckoutPreview, *catalog.Snapshot, error) {
	if strings.TrimSpace(input.SessionID) == "" {
		return nil, nil, ErrSessionRequired
	}
	snapshot, err := s.catalog.LoadSnapshot(ctx, input.StoreSlug)
	if err != nil {
		return nil, nil, err
	}
	session, err := s.sessions.Load(ctx, snapshot.Store.Slug, input.SessionID)
	if err != nil {
		return nil, nil, err
	}
	if session == nil {
		return nil, nil, ErrCartEmpty
	}
	engine := cart.Restore(session.Cart, snapshot)
	if engine.IsEmpty() {
		return nil, nil, ErrCartEmpty
	}

	mode, err := order.ParseFulfillmentMode(input.Mode)
	if err != nil {
		return nil, nil, err
	}
	fulfillment, err := order.NewFulfillment(mode, input.Destination, snapshot.Store)
	if err != nil {
		return nil, nil, err
	}

	primary, local := pricing.DualCurrencyTotal(engine.Subtotal(), snapshot.Store.Rate)
	locale := strings.TrimSpace(input.Locale)
	if locale == "" {
		locale = s.defaultLocale
	}
	text := order.NewFormatter(locale).Format(order.FormatInput{
		StoreName:       snapshot.Store.Name,
		CustomerName:    input.CustomerName,
		Fulfillment:     fulfillment,
		Lines:           engine.Lines(),
		SubtotalPrimary: primary,
		SubtotalLocal:   local,
		Rate:            snapshot.Store.Rate,
		Modifiers:       snapshot,
	})
	return &CheckoutPreview{
		Text:          text,
		Mode:          string(fulfillment.Mode),
		Destination:   fulfillment.Destination,
		Subtotal:      models.NewMoney(primary),
		SubtotalLocal: models.NewMoney(local),
		Rate:          pricing.FormatRate(snapshot.Store.Rate),
		Count:         engine.Count(),
	}, snapshot, nil
}
