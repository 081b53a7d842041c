package order

import (
	"context"
	"errors"
	"strings"
	"unicode"
)

// ErrContactNotConfigured 商户未配置联系号码
var ErrContactNotConfigured = errors.New("order: merchant contact channel is not configured")

// ErrMessageEmpty 订单消息为空
var ErrMessageEmpty = errors.New("order: formatted message is empty")

// ErrMessengerUnavailable 未配置消息通道
var ErrMessengerUnavailable = errors.New("order: messenger unavailable")

// ConfigError 商户配置错误，阻止下发但不影响购物车
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Err == nil {
		return "order: configuration error: " + e.Field
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IsConfigError 判断是否为配置错误
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}

// Message 交给消息通道的订单
type Message struct {
	Text      string `json:"text"`
	Recipient string `json:"recipient"`
	StoreSlug string `json:"store_slug"`
}

// Outcome 下发结果；只表示已发起，不代表送达
type Outcome struct {
	Channel   string `json:"channel"`
	Recipient string `json:"recipient"`
	URL       string `json:"url,omitempty"`
	Reference string `json:"reference,omitempty"`
	Queued    bool   `json:"queued"`
}

// Messenger 外部消息通道
type Messenger interface {
	Name() string
	Send(ctx context.Context, msg Message) (Outcome, error)
}

// NormalizeContact 去掉所有非数字字符（"+58 414-123-4567" -> "584141234567"）
func NormalizeContact(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Dispatcher 归一化联系方式后交给消息通道
type Dispatcher struct {
	messenger Messenger
}

// NewDispatcher 创建下发器
func NewDispatcher(messenger Messenger) *Dispatcher {
	return &Dispatcher{messenger: messenger}
}

// Dispatch 下发订单消息
// 联系号码为空时返回 *ConfigError 且不调用消息通道
func (d *Dispatcher) Dispatch(ctx context.Context, text, contactChannel, storeSlug string) (Outcome, error) {
	recipient := NormalizeContact(contactChannel)
	if recipient == "" {
		return Outcome{}, &ConfigError{Field: "contact_channel", Err: ErrContactNotConfigured}
	}
	if strings.TrimSpace(text) == "" {
		return Outcome{}, ErrMessageEmpty
	}
	if d == nil || d.messenger == nil {
		return Outcome{}, ErrMessengerUnavailable
	}
	return d.messenger.Send(ctx, Message{
		Text:      text,
		Recipient: recipient,
		StoreSlug: storeSlug,
	})
}
