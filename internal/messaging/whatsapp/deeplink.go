package whatsapp

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/webild-pos/internal/order"
)

// DefaultDeepLinkBaseURL 默认深链地址
const DefaultDeepLinkBaseURL = "https://wa.me"

// ChannelDeepLink 深链通道名
const ChannelDeepLink = "deeplink"

// ErrRecipientInvalid 收件号码无效
var ErrRecipientInvalid = errors.New("whatsapp: recipient must contain digits only")

// DeepLinkMessenger 生成 wa.me 深链，由顾客端打开完成发送
type DeepLinkMessenger struct {
	baseURL string
}

// NewDeepLinkMessenger 创建深链通道，baseURL 为空时使用 https://wa.me
func NewDeepLinkMessenger(baseURL string) *DeepLinkMessenger {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultDeepLinkBaseURL
	}
	return &DeepLinkMessenger{baseURL: baseURL}
}

// Name 通道名
func (m *DeepLinkMessenger) Name() string {
	return ChannelDeepLink
}

// Send 返回深链，不发起网络请求
func (m *DeepLinkMessenger) Send(_ context.Context, msg order.Message) (order.Outcome, error) {
	link, err := m.Link(msg.Recipient, msg.Text)
	if err != nil {
		return order.Outcome{}, err
	}
	return order.Outcome{
		Channel:   ChannelDeepLink,
		Recipient: msg.Recipient,
		URL:       link,
	}, nil
}

// Link 构建 <base>/<digits>?text=<encoded>
func (m *DeepLinkMessenger) Link(recipient, text string) (string, error) {
	if recipient == "" || order.NormalizeContact(recipient) != recipient {
		return "", ErrRecipientInvalid
	}
	return m.baseURL + "/" + recipient + "?text=" + EncodeText(text), nil
}

// EncodeText 按 URI 组件规则编码，空格编码为 %20
func EncodeText(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}
