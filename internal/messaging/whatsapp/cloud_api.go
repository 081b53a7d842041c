package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/webild-pos/internal/order"
)

// ChannelCloudAPI Cloud API 通道名
const ChannelCloudAPI = "cloud_api"

// DefaultCloudAPIBaseURL 默认 Graph API 地址
const DefaultCloudAPIBaseURL = "https://graph.facebook.com/v21.0"

var (
	ErrConfigInvalid   = errors.New("whatsapp cloud api config invalid")
	ErrRequestFailed   = errors.New("whatsapp cloud api request failed")
	ErrResponseInvalid = errors.New("whatsapp cloud api response invalid")
)

// CloudAPIConfig Cloud API 配置
type CloudAPIConfig struct {
	BaseURL       string        `json:"base_url"`        // Graph API 地址
	Token         string        `json:"token"`           // 永久访问令牌
	PhoneNumberID string        `json:"phone_number_id"` // 发送方号码 ID
	Timeout       time.Duration `json:"timeout"`
}

// Normalize 规范化配置
func (c *CloudAPIConfig) Normalize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.Token = strings.TrimSpace(c.Token)
	c.PhoneNumberID = strings.TrimSpace(c.PhoneNumberID)
	if c.BaseURL == "" {
		c.BaseURL = DefaultCloudAPIBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
}

// ValidateCloudAPIConfig 校验配置
func ValidateCloudAPIConfig(cfg *CloudAPIConfig) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if cfg.Token == "" {
		return fmt.Errorf("%w: token is required", ErrConfigInvalid)
	}
	if cfg.PhoneNumberID == "" {
		return fmt.Errorf("%w: phone_number_id is required", ErrConfigInvalid)
	}
	return nil
}

// CloudAPISender 通过 WhatsApp Cloud API 直接把订单文本发到商户号码
type CloudAPISender struct {
	cfg    CloudAPIConfig
	client *http.Client
}

// NewCloudAPISender 创建发送器
func NewCloudAPISender(cfg CloudAPIConfig) (*CloudAPISender, error) {
	cfg.Normalize()
	if err := ValidateCloudAPIConfig(&cfg); err != nil {
		return nil, err
	}
	return &CloudAPISender{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Name 通道名
func (s *CloudAPISender) Name() string {
	return ChannelCloudAPI
}

type textBody struct {
	Body       string `json:"body"`
	PreviewURL bool   `json:"preview_url"`
}

type sendRequest struct {
	MessagingProduct string   `json:"messaging_product"`
	RecipientType    string   `json:"recipient_type"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             textBody `json:"text"`
}

type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// Send 发送文本消息
func (s *CloudAPISender) Send(ctx context.Context, msg order.Message) (order.Outcome, error) {
	if msg.Recipient == "" || order.NormalizeContact(msg.Recipient) != msg.Recipient {
		return order.Outcome{}, ErrRecipientInvalid
	}
	payload := sendRequest{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               msg.Recipient,
		Type:             "text",
		Text:             textBody{Body: msg.Text},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return order.Outcome{}, err
	}

	endpoint := s.cfg.BaseURL + "/" + s.cfg.PhoneNumberID + "/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return order.Outcome{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.Token)

	resp, err := s.client.Do(req)
	if err != nil {
		return order.Outcome{}, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return order.Outcome{}, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	var parsed sendResponse
	if len(respBytes) > 0 {
		if err := json.Unmarshal(respBytes, &parsed); err != nil {
			return order.Outcome{}, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if parsed.Error != nil && parsed.Error.Message != "" {
			return order.Outcome{}, fmt.Errorf("%w: http status %d: %s", ErrRequestFailed, resp.StatusCode, parsed.Error.Message)
		}
		return order.Outcome{}, fmt.Errorf("%w: http status %d", ErrRequestFailed, resp.StatusCode)
	}
	if len(parsed.Messages) == 0 || parsed.Messages[0].ID == "" {
		return order.Outcome{}, fmt.Errorf("%w: missing message id", ErrResponseInvalid)
	}

	return order.Outcome{
		Channel:   ChannelCloudAPI,
		Recipient: msg.Recipient,
		Reference: parsed.Messages[0].ID,
	}, nil
}
