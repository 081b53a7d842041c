package order

import (
	"errors"
	"strings"

	"github.com/webild-pos/internal/catalog"
)

// FulfillmentMode 交付方式（封闭枚举）
type FulfillmentMode string

const (
	FulfillmentDelivery FulfillmentMode = "delivery"
	FulfillmentPickUp   FulfillmentMode = "pickup"
	FulfillmentDineIn   FulfillmentMode = "dine_in"
)

var (
	// ErrFulfillmentModeInvalid 未知交付方式
	ErrFulfillmentModeInvalid = errors.New("order: invalid fulfillment mode")
	// ErrDestinationRequired 外送需要目的地
	ErrDestinationRequired = errors.New("order: delivery destination is required")
	// ErrDestinationNotAllowed 目的地不在商户配送区域内
	ErrDestinationNotAllowed = errors.New("order: delivery destination is not an offered zone")
)

// ParseFulfillmentMode 解析交付方式，兼容前台历史取值（"Delivery"、"Pick Up"、"Comer en local"）
func ParseFulfillmentMode(raw string) (FulfillmentMode, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(normalized)
	switch normalized {
	case "delivery":
		return FulfillmentDelivery, nil
	case "pickup":
		return FulfillmentPickUp, nil
	case "dinein", "comerenlocal", "comerenellocal":
		return FulfillmentDineIn, nil
	default:
		return "", ErrFulfillmentModeInvalid
	}
}

// RequiresDestination 是否需要目的地
func (m FulfillmentMode) RequiresDestination() bool {
	return m == FulfillmentDelivery
}

// Valid 是否为已知取值
func (m FulfillmentMode) Valid() bool {
	switch m {
	case FulfillmentDelivery, FulfillmentPickUp, FulfillmentDineIn:
		return true
	default:
		return false
	}
}

// Fulfillment 顾客提交的交付信息，一次下单内不可变
type Fulfillment struct {
	Mode        FulfillmentMode
	Destination string
}

// NewFulfillment 校验并构建交付信息
// 外送：商户配置了配送区域时目的地必须是其中之一（大小写不敏感，返回商户原始写法），否则为自由文本。
// 自取/堂食：忽略目的地。
func NewFulfillment(mode FulfillmentMode, destination string, store catalog.StoreContext) (Fulfillment, error) {
	if !mode.Valid() {
		return Fulfillment{}, ErrFulfillmentModeInvalid
	}
	if !mode.RequiresDestination() {
		return Fulfillment{Mode: mode}, nil
	}
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return Fulfillment{}, ErrDestinationRequired
	}
	if store.HasDeliveryZones() {
		for _, zone := range store.DeliveryZones {
			zone = strings.TrimSpace(zone)
			if zone != "" && strings.EqualFold(zone, destination) {
				return Fulfillment{Mode: mode, Destination: zone}, nil
			}
		}
		return Fulfillment{}, ErrDestinationNotAllowed
	}
	return Fulfillment{Mode: mode, Destination: destination}, nil
}
