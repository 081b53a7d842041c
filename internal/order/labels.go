package order

import "strings"

// Labels 订单消息文案
type Labels struct {
	Header          string
	FallbackStore   string
	Customer        string
	FallbackName    string
	Mode            string
	Destination     string
	Extras          string
	TotalPrimary    string
	TotalLocal      string
	LocalSymbol     string
	Rate            string
	ClosingPrompt   string
	ModeDelivery    string
	ModePickUp      string
	ModeDineIn      string
	PrimarySymbol   string
	SeparatorLength int
}

var labelsByLocale = map[string]Labels{
	"es": {
		Header:          "NUEVO PEDIDO",
		FallbackStore:   "NUESTRO LOCAL",
		Customer:        "Cliente",
		FallbackName:    "Cliente",
		Mode:            "Modalidad",
		Destination:     "Dirección",
		Extras:          "Extras",
		TotalPrimary:    "TOTAL USD",
		TotalLocal:      "TOTAL VES",
		LocalSymbol:     "Bs.",
		Rate:            "Tasa BCV",
		ClosingPrompt:   "Por favor, indíquenme los métodos de pago.",
		ModeDelivery:    "Delivery",
		ModePickUp:      "Pick Up",
		ModeDineIn:      "Comer en local",
		PrimarySymbol:   "$",
		SeparatorLength: 32,
	},
	"en": {
		Header:          "NEW ORDER",
		FallbackStore:   "OUR STORE",
		Customer:        "Customer",
		FallbackName:    "Customer",
		Mode:            "Fulfillment",
		Destination:     "Address",
		Extras:          "Extras",
		TotalPrimary:    "TOTAL USD",
		TotalLocal:      "TOTAL VES",
		LocalSymbol:     "Bs.",
		Rate:            "Rate",
		ClosingPrompt:   "Please let me know the payment methods.",
		ModeDelivery:    "Delivery",
		ModePickUp:      "Pick Up",
		ModeDineIn:      "Dine in",
		PrimarySymbol:   "$",
		SeparatorLength: 32,
	},
}

// DefaultLocale 默认文案语言
const DefaultLocale = "es"

// LabelsFor 按语言获取文案，未知语言回退到默认
func LabelsFor(locale string) Labels {
	normalized := strings.ToLower(strings.TrimSpace(locale))
	if idx := strings.IndexAny(normalized, "-_"); idx > 0 {
		normalized = normalized[:idx]
	}
	if labels, ok := labelsByLocale[normalized]; ok {
		return labels
	}
	return labelsByLocale[DefaultLocale]
}

func (l Labels) modeLabel(mode FulfillmentMode) string {
	switch mode {
	case FulfillmentDelivery:
		return l.ModeDelivery
	case FulfillmentPickUp:
		return l.ModePickUp
	case FulfillmentDineIn:
		return l.ModeDineIn
	default:
		return string(mode)
	}
}

func (l Labels) separator() string {
	n := l.SeparatorLength
	if n <= 0 {
		n = 32
	}
	return strings.Repeat("-", n)
}
