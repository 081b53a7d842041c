package order

import (
	"fmt"
	"strings"

	"github.com/webild-pos/internal/cart"
	"github.com/webild-pos/internal/catalog"
	"github.com/webild-pos/internal/pricing"

	"github.com/shopspring/decimal"
)

// FormatInput 订单消息输入
type FormatInput struct {
	StoreName       string
	CustomerName    string
	Fulfillment     Fulfillment
	Lines           []cart.LineItem
	SubtotalPrimary decimal.Decimal
	SubtotalLocal   decimal.Decimal
	Rate            decimal.Decimal
	Modifiers       catalog.ModifierLookup
}

// Formatter 把购物车序列化为给商户的纯文本订单消息
type Formatter struct {
	labels Labels
}

// NewFormatter 创建格式化器
func NewFormatter(locale string) *Formatter {
	return &Formatter{labels: LabelsFor(locale)}
}

// Format 生成确定性的订单消息
func (f *Formatter) Format(in FormatInput) string {
	l := f.labels
	var b strings.Builder

	storeName := strings.TrimSpace(in.StoreName)
	if storeName == "" {
		storeName = l.FallbackStore
	}
	fmt.Fprintf(&b, "*%s - %s* 🍔\n", l.Header, strings.ToUpper(storeName))

	customer := strings.TrimSpace(in.CustomerName)
	if customer == "" {
		customer = l.FallbackName
	}
	fmt.Fprintf(&b, "👤 *%s:* %s\n", l.Customer, customer)
	fmt.Fprintf(&b, "🛵 *%s:* %s\n", l.Mode, l.modeLabel(in.Fulfillment.Mode))
	if in.Fulfillment.Mode.RequiresDestination() {
		if dest := strings.TrimSpace(in.Fulfillment.Destination); dest != "" {
			fmt.Fprintf(&b, "📍 *%s:* %s\n", l.Destination, dest)
		}
	}
	b.WriteString(l.separator())
	b.WriteString("\n\n")

	for _, line := range in.Lines {
		fmt.Fprintf(&b, "▪️ *%dx %s* (%s%s)\n",
			line.Quantity,
			line.Product.Name,
			l.PrimarySymbol,
			pricing.FormatAmount(line.Subtotal()),
		)
		if names := ModifierNames(line.ModifierIDs, in.Modifiers); len(names) > 0 {
			fmt.Fprintf(&b, "   _%s: %s_\n", l.Extras, strings.Join(names, ", "))
		}
	}

	b.WriteString("\n")
	b.WriteString(l.separator())
	b.WriteString("\n")
	fmt.Fprintf(&b, "*%s: %s%s*\n", l.TotalPrimary, l.PrimarySymbol, pricing.FormatAmount(in.SubtotalPrimary))
	fmt.Fprintf(&b, "*%s: %s %s*\n", l.TotalLocal, l.LocalSymbol, pricing.FormatAmount(in.SubtotalLocal))
	fmt.Fprintf(&b, "_(%s: %s)_\n", l.Rate, pricing.FormatRate(in.Rate))
	b.WriteString(l.separator())
	b.WriteString("\n")
	fmt.Fprintf(&b, "\n💳 _%s_", l.ClosingPrompt)
	return b.String()
}

// ModifierNames 解析加料名称，无法解析的ID直接跳过
func ModifierNames(modifierIDs []string, lookup catalog.ModifierLookup) []string {
	if lookup == nil || len(modifierIDs) == 0 {
		return nil
	}
	names := make([]string, 0, len(modifierIDs))
	for _, id := range modifierIDs {
		m, ok := lookup.LookupModifier(id)
		if !ok || strings.TrimSpace(m.Name) == "" {
			continue
		}
		names = append(names, m.Name)
	}
	return names
}
