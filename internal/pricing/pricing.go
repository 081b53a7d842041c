package pricing

import (
	"github.com/webild-pos/internal/catalog"

	"github.com/shopspring/decimal"
)

// displayPlaces 展示用小数位
const displayPlaces = 2

// UnitPrice 单价 = 基础价 + 所选加料价格之和
// 无法解析的加料（例如会话中途被删除）按 0 计
func UnitPrice(product catalog.Product, modifierIDs []string, lookup catalog.ModifierLookup) decimal.Decimal {
	price := product.BasePrice
	if lookup == nil {
		return price
	}
	for _, id := range modifierIDs {
		m, ok := lookup.LookupModifier(id)
		if !ok {
			continue
		}
		price = price.Add(m.Price)
	}
	return price
}

// LineSubtotal 行小计，不做中间舍入
func LineSubtotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	if quantity <= 0 {
		return decimal.Zero
	}
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// DualCurrencyTotal 双币种合计
// local = subtotal × rate，保留两位；rate 为 0 或负数时 local 记为 0
func DualCurrencyTotal(subtotal decimal.Decimal, rate decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	if !rate.IsPositive() {
		return subtotal, decimal.Zero
	}
	return subtotal, subtotal.Mul(rate).Round(displayPlaces)
}

// FormatAmount 固定两位小数的展示格式
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(displayPlaces)
}

// FormatRate 汇率按字面值展示（50 -> "50"，36.5 -> "36.5"）
func FormatRate(rate decimal.Decimal) string {
	if !rate.IsPositive() {
		return "0"
	}
	return rate.String()
}
