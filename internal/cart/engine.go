package cart

import (
	"errors"
	"sort"
	"strings"

	"github.com/webild-pos/internal/catalog"
	"github.com/webild-pos/internal/pricing"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidQuantity 数量必须为正整数（非法数量直接拒绝，不做截断）
	ErrInvalidQuantity = errors.New("cart: quantity must be positive")
	// ErrInvalidProduct 商品标识为空
	ErrInvalidProduct = errors.New("cart: product id is required")
	// ErrCartEmpty 空购物车不能打开结算
	ErrCartEmpty = errors.New("cart: cart is empty")
)

// LineItem 购物车中的一行
// UnitPrice 在加入时快照，之后商品或加料改价不会影响该行
type LineItem struct {
	ID          string          `json:"id"`
	Product     catalog.Product `json:"product"`
	Quantity    int             `json:"qty"`
	ModifierIDs []string        `json:"mods"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Subtotal 行小计
func (l LineItem) Subtotal() decimal.Decimal {
	return pricing.LineSubtotal(l.UnitPrice, l.Quantity)
}

// Engine 单会话购物车，无内部并发控制，调用方需串行调用
type Engine struct {
	lines        []LineItem
	checkoutOpen bool
	lookup       catalog.ModifierLookup
}

// NewEngine 创建空购物车；lookup 用于加入时解析加料价格
func NewEngine(lookup catalog.ModifierLookup) *Engine {
	return &Engine{
		lines:  make([]LineItem, 0),
		lookup: lookup,
	}
}

// AddLine 加入商品
// 相同商品 + 相同加料集合（排序去重后比较）合并数量，单价保留首次快照；否则按插入顺序追加新行。
// 加料是否属于该商品的允许列表由调用方保证。
func (e *Engine) AddLine(product catalog.Product, quantity int, modifierIDs []string) (LineItem, error) {
	if quantity <= 0 {
		return LineItem{}, ErrInvalidQuantity
	}
	productID := strings.TrimSpace(product.ID)
	if productID == "" {
		return LineItem{}, ErrInvalidProduct
	}
	mods := CanonicalModifiers(modifierIDs)
	key := LineKey(productID, mods)

	for i := range e.lines {
		if e.lines[i].ID == key && e.lines[i].sameSelection(productID, mods) {
			e.lines[i].Quantity += quantity
			return cloneLine(e.lines[i]), nil
		}
	}

	line := LineItem{
		ID:          key,
		Product:     product,
		Quantity:    quantity,
		ModifierIDs: mods,
		UnitPrice:   pricing.UnitPrice(product, mods, e.lookup),
	}
	e.lines = append(e.lines, line)
	return cloneLine(line), nil
}

// RemoveLine 删除行；不存在时静默返回 false
// 删除后购物车为空则强制关闭结算
func (e *Engine) RemoveLine(lineID string) bool {
	for i := range e.lines {
		if e.lines[i].ID != lineID {
			continue
		}
		e.lines = append(e.lines[:i], e.lines[i+1:]...)
		e.closeIfEmpty()
		return true
	}
	return false
}

// UpdateQuantity 设置行数量；quantity <= 0 视为删除该行
// 返回该行是否存在
func (e *Engine) UpdateQuantity(lineID string, quantity int) bool {
	if quantity <= 0 {
		return e.RemoveLine(lineID)
	}
	for i := range e.lines {
		if e.lines[i].ID == lineID {
			e.lines[i].Quantity = quantity
			return true
		}
	}
	return false
}

// Clear 清空购物车并关闭结算
func (e *Engine) Clear() {
	e.lines = e.lines[:0]
	e.checkoutOpen = false
}

// Lines 按插入顺序返回只读副本
func (e *Engine) Lines() []LineItem {
	result := make([]LineItem, 0, len(e.lines))
	for _, line := range e.lines {
		result = append(result, cloneLine(line))
	}
	return result
}

// Line 获取单行
func (e *Engine) Line(lineID string) (LineItem, bool) {
	for _, line := range e.lines {
		if line.ID == lineID {
			return cloneLine(line), true
		}
	}
	return LineItem{}, false
}

// Subtotal Σ unitPrice × qty，每次读取时重新计算
func (e *Engine) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Count Σ qty
func (e *Engine) Count() int {
	count := 0
	for _, line := range e.lines {
		count += line.Quantity
	}
	return count
}

// IsEmpty 是否没有任何行
func (e *Engine) IsEmpty() bool {
	return len(e.lines) == 0
}

// OpenCheckout 打开结算视图，空购物车拒绝打开
func (e *Engine) OpenCheckout() error {
	if e.IsEmpty() {
		e.checkoutOpen = false
		return ErrCartEmpty
	}
	e.checkoutOpen = true
	return nil
}

// CloseCheckout 关闭结算视图，不改动已提交的行
func (e *Engine) CloseCheckout() {
	e.checkoutOpen = false
}

// CheckoutOpen 结算视图是否打开
func (e *Engine) CheckoutOpen() bool {
	return e.checkoutOpen && !e.IsEmpty()
}

func (e *Engine) closeIfEmpty() {
	if len(e.lines) == 0 {
		e.checkoutOpen = false
	}
}

// CanonicalModifiers 加料集合规范化：去空白、去重、排序
func CanonicalModifiers(modifierIDs []string) []string {
	seen := make(map[string]struct{}, len(modifierIDs))
	result := make([]string, 0, len(modifierIDs))
	for _, raw := range modifierIDs {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	sort.Strings(result)
	return result
}

// keyEscaper 转义行标识中的分隔符，保证不同商品/加料组合不会拼出相同标识
var keyEscaper = strings.NewReplacer("%", "%25", ":", "%3A", ",", "%2C")

// LineKey 行标识：商品ID，有加料时追加 ":" 与逗号连接的规范化加料列表；
// 各段中的 "%" ":" "," 做百分号转义
func LineKey(productID string, modifierIDs []string) string {
	key := keyEscaper.Replace(strings.TrimSpace(productID))
	mods := CanonicalModifiers(modifierIDs)
	if len(mods) == 0 {
		return key
	}
	escaped := make([]string, len(mods))
	for i, id := range mods {
		escaped[i] = keyEscaper.Replace(id)
	}
	return key + ":" + strings.Join(escaped, ",")
}

func (l LineItem) sameSelection(productID string, mods []string) bool {
	if strings.TrimSpace(l.Product.ID) != productID || len(l.ModifierIDs) != len(mods) {
		return false
	}
	for i := range mods {
		if l.ModifierIDs[i] != mods[i] {
			return false
		}
	}
	return true
}

func cloneLine(line LineItem) LineItem {
	mods := make([]string, len(line.ModifierIDs))
	copy(mods, line.ModifierIDs)
	line.ModifierIDs = mods
	if line.Product.AllowedModifiers != nil {
		allowed := make([]string, len(line.Product.AllowedModifiers))
		copy(allowed, line.Product.AllowedModifiers)
		line.Product.AllowedModifiers = allowed
	}
	return line
}
