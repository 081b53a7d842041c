package cart

import (
	"strings"

	"github.com/webild-pos/internal/catalog"
)

// State 购物车可序列化状态，用于会话存储
type State struct {
	StoreSlug    string     `json:"store_slug"`
	Lines        []LineItem `json:"lines"`
	CheckoutOpen bool       `json:"checkout_open"`
}

// Export 导出当前状态
func (e *Engine) Export(storeSlug string) State {
	return State{
		StoreSlug:    storeSlug,
		Lines:        e.Lines(),
		CheckoutOpen: e.CheckoutOpen(),
	}
}

// Restore 从状态恢复购物车
// 非法行（空ID、数量 <= 0）被丢弃；重复ID合并数量并保留先出现的单价
func Restore(state State, lookup catalog.ModifierLookup) *Engine {
	e := NewEngine(lookup)
	for _, line := range state.Lines {
		if strings.TrimSpace(line.ID) == "" || line.Quantity <= 0 {
			continue
		}
		merged := false
		for i := range e.lines {
			if e.lines[i].ID == line.ID {
				e.lines[i].Quantity += line.Quantity
				merged = true
				break
			}
		}
		if !merged {
			e.lines = append(e.lines, cloneLine(line))
		}
	}
	e.checkoutOpen = state.CheckoutOpen && len(e.lines) > 0
	return e
}
