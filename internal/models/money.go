package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Money 菜单与购物车金额，固定两位小数（主币种）
type Money struct {
	decimal.Decimal
}

// NewMoney 四舍五入到分
func NewMoney(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(2)}
}

// ParseMoney 解析后台录入的价格，兼容 "$" 前缀与逗号小数点（"2,50"）
func ParseMoney(raw string) (Money, error) {
	cleaned := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "$"))
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Money{}, err
	}
	return NewMoney(amount), nil
}

// String 两位小数文本
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// MarshalJSON 输出为字符串，避免前端浮点误差
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON 接受 "9.99" 或 9.99
func (m *Money) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "" || raw == "null" {
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(b, &number); err != nil {
		var text string
		if err := json.Unmarshal(b, &text); err != nil {
			return err
		}
		number = json.Number(text)
	}
	parsed, err := ParseMoney(number.String())
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value 写库
func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Round(2).Value()
}

// Scan 读库
func (m *Money) Scan(value interface{}) error {
	var amount decimal.Decimal
	if err := amount.Scan(value); err != nil {
		return err
	}
	*m = NewMoney(amount)
	return nil
}
