package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StringArray 以 JSON 文本落库的字符串列表（配送区域、可选加料ID）
type StringArray []string

// CompactStrings 去掉空白项，按不区分大小写去重，保留首次出现的写法和顺序
func CompactStrings(values []string) StringArray {
	out := make(StringArray, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Value nil 写为 []，保证列非空
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan 兼容驱动返回的 []byte 与 string
func (s *StringArray) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("string array: unsupported column type %T", value)
	}
	if len(raw) == 0 {
		*s = StringArray{}
		return nil
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("string array: %w", err)
	}
	if items == nil {
		items = []string{}
	}
	*s = items
	return nil
}
