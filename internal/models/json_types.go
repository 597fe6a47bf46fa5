package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringArray 字符串数组，JSON 存储（图片等）
type StringArray []string

// Value 实现 driver.Valuer 接口
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan 实现 sql.Scanner 接口
func (s *StringArray) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*s = StringArray{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported StringArray source %T", value)
	}
	if len(raw) == 0 {
		*s = StringArray{}
		return nil
	}
	return json.Unmarshal(raw, s)
}
