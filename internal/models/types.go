package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// 支持的语言
const (
	LocaleEN = "en"
	LocaleZH = "zh"
	LocaleAR = "ar"
)

// LocalizedText 三语文本，三个键始终存在
type LocalizedText struct {
	EN string `json:"en"`
	ZH string `json:"zh"`
	AR string `json:"ar"`
}

// Get 按语言取值，未知语言回退英文
func (t LocalizedText) Get(locale string) string {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case LocaleZH:
		return t.ZH
	case LocaleAR:
		return t.AR
	default:
		return t.EN
	}
}

// IsEmpty 三种语言均为空
func (t LocalizedText) IsEmpty() bool {
	return strings.TrimSpace(t.EN) == "" && strings.TrimSpace(t.ZH) == "" && strings.TrimSpace(t.AR) == ""
}

// Value 实现 driver.Valuer 接口
func (t LocalizedText) Value() (driver.Value, error) {
	return marshalValue(t)
}

// Scan 实现 sql.Scanner 接口
func (t *LocalizedText) Scan(value interface{}) error {
	return scanJSON(value, t)
}

// StringArray 字符串数组类型，用于存储 images、keywords 等
type StringArray []string

// Value 实现 driver.Valuer 接口
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return marshalValue(s)
}

// Scan 实现 sql.Scanner 接口
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = StringArray{}
		return nil
	}
	return scanJSON(value, s)
}

func marshalValue(v interface{}) (driver.Value, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func scanJSON(value interface{}, dest interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dest)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported json column type %T", value)
	}
}
