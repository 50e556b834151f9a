package service

import (
	"regexp"
	"strings"

	"github.com/craftshowcase/internal/models"

	"github.com/shopspring/decimal"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^\w\s-]`)
	slugSeparators   = regexp.MustCompile(`[\s_-]+`)
)

// Slugify 转为小写并以连字符连接
func Slugify(text string) string {
	value := strings.ToLower(strings.TrimSpace(text))
	value = slugInvalidChars.ReplaceAllString(value, "")
	value = slugSeparators.ReplaceAllString(value, "-")
	return strings.Trim(value, "-")
}

// FormatPrice 按语言加货币符号；数值价格统一两位小数，文字价格原样返回
func FormatPrice(price, locale string) string {
	price = strings.TrimSpace(price)
	if price == "" {
		return ""
	}
	amount, err := decimal.NewFromString(price)
	if err != nil {
		return price
	}
	symbol := "$"
	if strings.EqualFold(strings.TrimSpace(locale), models.LocaleZH) {
		symbol = "¥"
	}
	return symbol + amount.StringFixed(2)
}
