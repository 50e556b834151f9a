package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const isoTimeLayout = "2006-01-02T15:04:05.000Z"

// GenerateListingID 生成 product-<毫秒>-<9 位随机> 形式的商品 id
func GenerateListingID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("product-%d-%s", now.UnixMilli(), suffix)
}

// FormatTimestamp 输出 UTC 毫秒精度的 ISO-8601 时间
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(isoTimeLayout)
}
