// Package util 提供通用工具函数
package util

import (
	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
// 使用 Google 的 uuid 库生成 UUID v4
// 返回:
//   - string: 标准 36 字符格式，如 "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx"
func GenerateUUID() string {
	return uuid.New().String()
}

// TruncateString 截断字符串到指定长度
// 如果字符串超过指定长度，截断并添加 "..."
// 按字符（rune）计数，避免把多字节字符从中间切断
// 参数:
//   - s: 原字符串
//   - maxLen: 最大长度（字符数）
//
// 返回:
//   - string: 截断后的字符串
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// StringPtr 返回字符串的指针
// 用于可选字段的赋值
// 参数:
//   - s: 字符串
//
// 返回:
//   - *string: 字符串指针
func StringPtr(s string) *string {
	return &s
}

// IntPtr 返回 int 的指针
func IntPtr(i int) *int {
	return &i
}

// Float64Ptr 返回 float64 的指针
func Float64Ptr(f float64) *float64 {
	return &f
}

// BoolPtr 返回 bool 的指针
func BoolPtr(b bool) *bool {
	return &b
}
