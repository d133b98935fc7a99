package id

import (
	"github.com/google/uuid"
)

// New 生成新的文档ID（UUID字符串）
func New() string {
	return uuid.New().String()
}

// IsValid 是否为规范格式的文档ID
// 只接受 36 位带连字符的形式，urn/花括号等变体视为格式错误
func IsValid(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
