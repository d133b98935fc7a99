package password

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MaxLength bcrypt 只使用前 72 字节，超出部分会被截断
const MaxLength = 72

// ErrTooLong 密码超过 MaxLength 字节
var ErrTooLong = errors.New("password exceeds 72 bytes")

// Hash 加密密码
func Hash(password string) (string, error) {
	if len(password) > MaxLength {
		return "", ErrTooLong
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify 验证密码
// 早期导入的账号以明文保存凭据，非 bcrypt 格式时退化为逐字节比较
func Verify(password, stored string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password))
	if err == nil {
		return true
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1
}
