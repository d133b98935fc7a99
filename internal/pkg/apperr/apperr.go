// Package apperr 定义业务层统一的错误类型
//
// 每个核心操作返回 (T, error)，error 非空时必定携带一个 Kind，
// 由 HTTP 层映射为状态码与业务错误码。
package apperr

import (
	"errors"
	"fmt"
)

// Kind 错误类别
type Kind int

const (
	// KindNone 没有错误；零值，避免 nil 被误判为 Internal
	KindNone Kind = iota
	KindInternal
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

// String 返回类别名称
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindBadRequest:
		return "BadRequest"
	case KindUnauthorized:
		return "Unauthorized"
	case KindForbidden:
		return "Forbidden"
	case KindNotFound:
		return "NotFound"
	case KindConflict:
		return "Conflict"
	default:
		return "InternalError"
	}
}

// Error 业务错误
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil && e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// New 创建指定类别的错误
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap 包装底层错误
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func BadRequest(format string, args ...any) *Error { return New(KindBadRequest, format, args...) }

func Unauthorized(format string, args ...any) *Error { return New(KindUnauthorized, format, args...) }

func Forbidden(format string, args ...any) *Error { return New(KindForbidden, format, args...) }

func NotFound(format string, args ...any) *Error { return New(KindNotFound, format, args...) }

func Conflict(format string, args ...any) *Error { return New(KindConflict, format, args...) }

// Internal 存储故障或不变量被破坏
func Internal(err error, format string, args ...any) *Error {
	return Wrap(KindInternal, err, format, args...)
}

// KindOf 提取错误类别；nil 返回 KindNone，非 apperr 错误一律视为 Internal
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var e *Error
	if errors.As(err, &e) && e.Kind != KindNone {
		return e.Kind
	}
	return KindInternal
}

// Is 判断错误是否为指定类别
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// MessageOf 返回对调用方展示的消息（不含底层存储细节）
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "internal error"
}
