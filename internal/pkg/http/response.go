package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carmarket/internal/pkg/apperr"
	"carmarket/internal/pkg/ctxutil"
)

// ErrorResponse 错误响应（所有API共用）
type ErrorResponse struct {
	Code    int    `json:"code"`             // 错误码（非0表示错误）
	Message string `json:"message"`          // 错误消息
	Detail  string `json:"detail,omitempty"` // 错误详情（可选）
}

// SuccessResponse 成功响应（所有API共用）
type SuccessResponse struct {
	Code    int         `json:"code"`           // 状态码（0表示成功）
	Message string      `json:"message"`        // 响应消息
	Data    interface{} `json:"data,omitempty"` // 响应数据（可选）
}

// NewSuccessResponse 创建成功响应
func NewSuccessResponse(message string, data interface{}) *SuccessResponse {
	return &SuccessResponse{
		Code:    0,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse 创建错误响应
func NewErrorResponse(code int, message string, detail ...string) *ErrorResponse {
	resp := &ErrorResponse{
		Code:    code,
		Message: message,
	}
	if len(detail) > 0 && detail[0] != "" {
		resp.Detail = detail[0]
	}
	return resp
}

// 业务错误码
const (
	CodeBadRequest   = 40001
	CodeUnauthorized = 40101
	CodeForbidden    = 40301
	CodeNotFound     = 40401
	CodeConflict     = 40901
	CodeInternal     = 50001
)

// StatusOf 将错误类别映射为 HTTP 状态码与业务错误码
func StatusOf(kind apperr.Kind) (int, int) {
	switch kind {
	case apperr.KindBadRequest:
		return http.StatusBadRequest, CodeBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized, CodeUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden, CodeForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound, CodeNotFound
	case apperr.KindConflict:
		return http.StatusConflict, CodeConflict
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// WriteError 按错误类别写出统一错误响应
// 错误同时挂到 c.Errors，由访问日志输出底层原因（响应里只有 MessageOf）
func WriteError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	kind := apperr.KindOf(err)
	status, code := StatusOf(kind)
	c.JSON(status, NewErrorResponse(code, apperr.MessageOf(err), kind.String()))
}

// WriteBindError 请求参数解析失败
func WriteBindError(c *gin.Context, err error) {
	_ = c.Error(err).SetType(gin.ErrorTypeBind)
	c.JSON(http.StatusBadRequest, NewErrorResponse(CodeBadRequest, "Invalid request body", err.Error()))
}

// WriteOK 写出成功响应
func WriteOK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, NewSuccessResponse(message, data))
}

// CurrentIdentity 读取认证中间件注入的调用方身份
func CurrentIdentity(c *gin.Context) (ctxutil.Identity, error) {
	ident, ok := ctxutil.GetIdentity(c.Request.Context())
	if !ok {
		return ctxutil.Identity{}, apperr.Unauthorized("authentication required")
	}
	return ident, nil
}
