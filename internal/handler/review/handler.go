package review

import (
	httputil "carmarket/internal/pkg/http"
	"carmarket/internal/service"
)

// ErrorResponse 错误响应类型别名（使用共用的 http.ErrorResponse）
type ErrorResponse = httputil.ErrorResponse

// Handler 评价处理器
type Handler struct {
	reviewService service.ReviewService
}

// NewHandler 创建评价处理器
func NewHandler(reviewService service.ReviewService) *Handler {
	return &Handler{
		reviewService: reviewService,
	}
}
