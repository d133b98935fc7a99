package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"carmarket/internal/pkg/apperr"
	"carmarket/internal/pkg/ctxutil"
)

// AccessLog 访问日志中间件
// route 记录路由模板（/listings/:id）而不是原始路径，便于按接口聚合；
// 处理器通过 WriteError 挂到 c.Errors 上的错误连同类别一起输出
func AccessLog(l zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		event := l.Info()
		switch {
		case status >= 500:
			event = l.Error()
		case status >= 400:
			event = l.Warn()
		}

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		event = event.
			Str("method", c.Request.Method).
			Str("route", route).
			Str("path", path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString(RequestIDKey))

		if ident, ok := ctxutil.GetIdentity(c.Request.Context()); ok {
			event = event.Str("user_id", ident.UserID).Str("role", ident.Role)
		}
		if last := c.Errors.Last(); last != nil {
			kind := apperr.KindOf(last.Err)
			if last.IsType(gin.ErrorTypeBind) {
				kind = apperr.KindBadRequest
			}
			event = event.
				Str("error_kind", kind.String()).
				Str("errors", c.Errors.String())
		}

		event.Msg("http request")
	}
}
