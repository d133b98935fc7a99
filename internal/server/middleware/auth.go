package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"carmarket/internal/pkg/apperr"
	"carmarket/internal/pkg/ctxutil"
	httputil "carmarket/internal/pkg/http"
	"carmarket/internal/pkg/jwt"
)

// TokenValidator 访问令牌校验
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// Auth JWT 认证中间件
// 从 Authorization header 中提取 Bearer token，验证后将调用方身份注入 context
func Auth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httputil.WriteError(c, apperr.Unauthorized("missing authorization header"))
			c.Abort()
			return
		}

		// Bearer {token}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			httputil.WriteError(c, apperr.Unauthorized("invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := validator.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			httputil.WriteError(c, err)
			c.Abort()
			return
		}

		ctx := ctxutil.WithIdentity(c.Request.Context(), ctxutil.Identity{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRole 限制只有指定角色可以访问，必须挂在 Auth 之后
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		ident, ok := ctxutil.GetIdentity(c.Request.Context())
		if !ok {
			httputil.WriteError(c, apperr.Unauthorized("authentication required"))
			c.Abort()
			return
		}
		if _, ok := allowed[ident.Role]; !ok {
			httputil.WriteError(c, apperr.Forbidden("role %q is not allowed to access this resource", ident.Role))
			c.Abort()
			return
		}
		c.Next()
	}
}
