package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carmarket/internal/pkg/apperr"
	"carmarket/internal/pkg/ctxutil"
	httputil "carmarket/internal/pkg/http"
)

// GetMe 获取当前用户信息
// @Summary      获取当前用户信息
// @Description  获取当前登录用户的详细信息
// @Tags         认证
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  httputil.SuccessResponse{data=UserInfo}
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/auth/me [get]
func (h *Handler) GetMe(c *gin.Context) {
	ctx := c.Request.Context()
	userID, ok := ctxutil.GetUserID(ctx)
	if !ok {
		httputil.WriteError(c, apperr.Unauthorized("authentication required"))
		return
	}

	user, err := h.accountService.GetUserByID(ctx, userID)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteOK(c, http.StatusOK, "success", ToUserInfo(user))
}
