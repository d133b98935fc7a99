package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authHandler "carmarket/internal/handler/auth"
	httputil "carmarket/internal/pkg/http"
)

// GetUser 按用户名获取用户
// @Summary      获取用户
// @Tags         用户管理
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "用户名"
// @Success      200       {object}  httputil.SuccessResponse{data=authHandler.UserInfo}
// @Failure      404       {object}  ErrorResponse
// @Router       /api/v1/admin/users/{username} [get]
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.accountService.GetUserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteOK(c, http.StatusOK, "success", authHandler.ToUserInfo(user))
}
