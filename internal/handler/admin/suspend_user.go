package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "carmarket/internal/pkg/http"
)

// SuspendUser 挂起用户
// @Summary      挂起用户
// @Tags         用户管理
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "用户名"
// @Success      200       {object}  httputil.SuccessResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /api/v1/admin/users/{username}/suspend [post]
func (h *Handler) SuspendUser(c *gin.Context) {
	if err := h.accountService.SuspendUser(c.Request.Context(), c.Param("username")); err != nil {
		httputil.WriteError(c, err)
		return
	}
	httputil.WriteOK(c, http.StatusOK, "User suspended successfully", nil)
}

// ReenableUser 恢复用户
// @Summary      恢复用户
// @Tags         用户管理
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "用户名"
// @Success      200       {object}  httputil.SuccessResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /api/v1/admin/users/{username}/reenable [post]
func (h *Handler) ReenableUser(c *gin.Context) {
	if err := h.accountService.ReenableUser(c.Request.Context(), c.Param("username")); err != nil {
		httputil.WriteError(c, err)
		return
	}
	httputil.WriteOK(c, http.StatusOK, "User re-enabled successfully", nil)
}
