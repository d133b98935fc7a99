package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "carmarket/internal/pkg/http"
)

// SuspendProfile 挂起档案并级联挂起该角色的全部用户
// @Summary      挂起角色档案
// @Description  级联失败时返回 500，重新调用即可补齐用户侧更新
// @Tags         档案管理
// @Produce      json
// @Security     BearerAuth
// @Param        role  path      string  true  "角色"
// @Success      200   {object}  httputil.SuccessResponse{data=service.CascadeResult}
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /api/v1/admin/profiles/{role}/suspend [post]
func (h *Handler) SuspendProfile(c *gin.Context) {
	result, err := h.accountService.SuspendProfile(c.Request.Context(), c.Param("role"))
	if err != nil {
		httputil.WriteError(c, err)
		return
	}
	httputil.WriteOK(c, http.StatusOK, "Profile suspended successfully", result)
}

// ReenableProfile 恢复档案并级联恢复该角色的全部用户
// @Summary      恢复角色档案
// @Tags         档案管理
// @Produce      json
// @Security     BearerAuth
// @Param        role  path      string  true  "角色"
// @Success      200   {object}  httputil.SuccessResponse{data=service.CascadeResult}
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /api/v1/admin/profiles/{role}/reenable [post]
func (h *Handler) ReenableProfile(c *gin.Context) {
	result, err := h.accountService.ReenableProfile(c.Request.Context(), c.Param("role"))
	if err != nil {
		httputil.WriteError(c, err)
		return
	}
	httputil.WriteOK(c, http.StatusOK, "Profile re-enabled successfully", result)
}
