package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "carmarket/internal/pkg/http"
)

// UpdateProfileRequest 更新档案请求
type UpdateProfileRequest struct {
	Rights []string `json:"rights" binding:"required"`
}

// UpdateProfile 更新档案权限
// @Summary      更新角色档案
// @Tags         档案管理
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        role     path      string                true  "角色"
// @Param        request  body      UpdateProfileRequest  true  "权限列表"
// @Success      200      {object}  httputil.SuccessResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /api/v1/admin/profiles/{role} [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.WriteBindError(c, err)
		return
	}

	if err := h.accountService.UpdateProfile(c.Request.Context(), c.Param("role"), req.Rights); err != nil {
		httputil.WriteError(c, err)
		return
	}
	httputil.WriteOK(c, http.StatusOK, "Profile updated successfully", nil)
}
