package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "carmarket/internal/pkg/http"
	"carmarket/internal/service"
)

// UpdateUserRequest 更新用户请求，未提供的字段保持不变
type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
}

// UpdateUser 更新用户
// @Summary      更新用户
// @Tags         用户管理
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string             true  "用户名"
// @Param        request   body      UpdateUserRequest  true  "更新内容"
// @Success      200       {object}  httputil.SuccessResponse
// @Failure      400       {object}  ErrorResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /api/v1/admin/users/{username} [put]
func (h *Handler) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.WriteBindError(c, err)
		return
	}

	err := h.accountService.UpdateUser(c.Request.Context(), c.Param("username"), &service.UpdateUserRequest{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteOK(c, http.StatusOK, "User updated successfully", nil)
}
