package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "carmarket/internal/pkg/http"
	"carmarket/internal/service"
)

// FilterUsers 筛选用户
// @Summary      筛选用户
// @Description  用户名/邮箱不区分大小写部分匹配，角色精确匹配，status 为 active 或 suspended
// @Tags         用户管理
// @Produce      json
// @Security     BearerAuth
// @Param        username  query     string  false  "用户名"
// @Param        email     query     string  false  "邮箱"
// @Param        role      query     string  false  "角色"
// @Param        status    query     string  false  "状态"  Enums(active, suspended)
// @Success      200       {object}  httputil.SuccessResponse{data=[]authHandler.UserInfo}
// @Failure      400       {object}  ErrorResponse
// @Router       /api/v1/admin/users [get]
func (h *Handler) FilterUsers(c *gin.Context) {
	users, err := h.accountService.FilterUsers(c.Request.Context(), &service.FilterUsersRequest{
		Username: c.Query("username"),
		Email:    c.Query("email"),
		Role:     c.Query("role"),
		Status:   c.Query("status"),
	})
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteOK(c, http.StatusOK, "success", toUserInfos(users))
}
