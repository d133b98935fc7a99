package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authHandler "carmarket/internal/handler/auth"
	httputil "carmarket/internal/pkg/http"
	"carmarket/internal/service"
)

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// CreateUser 创建用户
// @Summary      创建用户
// @Description  管理员创建用户，角色必须已有对应档案
// @Tags         用户管理
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      CreateUserRequest  true  "用户信息"
// @Success      201      {object}  httputil.SuccessResponse{data=authHandler.UserInfo}
// @Failure      400      {object}  ErrorResponse
// @Failure      409      {object}  ErrorResponse
// @Router       /api/v1/admin/users [post]
func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.WriteBindError(c, err)
		return
	}

	user, err := h.accountService.CreateUser(c.Request.Context(), &service.CreateUserRequest{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Role:     req.Role,
	})
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteOK(c, http.StatusCreated, "User created successfully", authHandler.ToUserInfo(user))
}
