package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "carmarket/internal/pkg/http"
)

// LoginRequest 用户登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // 用户名（必填）
	Password string `json:"password" binding:"required"` // 密码（必填）
}

// LoginResponseData 登录响应数据
type LoginResponseData struct {
	AccessToken string      `json:"access_token"` // Access Token
	ExpiresIn   int         `json:"expires_in"`   // 过期时间（秒）
	TokenType   string      `json:"token_type"`   // Token类型：Bearer
	User        UserInfo    `json:"user"`         // 用户信息
	Profile     ProfileInfo `json:"profile"`      // 角色档案
}

// Login 用户登录
// @Summary      用户登录
// @Description  校验用户名与密码，返回Access Token以及用户所属角色档案；账号挂起时拒绝登录
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "登录请求"
// @Success      200     {object}  httputil.SuccessResponse{data=LoginResponseData}
// @Failure      400     {object}  ErrorResponse
// @Failure      401     {object}  ErrorResponse
// @Failure      500     {object}  ErrorResponse
// @Router       /api/v1/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.WriteBindError(c, err)
		return
	}

	resp, err := h.authService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteOK(c, http.StatusOK, "Login successful", LoginResponseData{
		AccessToken: resp.AccessToken,
		ExpiresIn:   resp.ExpiresIn,
		TokenType:   resp.TokenType,
		User:        ToUserInfo(resp.User),
		Profile:     ToProfileInfo(resp.Profile),
	})
}
