package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authHandler "carmarket/internal/handler/auth"
	httputil "carmarket/internal/pkg/http"
	"carmarket/internal/service"
)

// CreateProfileRequest 创建角色档案请求
type CreateProfileRequest struct {
	Role   string   `json:"role" binding:"required"`
	Rights []string `json:"rights"`
}

// CreateProfile 创建角色档案
// @Summary      创建角色档案
// @Description  每个角色至多一个档案
// @Tags         档案管理
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      CreateProfileRequest  true  "档案信息"
// @Success      201      {object}  httputil.SuccessResponse{data=authHandler.ProfileInfo}
// @Failure      400      {object}  ErrorResponse
// @Failure      409      {object}  ErrorResponse
// @Router       /api/v1/admin/profiles [post]
func (h *Handler) CreateProfile(c *gin.Context) {
	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.WriteBindError(c, err)
		return
	}

	profile, err := h.accountService.CreateProfile(c.Request.Context(), &service.CreateProfileRequest{
		Role:   req.Role,
		Rights: req.Rights,
	})
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteOK(c, http.StatusCreated, "Profile created successfully", authHandler.ToProfileInfo(profile))
}
