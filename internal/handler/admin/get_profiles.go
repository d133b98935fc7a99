package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "carmarket/internal/pkg/http"
)

// GetProfiles 获取角色档案
// @Summary      获取角色档案
// @Description  指定 role 时返回该角色的档案，否则返回全部
// @Tags         档案管理
// @Produce      json
// @Security     BearerAuth
// @Param        role  query     string  false  "角色"
// @Success      200   {object}  httputil.SuccessResponse{data=[]authHandler.ProfileInfo}
// @Failure      404   {object}  ErrorResponse
// @Router       /api/v1/admin/profiles [get]
func (h *Handler) GetProfiles(c *gin.Context) {
	profiles, err := h.accountService.GetProfiles(c.Request.Context(), c.Query("role"))
	if err != nil {
		httputil.WriteError(c, err)
		return
	}
	httputil.WriteOK(c, http.StatusOK, "success", toProfileInfos(profiles))
}

// SearchProfiles 按正则搜索档案
// @Summary      搜索角色档案
// @Description  对角色名与权限做正则匹配
// @Tags         档案管理
// @Produce      json
// @Security     BearerAuth
// @Param        q  query     string  true  "正则表达式"
// @Success      200  {object}  httputil.SuccessResponse{data=[]authHandler.ProfileInfo}
// @Failure      400  {object}  ErrorResponse
// @Router       /api/v1/admin/profiles/search [get]
func (h *Handler) SearchProfiles(c *gin.Context) {
	profiles, err := h.accountService.SearchProfiles(c.Request.Context(), c.Query("q"))
	if err != nil {
		httputil.WriteError(c, err)
		return
	}
	httputil.WriteOK(c, http.StatusOK, "success", toProfileInfos(profiles))
}
