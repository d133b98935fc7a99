package shortlist

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "carmarket/internal/pkg/http"
	"carmarket/internal/service"
)

// GetShortlist 当前买家的收藏单
// @Summary      查看收藏单
// @Tags         收藏单
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  httputil.SuccessResponse{data=[]ItemInfo}
// @Router       /api/v1/shortlist [get]
func (h *Handler) GetShortlist(c *gin.Context) {
	ident, err := httputil.CurrentIdentity(c)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	items, err := h.shortlistService.GetShortlist(c.Request.Context(), ident.UserID)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}
	httputil.WriteOK(c, http.StatusOK, "success", toItemInfos(items))
}

// SearchShortlist 在收藏单中搜索
// @Summary      搜索收藏单
// @Description  q 与 listing_id 必须且只能提供一个
// @Tags         收藏单
// @Produce      json
// @Security     BearerAuth
// @Param        q           query     string  false  "搜索词"
// @Param        listing_id  query     string  false  "车源ID"
// @Success      200         {object}  httputil.SuccessResponse{data=[]ItemInfo}
// @Failure      400         {object}  ErrorResponse
// @Router       /api/v1/shortlist/search [get]
func (h *Handler) SearchShortlist(c *gin.Context) {
	ident, err := httputil.CurrentIdentity(c)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	items, err := h.shortlistService.SearchShortlist(c.Request.Context(), ident.UserID, &service.SearchShortlistRequest{
		Query:     c.Query("q"),
		ListingID: c.Query("listing_id"),
	})
	if err != nil {
		httputil.WriteError(c, err)
		return
	}
	httputil.WriteOK(c, http.StatusOK, "success", toItemInfos(items))
}

// RemoveFromShortlist 取消收藏
// @Summary      取消收藏
// @Tags         收藏单
// @Produce      json
// @Security     BearerAuth
// @Param        listing_id  path      string  true  "车源ID"
// @Success      200         {object}  httputil.SuccessResponse
// @Failure      404         {object}  ErrorResponse
// @Router       /api/v1/shortlist/{listing_id} [delete]
func (h *Handler) RemoveFromShortlist(c *gin.Context) {
	ident, err := httputil.CurrentIdentity(c)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	if err := h.shortlistService.RemoveFromShortlist(c.Request.Context(), ident.UserID, c.Param("listing_id")); err != nil {
		httputil.WriteError(c, err)
		return
	}
	httputil.WriteOK(c, http.StatusOK, "Listing removed from shortlist", nil)
}
