package listing

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "carmarket/internal/pkg/http"
)

// GetListing 获取车源详情
// @Summary      获取车源
// @Tags         车源
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "车源ID"
// @Success      200  {object}  httputil.SuccessResponse{data=ListingInfo}
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/listings/{id} [get]
func (h *Handler) GetListing(c *gin.Context) {
	l, err := h.listingService.GetListing(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.WriteError(c, err)
		return
	}
	httputil.WriteOK(c, http.StatusOK, "success", ToListingInfo(l))
}

// ListListings 全部车源
// @Summary      车源列表
// @Tags         车源
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  httputil.SuccessResponse{data=[]ListingInfo}
// @Router       /api/v1/listings [get]
func (h *Handler) ListListings(c *gin.Context) {
	items, err := h.listingService.ListListings(c.Request.Context())
	if err != nil {
		httputil.WriteError(c, err)
		return
	}
	httputil.WriteOK(c, http.StatusOK, "success", toListingInfos(items))
}

// ListAgentListings 某经纪人名下的车源
// @Summary      经纪人车源列表
// @Tags         车源
// @Produce      json
// @Security     BearerAuth
// @Param        agent_id  path      string  true  "经纪人ID"
// @Success      200       {object}  httputil.SuccessResponse{data=[]ListingInfo}
// @Router       /api/v1/agents/{agent_id}/listings [get]
func (h *Handler) ListAgentListings(c *gin.Context) {
	items, err := h.listingService.ListAgentListings(c.Request.Context(), c.Param("agent_id"))
	if err != nil {
		httputil.WriteError(c, err)
		return
	}
	httputil.WriteOK(c, http.StatusOK, "success", toListingInfos(items))
}
