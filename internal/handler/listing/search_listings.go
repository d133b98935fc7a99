package listing

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "carmarket/internal/pkg/http"
)

// SearchListings 搜索车源
// @Summary      搜索车源
// @Description  对品牌、车型、年份做不区分大小写的子串匹配
// @Tags         车源
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  true  "搜索词"
// @Success      200  {object}  httputil.SuccessResponse{data=[]ListingInfo}
// @Failure      400  {object}  ErrorResponse
// @Router       /api/v1/listings/search [get]
func (h *Handler) SearchListings(c *gin.Context) {
	items, err := h.listingService.SearchListings(c.Request.Context(), c.Query("q"))
	if err != nil {
		httputil.WriteError(c, err)
		return
	}
	httputil.WriteOK(c, http.StatusOK, "success", toListingInfos(items))
}
