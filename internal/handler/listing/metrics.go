package listing

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "carmarket/internal/pkg/http"
)

// TrackView 记录一次浏览
// @Summary      记录浏览
// @Tags         车源统计
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "车源ID"
// @Success      200  {object}  httputil.SuccessResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/listings/{id}/views [post]
func (h *Handler) TrackView(c *gin.Context) {
	if err := h.listingService.TrackView(c.Request.Context(), c.Param("id")); err != nil {
		httputil.WriteError(c, err)
		return
	}
	httputil.WriteOK(c, http.StatusOK, "View tracked", nil)
}

// TrackShortlist 记录一次收藏
// @Summary      记录收藏
// @Tags         车源统计
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "车源ID"
// @Success      200  {object}  httputil.SuccessResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/listings/{id}/shortlists [post]
func (h *Handler) TrackShortlist(c *gin.Context) {
	if err := h.listingService.TrackShortlist(c.Request.Context(), c.Param("id")); err != nil {
		httputil.WriteError(c, err)
		return
	}
	httputil.WriteOK(c, http.StatusOK, "Shortlist tracked", nil)
}

// GetMetrics 车源计数
// @Summary      车源计数
// @Tags         车源统计
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "车源ID"
// @Success      200  {object}  httputil.SuccessResponse{data=listing.Metrics}
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/listings/{id}/metrics [get]
func (h *Handler) GetMetrics(c *gin.Context) {
	m, err := h.listingService.GetMetrics(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.WriteError(c, err)
		return
	}
	httputil.WriteOK(c, http.StatusOK, "success", m)
}

// SellerMetrics 当前卖家名下全部车源的计数
// @Summary      卖家车源统计
// @Tags         车源统计
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  httputil.SuccessResponse{data=[]listing.Metrics}
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/seller/metrics [get]
func (h *Handler) SellerMetrics(c *gin.Context) {
	ident, err := httputil.CurrentIdentity(c)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	metrics, err := h.listingService.MetricsForSeller(c.Request.Context(), ident.UserID)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}
	httputil.WriteOK(c, http.StatusOK, "success", metrics)
}
