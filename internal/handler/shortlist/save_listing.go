package shortlist

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "carmarket/internal/pkg/http"
)

// SaveListingRequest 收藏请求
type SaveListingRequest struct {
	ListingID string `json:"listing_id" binding:"required"`
}

// SaveListing 收藏车源
// @Summary      收藏车源
// @Description  重复收藏不报错；added 为 false 表示此前已收藏
// @Tags         收藏单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      SaveListingRequest  true  "车源ID"
// @Success      200      {object}  httputil.SuccessResponse{data=service.SaveResult}
// @Failure      404      {object}  ErrorResponse
// @Router       /api/v1/shortlist [post]
func (h *Handler) SaveListing(c *gin.Context) {
	ident, err := httputil.CurrentIdentity(c)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	var req SaveListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.WriteBindError(c, err)
		return
	}

	result, err := h.shortlistService.SaveListing(c.Request.Context(), ident.UserID, req.ListingID)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	message := "Listing saved to shortlist"
	if !result.Added {
		message = "Listing already in shortlist"
	}
	httputil.WriteOK(c, http.StatusOK, message, result)
}
