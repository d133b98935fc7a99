package listing

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carmarket/internal/model/listing"
	httputil "carmarket/internal/pkg/http"
)

// UpdateListingRequest 更新车源请求，未提供的字段保持不变
type UpdateListingRequest struct {
	Make     *string  `json:"make,omitempty"`
	Model    *string  `json:"model,omitempty"`
	Year     *int     `json:"year,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	SellerID *string  `json:"seller_id,omitempty"`
}

// UpdateListing 更新车源
// @Summary      更新车源
// @Description  只有车源归属人可以修改
// @Tags         车源
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                true  "车源ID"
// @Param        request  body      UpdateListingRequest  true  "更新内容"
// @Success      200      {object}  httputil.SuccessResponse{data=ListingInfo}
// @Failure      400      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /api/v1/listings/{id} [put]
func (h *Handler) UpdateListing(c *gin.Context) {
	ident, err := httputil.CurrentIdentity(c)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	var req UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.WriteBindError(c, err)
		return
	}

	l, err := h.listingService.UpdateListing(c.Request.Context(), c.Param("id"), ident.UserID, listing.Update{
		Make:     req.Make,
		Model:    req.Model,
		Year:     req.Year,
		Price:    req.Price,
		SellerID: req.SellerID,
	})
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteOK(c, http.StatusOK, "Listing updated successfully", ToListingInfo(l))
}
