package listing

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "carmarket/internal/pkg/http"
)

// DeleteListing 删除车源
// @Summary      删除车源
// @Description  只有车源归属人可以删除；同时从所有收藏单中移除
// @Tags         车源
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "车源ID"
// @Success      200  {object}  httputil.SuccessResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/listings/{id} [delete]
func (h *Handler) DeleteListing(c *gin.Context) {
	ident, err := httputil.CurrentIdentity(c)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	if err := h.listingService.DeleteListing(c.Request.Context(), c.Param("id"), ident.UserID); err != nil {
		httputil.WriteError(c, err)
		return
	}
	httputil.WriteOK(c, http.StatusOK, "Listing deleted successfully", nil)
}
