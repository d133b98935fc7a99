package review

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "carmarket/internal/pkg/http"
	"carmarket/internal/service"
)

// EditReviewRequest 修改评价请求
type EditReviewRequest struct {
	Rating float64 `json:"rating" binding:"required"`
	Review *string `json:"review,omitempty"`
}

// EditReview 修改评价
// @Summary      修改评价
// @Description  只有原评价人可以修改
// @Tags         评价
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string             true  "评价ID"
// @Param        request  body      EditReviewRequest  true  "评价内容"
// @Success      200      {object}  httputil.SuccessResponse{data=review.Review}
// @Failure      400      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /api/v1/reviews/{id} [put]
func (h *Handler) EditReview(c *gin.Context) {
	ident, err := httputil.CurrentIdentity(c)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	var req EditReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.WriteBindError(c, err)
		return
	}

	rv, err := h.reviewService.EditReview(c.Request.Context(), c.Param("id"), &service.EditReviewRequest{
		ReviewerID: ident.UserID,
		Rating:     req.Rating,
		Text:       req.Review,
	})
	if err != nil {
		httputil.WriteError(c, err)
		return
	}
	httputil.WriteOK(c, http.StatusOK, "Review updated successfully", rv)
}
