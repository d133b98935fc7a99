package review

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "carmarket/internal/pkg/http"
	"carmarket/internal/service"
)

// CreateReviewRequest 直接评价经纪人
type CreateReviewRequest struct {
	AgentID   string  `json:"agent_id" binding:"required"`
	ListingID string  `json:"listing_id"`
	Rating    float64 `json:"rating" binding:"required"`
	Review    string  `json:"review"`
}

// CreateReview 评价经纪人
// @Summary      评价经纪人
// @Description  评分范围 1-5；同一评价人对同一经纪人、同一车源只能评价一次
// @Tags         评价
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      CreateReviewRequest  true  "评价内容"
// @Success      201      {object}  httputil.SuccessResponse{data=review.Review}
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Failure      409      {object}  ErrorResponse
// @Router       /api/v1/reviews [post]
func (h *Handler) CreateReview(c *gin.Context) {
	ident, err := httputil.CurrentIdentity(c)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.WriteBindError(c, err)
		return
	}

	rv, err := h.reviewService.CreateReviewEntry(c.Request.Context(), &service.CreateReviewRequest{
		AgentID:      req.AgentID,
		ReviewerID:   ident.UserID,
		ReviewerRole: ident.Role,
		ListingID:    req.ListingID,
		Rating:       req.Rating,
		Text:         req.Review,
	})
	if err != nil {
		httputil.WriteError(c, err)
		return
	}
	httputil.WriteOK(c, http.StatusCreated, "Review submitted successfully", rv)
}

// RateRequest 通过车源评价经纪人
type RateRequest struct {
	Rating float64 `json:"rating" binding:"required"`
	Review string  `json:"review"`
}

// RateAndReview 评价车源的经纪人
// @Summary      通过车源评价经纪人
// @Description  由车源解析出经纪人；调用方角色必须是 buyer 或 seller
// @Tags         评价
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string       true  "车源ID"
// @Param        request  body      RateRequest  true  "评价内容"
// @Success      201      {object}  httputil.SuccessResponse{data=review.Review}
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Failure      409      {object}  ErrorResponse
// @Router       /api/v1/listings/{id}/reviews [post]
func (h *Handler) RateAndReview(c *gin.Context) {
	ident, err := httputil.CurrentIdentity(c)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.WriteBindError(c, err)
		return
	}

	rv, err := h.reviewService.RateAndReview(c.Request.Context(), &service.RateAndReviewRequest{
		Role:      ident.Role,
		UserID:    ident.UserID,
		ListingID: c.Param("id"),
		Rating:    req.Rating,
		Text:      req.Review,
	})
	if err != nil {
		httputil.WriteError(c, err)
		return
	}
	httputil.WriteOK(c, http.StatusCreated, "Review submitted successfully", rv)
}
