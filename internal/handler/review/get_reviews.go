package review

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "carmarket/internal/pkg/http"
)

// GetAgentReviews 经纪人的评价与平均分
// @Summary      经纪人评价
// @Description  没有评价时 average 为 null
// @Tags         评价
// @Produce      json
// @Security     BearerAuth
// @Param        agent_id  path      string  true  "经纪人ID"
// @Success      200       {object}  httputil.SuccessResponse{data=service.AgentReviews}
// @Failure      404       {object}  ErrorResponse
// @Router       /api/v1/agents/{agent_id}/reviews [get]
func (h *Handler) GetAgentReviews(c *gin.Context) {
	result, err := h.reviewService.GetReviewsAndAverage(c.Request.Context(), c.Param("agent_id"))
	if err != nil {
		httputil.WriteError(c, err)
		return
	}
	httputil.WriteOK(c, http.StatusOK, "success", result)
}
