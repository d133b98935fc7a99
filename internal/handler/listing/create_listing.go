package listing

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carmarket/internal/model/account"
	httputil "carmarket/internal/pkg/http"
	"carmarket/internal/service"
)

// CreateListingRequest 创建车源请求
type CreateListingRequest struct {
	Make     string  `json:"make" binding:"required"`
	Model    string  `json:"model" binding:"required"`
	Year     int     `json:"year" binding:"required"`
	Price    float64 `json:"price" binding:"required"`
	SellerID string  `json:"seller_id" binding:"required"`
}

// CreateListing 创建车源
// @Summary      创建车源
// @Description  经纪人为卖家发布车源，agent_id 取当前登录的经纪人
// @Tags         车源
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      CreateListingRequest  true  "车源信息"
// @Success      201      {object}  httputil.SuccessResponse{data=ListingInfo}
// @Failure      400      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Router       /api/v1/listings [post]
func (h *Handler) CreateListing(c *gin.Context) {
	ident, err := httputil.CurrentIdentity(c)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.WriteBindError(c, err)
		return
	}

	create := &service.CreateListingRequest{
		Make:     req.Make,
		Model:    req.Model,
		Year:     req.Year,
		Price:    req.Price,
		SellerID: req.SellerID,
	}
	if ident.Role == account.RoleAgent {
		create.AgentID = ident.UserID
	}

	l, err := h.listingService.CreateListing(c.Request.Context(), create)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteOK(c, http.StatusCreated, "Listing created successfully", ToListingInfo(l))
}
