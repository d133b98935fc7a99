package listing

import (
	"carmarket/internal/service"
)

// Handler 车源处理器
type Handler struct {
	listingService service.ListingService
}

// NewHandler 创建车源处理器
func NewHandler(listingService service.ListingService) *Handler {
	return &Handler{
		listingService: listingService,
	}
}
