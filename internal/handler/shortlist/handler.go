package shortlist

import (
	listingHandler "carmarket/internal/handler/listing"
	httputil "carmarket/internal/pkg/http"
	"carmarket/internal/service"
)

// ErrorResponse 错误响应类型别名（使用共用的 http.ErrorResponse）
type ErrorResponse = httputil.ErrorResponse

// Handler 买家收藏单处理器
type Handler struct {
	shortlistService service.ShortlistService
}

// NewHandler 创建收藏单处理器
func NewHandler(shortlistService service.ShortlistService) *Handler {
	return &Handler{
		shortlistService: shortlistService,
	}
}

// ItemInfo 收藏车源 DTO，附带经纪人与卖家显示名
type ItemInfo struct {
	listingHandler.ListingInfo
	AgentName  string `json:"agent_name,omitempty"`
	SellerName string `json:"seller_name"`
}

func toItemInfos(items []*service.ShortlistItem) []ItemInfo {
	infos := make([]ItemInfo, 0, len(items))
	for _, it := range items {
		infos = append(infos, ItemInfo{
			ListingInfo: listingHandler.ToListingInfo(it.Listing),
			AgentName:   it.AgentName,
			SellerName:  it.SellerName,
		})
	}
	return infos
}
