package listing

import (
	"time"

	"carmarket/internal/model/listing"
	httputil "carmarket/internal/pkg/http"
)

// ErrorResponse 错误响应类型别名（使用共用的 http.ErrorResponse）
type ErrorResponse = httputil.ErrorResponse

// ListingInfo 车源信息 DTO
type ListingInfo struct {
	ID         string      `json:"id"`
	Make       string      `json:"make"`
	Model      string      `json:"model"`
	Year       int         `json:"year"`
	Price      float64     `json:"price"`
	SellerID   string      `json:"seller_id"`
	AgentID    string      `json:"agent_id,omitempty"`
	Views      int64       `json:"views"`
	Shortlists int64       `json:"shortlists"`
	Images     []ImageInfo `json:"images"`
	CreatedAt  string      `json:"created_at"`
}

// ImageInfo 车源图片 DTO
type ImageInfo struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	UploadedAt  string `json:"uploaded_at"`
}

// ToListingInfo 将 Listing 实体转换为 DTO
func ToListingInfo(l *listing.Listing) ListingInfo {
	info := ListingInfo{
		ID:         l.ID,
		Make:       l.Make,
		Model:      l.Model,
		Year:       l.Year,
		Price:      l.Price,
		SellerID:   l.SellerID,
		AgentID:    l.AgentID,
		Views:      l.Views,
		Shortlists: l.Shortlists,
		Images:     make([]ImageInfo, 0, len(l.Images)),
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
	}
	for _, img := range l.Images {
		info.Images = append(info.Images, toImageInfo(img))
	}
	return info
}

func toImageInfo(img listing.Image) ImageInfo {
	return ImageInfo{
		ID:          img.ID,
		URL:         img.URL,
		ContentType: img.ContentType,
		UploadedAt:  img.UploadedAt.Format(time.RFC3339),
	}
}

func toListingInfos(items []*listing.Listing) []ListingInfo {
	infos := make([]ListingInfo, 0, len(items))
	for _, l := range items {
		infos = append(infos, ToListingInfo(l))
	}
	return infos
}
