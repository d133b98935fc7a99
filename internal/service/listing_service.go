package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"carmarket/internal/model/listing"
	"carmarket/internal/pkg/apperr"
	"carmarket/internal/pkg/id"
	"carmarket/internal/pkg/logger"
	"carmarket/internal/pkg/mongodb"
)

// ListingService 车源服务
// 车源的增删改查、搜索、浏览/收藏计数以及图片管理
type ListingService interface {
	CreateListing(ctx context.Context, req *CreateListingRequest) (*listing.Listing, error)
	GetListing(ctx context.Context, listingID string) (*listing.Listing, error)
	ListListings(ctx context.Context) ([]*listing.Listing, error)
	ListAgentListings(ctx context.Context, agentID string) ([]*listing.Listing, error)
	UpdateListing(ctx context.Context, listingID, callerID string, upd listing.Update) (*listing.Listing, error)
	DeleteListing(ctx context.Context, listingID, callerID string) error
	SearchListings(ctx context.Context, query string) ([]*listing.Listing, error)

	TrackView(ctx context.Context, listingID string) error
	TrackShortlist(ctx context.Context, listingID string) error
	GetMetrics(ctx context.Context, listingID string) (*listing.Metrics, error)
	MetricsForSeller(ctx context.Context, sellerID string) ([]listing.Metrics, error)

	AddImage(ctx context.Context, listingID, callerID string, upload *ImageUpload) (*listing.Image, error)
	RemoveImage(ctx context.Context, listingID, callerID, imageID string) error
}

type listingService struct {
	listings   ListingStore
	shortlists ShortlistStore
	storage    ObjectStorage
	log        zerolog.Logger
}

// NewListingService 创建车源服务
// storage 可以为 nil，此时图片相关操作返回 Internal
func NewListingService(listings ListingStore, shortlists ShortlistStore, storage ObjectStorage) ListingService {
	return &listingService{
		listings:   listings,
		shortlists: shortlists,
		storage:    storage,
		log:        logger.Component("listing"),
	}
}

// CreateListingRequest 创建车源请求
type CreateListingRequest struct {
	Make     string
	Model    string
	Year     int
	Price    float64
	SellerID string
	AgentID  string
}

// CreateListing 创建车源，计数初始化为 0
func (s *listingService) CreateListing(ctx context.Context, req *CreateListingRequest) (*listing.Listing, error) {
	mk := strings.TrimSpace(req.Make)
	model := strings.TrimSpace(req.Model)
	sellerID := strings.TrimSpace(req.SellerID)
	if mk == "" || model == "" || sellerID == "" {
		return nil, apperr.BadRequest("make, model and seller_id are required")
	}
	if req.Year <= 0 {
		return nil, apperr.BadRequest("year must be a positive number")
	}
	if req.Price <= 0 {
		return nil, apperr.BadRequest("price must be a positive number")
	}

	l := &listing.Listing{
		ID:       id.New(),
		Make:     mk,
		Model:    model,
		Year:     req.Year,
		Price:    req.Price,
		SellerID: sellerID,
		AgentID:  strings.TrimSpace(req.AgentID),
	}
	if err := s.listings.Create(ctx, l); err != nil {
		s.log.Error().Err(err).Msg("failed to create listing")
		return nil, apperr.Internal(err, "failed to create listing")
	}

	s.log.Info().Str("listing_id", l.ID).Str("seller_id", l.SellerID).Str("agent_id", l.AgentID).Msg("listing created")
	return l, nil
}

// GetListing 获取车源，ID 格式不合法同样视为不存在
func (s *listingService) GetListing(ctx context.Context, listingID string) (*listing.Listing, error) {
	if !id.IsValid(listingID) {
		return nil, apperr.NotFound("listing not found")
	}
	l, err := s.listings.FindByID(ctx, listingID)
	if err != nil {
		return nil, notFoundOr(err, "listing not found", "failed to load listing")
	}
	return l, nil
}

// ListListings 全部车源
func (s *listingService) ListListings(ctx context.Context) ([]*listing.Listing, error) {
	return s.list(ctx, listing.Filter{})
}

// ListAgentListings 某经纪人名下的车源
func (s *listingService) ListAgentListings(ctx context.Context, agentID string) ([]*listing.Listing, error) {
	if agentID == "" {
		return nil, apperr.BadRequest("agent_id is required")
	}
	return s.list(ctx, listing.Filter{AgentID: agentID})
}

func (s *listingService) list(ctx context.Context, filter listing.Filter) ([]*listing.Listing, error) {
	items, err := s.listings.List(ctx, filter)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list listings")
		return nil, apperr.Internal(err, "failed to list listings")
	}
	if items == nil {
		items = []*listing.Listing{}
	}
	return items, nil
}

// loadOwned 加载车源并校验调用方是否为归属人
// 不存在返回 NotFound，归属不符返回 Forbidden
func (s *listingService) loadOwned(ctx context.Context, listingID, callerID string) (*listing.Listing, error) {
	l, err := s.GetListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if callerID == "" || l.OwnerID() != callerID {
		return nil, apperr.Forbidden("you do not own this listing")
	}
	return l, nil
}

// UpdateListing 更新车源，字段值未变化同样视为成功
func (s *listingService) UpdateListing(ctx context.Context, listingID, callerID string, upd listing.Update) (*listing.Listing, error) {
	if upd.IsEmpty() {
		return nil, apperr.BadRequest("no update data provided")
	}
	if err := validateUpdate(upd); err != nil {
		return nil, err
	}
	if _, err := s.loadOwned(ctx, listingID, callerID); err != nil {
		return nil, err
	}

	// 与并发删除竞争时，后到者得到 NotFound
	if err := s.listings.Update(ctx, listingID, upd); err != nil {
		return nil, notFoundOr(err, "listing not found", "failed to update listing")
	}
	return s.GetListing(ctx, listingID)
}

func validateUpdate(upd listing.Update) error {
	if upd.Make != nil && strings.TrimSpace(*upd.Make) == "" {
		return apperr.BadRequest("make must not be empty")
	}
	if upd.Model != nil && strings.TrimSpace(*upd.Model) == "" {
		return apperr.BadRequest("model must not be empty")
	}
	if upd.SellerID != nil && strings.TrimSpace(*upd.SellerID) == "" {
		return apperr.BadRequest("seller_id must not be empty")
	}
	if upd.Year != nil && *upd.Year <= 0 {
		return apperr.BadRequest("year must be a positive number")
	}
	if upd.Price != nil && *upd.Price <= 0 {
		return apperr.BadRequest("price must be a positive number")
	}
	return nil
}

// DeleteListing 删除车源，并从所有收藏单中移除、删除已上传的图片
func (s *listingService) DeleteListing(ctx context.Context, listingID, callerID string) error {
	l, err := s.loadOwned(ctx, listingID, callerID)
	if err != nil {
		return err
	}

	if err := s.listings.Delete(ctx, listingID); err != nil {
		return notFoundOr(err, "listing not found", "failed to delete listing")
	}

	if s.shortlists != nil {
		n, err := s.shortlists.RemoveListing(ctx, listingID)
		if err != nil {
			s.log.Warn().Err(err).Str("listing_id", listingID).Msg("failed to remove deleted listing from shortlists")
		} else if n > 0 {
			s.log.Debug().Str("listing_id", listingID).Int64("shortlists", n).Msg("removed deleted listing from shortlists")
		}
	}
	for _, img := range l.Images {
		s.deleteObject(ctx, img.Key)
	}

	s.log.Info().Str("listing_id", listingID).Msg("listing deleted")
	return nil
}

// SearchListings 对 make/model/year 做不区分大小写的子串搜索
// 查询为空属于调用方错误；无匹配返回空列表
func (s *listingService) SearchListings(ctx context.Context, query string) ([]*listing.Listing, error) {
	text := strings.TrimSpace(query)
	if text == "" {
		return nil, apperr.BadRequest("query parameter is required")
	}
	return s.search(ctx, listing.Query{Text: text})
}

func (s *listingService) search(ctx context.Context, q listing.Query) ([]*listing.Listing, error) {
	items, err := s.listings.Search(ctx, q)
	if err != nil {
		s.log.Error().Err(err).Str("query", q.Text).Msg("failed to search listings")
		return nil, apperr.Internal(err, "failed to search listings")
	}
	if items == nil {
		items = []*listing.Listing{}
	}
	return items, nil
}

// TrackView 浏览量 +1
func (s *listingService) TrackView(ctx context.Context, listingID string) error {
	return s.increment(ctx, listingID, listing.CounterViews)
}

// TrackShortlist 收藏量 +1
func (s *listingService) TrackShortlist(ctx context.Context, listingID string) error {
	return s.increment(ctx, listingID, listing.CounterShortlists)
}

func (s *listingService) increment(ctx context.Context, listingID string, counter listing.Counter) error {
	if !id.IsValid(listingID) {
		return apperr.NotFound("listing not found")
	}
	if err := s.listings.Increment(ctx, listingID, counter); err != nil {
		return notFoundOr(err, "listing not found", fmt.Sprintf("failed to track %s", counter))
	}
	return nil
}

// GetMetrics 单个车源的计数
func (s *listingService) GetMetrics(ctx context.Context, listingID string) (*listing.Metrics, error) {
	l, err := s.GetListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	m := listing.MetricsOf(l)
	return &m, nil
}

// MetricsForSeller 卖家名下全部车源的计数；没有车源时返回 NotFound
func (s *listingService) MetricsForSeller(ctx context.Context, sellerID string) ([]listing.Metrics, error) {
	if sellerID == "" {
		return nil, apperr.BadRequest("seller_id is required")
	}
	items, err := s.listings.List(ctx, listing.Filter{SellerID: sellerID})
	if err != nil {
		return nil, apperr.Internal(err, "failed to list seller listings")
	}
	if len(items) == 0 {
		return nil, apperr.NotFound("no listings found for seller")
	}

	metrics := make([]listing.Metrics, 0, len(items))
	for _, l := range items {
		metrics = append(metrics, listing.MetricsOf(l))
	}
	return metrics, nil
}

// ImageUpload 待上传的车源图片
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// AddImage 上传车源图片，归属校验同 UpdateListing
func (s *listingService) AddImage(ctx context.Context, listingID, callerID string, upload *ImageUpload) (*listing.Image, error) {
	if s.storage == nil {
		return nil, apperr.Internal(nil, "image storage is not configured")
	}
	if upload == nil || upload.Reader == nil || upload.Size <= 0 {
		return nil, apperr.BadRequest("image file is required")
	}
	if !strings.HasPrefix(upload.ContentType, "image/") {
		return nil, apperr.BadRequest("unsupported content type %q", upload.ContentType)
	}
	if _, err := s.loadOwned(ctx, listingID, callerID); err != nil {
		return nil, err
	}

	imageID := id.New()
	key := fmt.Sprintf("listings/%s/%s%s", listingID, imageID, strings.ToLower(path.Ext(upload.Filename)))
	url, err := s.storage.Upload(ctx, key, upload.Reader, upload.Size, upload.ContentType)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("failed to upload listing image")
		return nil, apperr.Internal(err, "failed to upload image")
	}

	img := listing.Image{
		ID:          imageID,
		Key:         key,
		URL:         url,
		ContentType: upload.ContentType,
		UploadedAt:  time.Now(),
	}
	if err := s.listings.AddImage(ctx, listingID, img); err != nil {
		s.deleteObject(ctx, key)
		return nil, notFoundOr(err, "listing not found", "failed to save image")
	}

	s.log.Info().Str("listing_id", listingID).Str("image_id", imageID).Msg("listing image added")
	return &img, nil
}

// RemoveImage 删除车源图片
func (s *listingService) RemoveImage(ctx context.Context, listingID, callerID, imageID string) error {
	l, err := s.loadOwned(ctx, listingID, callerID)
	if err != nil {
		return err
	}
	img, ok := l.FindImage(imageID)
	if !ok {
		return apperr.NotFound("image not found")
	}

	if err := s.listings.RemoveImage(ctx, listingID, imageID); err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return apperr.NotFound("image not found")
		}
		return apperr.Internal(err, "failed to remove image")
	}
	s.deleteObject(ctx, img.Key)
	return nil
}

// deleteObject 尽力删除存储对象，失败只记日志
func (s *listingService) deleteObject(ctx context.Context, key string) {
	if s.storage == nil || key == "" {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to delete stored object")
	}
}
