package service

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"carmarket/internal/model/listing"
	"carmarket/internal/pkg/apperr"
	"carmarket/internal/pkg/id"
	"carmarket/internal/pkg/logger"
	"carmarket/internal/pkg/mongodb"
)

// DefaultUnavailableName 无法解析的用户引用显示的占位名
const DefaultUnavailableName = "Unavailable"

// ShortlistService 买家收藏单服务
type ShortlistService interface {
	SaveListing(ctx context.Context, userID, listingID string) (*SaveResult, error)
	GetShortlist(ctx context.Context, userID string) ([]*ShortlistItem, error)
	RemoveFromShortlist(ctx context.Context, userID, listingID string) error
	SearchShortlist(ctx context.Context, userID string, req *SearchShortlistRequest) ([]*ShortlistItem, error)
}

type shortlistService struct {
	shortlists  ShortlistStore
	listings    ListingStore
	users       UserStore
	names       NameCache
	unavailable string
	log         zerolog.Logger
}

// ShortlistOption 收藏单服务可选项
type ShortlistOption func(*shortlistService)

// WithNameCache 设置用户显示名缓存
func WithNameCache(cache NameCache) ShortlistOption {
	return func(s *shortlistService) {
		s.names = cache
	}
}

// WithUnavailableName 设置占位显示名
func WithUnavailableName(name string) ShortlistOption {
	return func(s *shortlistService) {
		if name != "" {
			s.unavailable = name
		}
	}
}

// NewShortlistService 创建收藏单服务
func NewShortlistService(shortlists ShortlistStore, listings ListingStore, users UserStore, opts ...ShortlistOption) ShortlistService {
	s := &shortlistService{
		shortlists:  shortlists,
		listings:    listings,
		users:       users,
		unavailable: DefaultUnavailableName,
		log:         logger.Component("shortlist"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SaveResult 收藏结果，Added 为 false 表示此前已收藏
type SaveResult struct {
	ListingID string `json:"listing_id"`
	Added     bool   `json:"added"`
}

// ShortlistItem 展开后的收藏车源，附带经纪人与卖家的显示名
type ShortlistItem struct {
	*listing.Listing
	AgentName  string `json:"agent_name,omitempty"`
	SellerName string `json:"seller_name"`
}

// SaveListing 收藏车源；重复收藏不报错
// 收藏计数由 ListingService.TrackShortlist 单独维护，这里只写收藏单
func (s *shortlistService) SaveListing(ctx context.Context, userID, listingID string) (*SaveResult, error) {
	if userID == "" {
		return nil, apperr.BadRequest("user_id is required")
	}
	if !id.IsValid(listingID) {
		return nil, apperr.NotFound("listing not found")
	}
	if _, err := s.listings.FindByID(ctx, listingID); err != nil {
		return nil, notFoundOr(err, "listing not found", "failed to load listing")
	}

	added, err := s.shortlists.Add(ctx, userID, listingID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to save listing to shortlist")
		return nil, apperr.Internal(err, "failed to save listing to shortlist")
	}
	if added {
		s.log.Debug().Str("user_id", userID).Str("listing_id", listingID).Msg("listing saved to shortlist")
	}

	return &SaveResult{ListingID: listingID, Added: added}, nil
}

// GetShortlist 返回收藏的车源详情；已删除的车源被跳过
func (s *shortlistService) GetShortlist(ctx context.Context, userID string) ([]*ShortlistItem, error) {
	ids, err := s.listingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]*ShortlistItem, 0, len(ids))
	for _, listingID := range ids {
		l, err := s.listings.FindByID(ctx, listingID)
		if err != nil {
			if errors.Is(err, mongodb.ErrNotFound) {
				continue
			}
			return nil, apperr.Internal(err, "failed to load listing")
		}
		items = append(items, s.hydrate(ctx, l))
	}
	return items, nil
}

// listingIDs 买家收藏的车源ID；尚无收藏单时返回空
func (s *shortlistService) listingIDs(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return nil, apperr.BadRequest("user_id is required")
	}
	sl, err := s.shortlists.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return []string{}, nil
		}
		return nil, apperr.Internal(err, "failed to load shortlist")
	}
	if sl.Listings == nil {
		return []string{}, nil
	}
	return sl.Listings, nil
}

func (s *shortlistService) hydrate(ctx context.Context, l *listing.Listing) *ShortlistItem {
	item := &ShortlistItem{
		Listing:    l,
		SellerName: s.displayName(ctx, l.SellerID),
	}
	if l.AgentID != "" {
		item.AgentName = s.displayName(ctx, l.AgentID)
	}
	return item
}

// displayName 将用户ID解析为用户名，解析失败返回占位名而不是报错
func (s *shortlistService) displayName(ctx context.Context, userID string) string {
	if s.names != nil {
		if name, ok := s.names.GetName(ctx, userID); ok {
			return name
		}
	}
	if !id.IsValid(userID) {
		return s.unavailable
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, mongodb.ErrNotFound) {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to resolve display name")
		}
		return s.unavailable
	}
	if s.names != nil {
		s.names.SetName(ctx, userID, user.Username)
	}
	return user.Username
}

// RemoveFromShortlist 取消收藏；未收藏时返回 NotFound
func (s *shortlistService) RemoveFromShortlist(ctx context.Context, userID, listingID string) error {
	if userID == "" || listingID == "" {
		return apperr.BadRequest("user_id and listing_id are required")
	}
	removed, err := s.shortlists.Remove(ctx, userID, listingID)
	if err != nil {
		return apperr.Internal(err, "failed to update shortlist")
	}
	if !removed {
		return apperr.NotFound("listing not found in shortlist")
	}
	return nil
}

// SearchShortlistRequest 收藏单搜索条件，Query 与 ListingID 必须且只能提供一个
type SearchShortlistRequest struct {
	Query     string
	ListingID string
}

// SearchShortlist 在买家自己的收藏单内搜索
func (s *shortlistService) SearchShortlist(ctx context.Context, userID string, req *SearchShortlistRequest) ([]*ShortlistItem, error) {
	query := strings.TrimSpace(req.Query)
	listingID := strings.TrimSpace(req.ListingID)
	if (query == "") == (listingID == "") {
		return nil, apperr.BadRequest("exactly one of query or listing_id must be provided")
	}

	ids, err := s.listingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	var found []*listing.Listing
	if listingID != "" {
		if slices.Contains(ids, listingID) {
			l, err := s.listings.FindByID(ctx, listingID)
			switch {
			case err == nil:
				found = append(found, l)
			case !errors.Is(err, mongodb.ErrNotFound):
				return nil, apperr.Internal(err, "failed to load listing")
			}
		}
	} else {
		found, err = s.listings.Search(ctx, listing.Query{Text: query, IDs: ids})
		if err != nil {
			return nil, apperr.Internal(err, "failed to search shortlist")
		}
	}

	items := make([]*ShortlistItem, 0, len(found))
	for _, l := range found {
		items = append(items, s.hydrate(ctx, l))
	}
	return items, nil
}
