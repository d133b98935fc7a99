package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"carmarket/internal/model/account"
	"carmarket/internal/model/review"
	"carmarket/internal/pkg/apperr"
	"carmarket/internal/pkg/id"
	"carmarket/internal/pkg/logger"
	"carmarket/internal/pkg/mongodb"
)

// ReviewService 经纪人评价与评分汇总
type ReviewService interface {
	CreateReviewEntry(ctx context.Context, req *CreateReviewRequest) (*review.Review, error)
	RateAndReview(ctx context.Context, req *RateAndReviewRequest) (*review.Review, error)
	EditReview(ctx context.Context, reviewID string, req *EditReviewRequest) (*review.Review, error)
	GetReviewsAndAverage(ctx context.Context, agentID string) (*AgentReviews, error)
}

type reviewService struct {
	reviews  ReviewStore
	users    UserStore
	listings ListingStore
	now      func() time.Time
	log      zerolog.Logger
}

// NewReviewService 创建评价服务
func NewReviewService(reviews ReviewStore, users UserStore, listings ListingStore) ReviewService {
	return &reviewService{
		reviews:  reviews,
		users:    users,
		listings: listings,
		now:      time.Now,
		log:      logger.Component("review"),
	}
}

// CreateReviewRequest 创建评价请求
type CreateReviewRequest struct {
	AgentID      string
	ReviewerID   string
	ReviewerRole string
	ListingID    string
	Rating       float64
	Text         string
}

// RateAndReviewRequest 通过车源评价其经纪人
// Role 为调用方角色，只允许 buyer / seller
type RateAndReviewRequest struct {
	Role      string
	UserID    string
	ListingID string
	Rating    float64
	Text      string
}

// EditReviewRequest 修改评价，Text 为 nil 表示保留原内容
type EditReviewRequest struct {
	ReviewerID string
	Rating     float64
	Text       *string
}

// AgentReviews 经纪人的全部评价及平均分；没有评价时 Average 为 nil
type AgentReviews struct {
	AgentID string           `json:"agent_id"`
	Reviews []*review.Review `json:"reviews"`
	Count   int              `json:"count"`
	Average *float64         `json:"average"`
}

func validRating(r float64) error {
	if !review.ValidRating(r) {
		return apperr.BadRequest("rating must be between %g and %g", review.MinRating, review.MaxRating)
	}
	return nil
}

func isReviewerRole(role string) bool {
	return role == account.RoleBuyer || role == account.RoleSeller
}

// CreateReviewEntry 创建评价
// 同一评价人对同一经纪人、同一车源只能评价一次
func (s *reviewService) CreateReviewEntry(ctx context.Context, req *CreateReviewRequest) (*review.Review, error) {
	if err := validRating(req.Rating); err != nil {
		return nil, err
	}
	if !isReviewerRole(req.ReviewerRole) {
		return nil, apperr.BadRequest("reviewer_role must be %q or %q", account.RoleBuyer, account.RoleSeller)
	}
	if _, err := s.loadAgent(ctx, req.AgentID); err != nil {
		return nil, err
	}

	reviewer, err := s.loadUser(ctx, req.ReviewerID, "reviewer not found")
	if err != nil {
		return nil, err
	}
	if reviewer.Role != req.ReviewerRole {
		return nil, apperr.BadRequest("reviewer role does not match %q", req.ReviewerRole)
	}

	key := review.Key{AgentID: req.AgentID, ListingID: req.ListingID, ReviewerID: req.ReviewerID}
	exists, err := s.reviews.Exists(ctx, key)
	if err != nil {
		return nil, apperr.Internal(err, "failed to check existing reviews")
	}
	if exists {
		return nil, apperr.Conflict("review already submitted for this agent and listing")
	}

	rv := &review.Review{
		ID:           id.New(),
		AgentID:      req.AgentID,
		ReviewerID:   req.ReviewerID,
		ReviewerRole: req.ReviewerRole,
		ListingID:    req.ListingID,
		Rating:       req.Rating,
		Review:       strings.TrimSpace(req.Text),
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		if errors.Is(err, mongodb.ErrDuplicate) {
			return nil, apperr.Conflict("review already submitted for this agent and listing")
		}
		s.log.Error().Err(err).Str("agent_id", req.AgentID).Msg("failed to create review")
		return nil, apperr.Internal(err, "failed to create review")
	}

	s.log.Info().Str("review_id", rv.ID).Str("agent_id", rv.AgentID).Float64("rating", rv.Rating).Msg("review created")
	return rv, nil
}

// RateAndReview 由车源解析出经纪人后创建评价
func (s *reviewService) RateAndReview(ctx context.Context, req *RateAndReviewRequest) (*review.Review, error) {
	if !isReviewerRole(req.Role) {
		return nil, apperr.BadRequest("only %s or %s can rate an agent", account.RoleBuyer, account.RoleSeller)
	}
	if !id.IsValid(req.ListingID) {
		return nil, apperr.NotFound("listing not found")
	}
	l, err := s.listings.FindByID(ctx, req.ListingID)
	if err != nil {
		return nil, notFoundOr(err, "listing not found", "failed to load listing")
	}
	if l.AgentID == "" {
		return nil, apperr.NotFound("listing has no agent to review")
	}

	return s.CreateReviewEntry(ctx, &CreateReviewRequest{
		AgentID:      l.AgentID,
		ReviewerID:   req.UserID,
		ReviewerRole: req.Role,
		ListingID:    l.ID,
		Rating:       req.Rating,
		Text:         req.Text,
	})
}

// EditReview 修改评价，只有原评价人可以修改
func (s *reviewService) EditReview(ctx context.Context, reviewID string, req *EditReviewRequest) (*review.Review, error) {
	if !id.IsValid(reviewID) {
		return nil, apperr.NotFound("review not found")
	}
	rv, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, notFoundOr(err, "review not found", "failed to load review")
	}
	if req.ReviewerID == "" || rv.ReviewerID != req.ReviewerID {
		return nil, apperr.Forbidden("only the original reviewer can edit this review")
	}
	if err := validRating(req.Rating); err != nil {
		return nil, err
	}

	text := rv.Review
	if req.Text != nil {
		text = strings.TrimSpace(*req.Text)
	}
	editedAt := s.now().UTC()
	if err := s.reviews.UpdateContent(ctx, reviewID, req.Rating, text, editedAt); err != nil {
		return nil, notFoundOr(err, "review not found", "failed to update review")
	}

	rv.Rating = req.Rating
	rv.Review = text
	rv.EditedAt = &editedAt
	return rv, nil
}

// GetReviewsAndAverage 经纪人的全部评价及平均分（保留两位小数）
func (s *reviewService) GetReviewsAndAverage(ctx context.Context, agentID string) (*AgentReviews, error) {
	if _, err := s.loadAgent(ctx, agentID); err != nil {
		return nil, err
	}

	reviews, err := s.reviews.ListByAgent(ctx, agentID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to list reviews")
	}
	if reviews == nil {
		reviews = []*review.Review{}
	}

	return &AgentReviews{
		AgentID: agentID,
		Reviews: reviews,
		Count:   len(reviews),
		Average: averageRating(reviews),
	}, nil
}

func averageRating(reviews []*review.Review) *float64 {
	if len(reviews) == 0 {
		return nil
	}
	var sum float64
	for _, rv := range reviews {
		sum += rv.Rating
	}
	avg := math.Round(sum/float64(len(reviews))*100) / 100
	return &avg
}

// loadAgent 校验经纪人存在且角色为经纪人
func (s *reviewService) loadAgent(ctx context.Context, agentID string) (*account.User, error) {
	agent, err := s.loadUser(ctx, agentID, "agent not found")
	if err != nil {
		return nil, err
	}
	if agent.Role != account.RoleAgent {
		return nil, apperr.NotFound("agent not found")
	}
	return agent, nil
}

func (s *reviewService) loadUser(ctx context.Context, userID, notFoundMsg string) (*account.User, error) {
	if !id.IsValid(userID) {
		return nil, apperr.NotFound("%s", notFoundMsg)
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, notFoundMsg, "failed to load user")
	}
	return user, nil
}
