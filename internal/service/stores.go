package service

import (
	"context"
	"io"
	"time"

	"carmarket/internal/model/account"
	"carmarket/internal/model/listing"
	"carmarket/internal/model/review"
	"carmarket/internal/model/shortlist"
)

// 以下接口由 internal/repository 下的 Mongo 仓库实现
// 未找到返回 mongodb.ErrNotFound，违反唯一约束返回 mongodb.ErrDuplicate

// UserStore 用户存储
type UserStore interface {
	Create(ctx context.Context, user *account.User) error
	FindByID(ctx context.Context, id string) (*account.User, error)
	FindByUsername(ctx context.Context, username string) (*account.User, error)
	Find(ctx context.Context, filter account.UserFilter) ([]*account.User, error)
	Update(ctx context.Context, username string, upd account.UserUpdate) error
	SetSuspended(ctx context.Context, username string, suspended bool) error
	SetSuspendedByRole(ctx context.Context, role string, suspended bool) (int64, error)
}

// ProfileStore 角色档案存储
type ProfileStore interface {
	Create(ctx context.Context, profile *account.Profile) error
	FindByRole(ctx context.Context, role string) (*account.Profile, error)
	List(ctx context.Context) ([]*account.Profile, error)
	Search(ctx context.Context, query string) ([]*account.Profile, error)
	UpdateRights(ctx context.Context, role string, rights []string) error
	SetSuspended(ctx context.Context, role string, suspended bool) error
}

// ListingStore 车源存储
type ListingStore interface {
	Create(ctx context.Context, l *listing.Listing) error
	FindByID(ctx context.Context, id string) (*listing.Listing, error)
	List(ctx context.Context, filter listing.Filter) ([]*listing.Listing, error)
	Search(ctx context.Context, q listing.Query) ([]*listing.Listing, error)
	Update(ctx context.Context, id string, upd listing.Update) error
	Delete(ctx context.Context, id string) error
	Increment(ctx context.Context, id string, counter listing.Counter) error
	AddImage(ctx context.Context, id string, img listing.Image) error
	RemoveImage(ctx context.Context, id, imageID string) error
}

// ShortlistStore 收藏单存储
type ShortlistStore interface {
	Add(ctx context.Context, userID, listingID string) (bool, error)
	FindByUser(ctx context.Context, userID string) (*shortlist.Shortlist, error)
	Remove(ctx context.Context, userID, listingID string) (bool, error)
	RemoveListing(ctx context.Context, listingID string) (int64, error)
}

// ReviewStore 评价存储
type ReviewStore interface {
	Create(ctx context.Context, rv *review.Review) error
	FindByID(ctx context.Context, id string) (*review.Review, error)
	Exists(ctx context.Context, key review.Key) (bool, error)
	ListByAgent(ctx context.Context, agentID string) ([]*review.Review, error)
	UpdateContent(ctx context.Context, id string, rating float64, text string, editedAt time.Time) error
}

// ObjectStorage 车源图片存储（由 internal/pkg/storage 的各后端实现）
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// NameCache 用户显示名缓存（Redis 实现，可为空）
type NameCache interface {
	GetName(ctx context.Context, userID string) (string, bool)
	SetName(ctx context.Context, userID, name string)
}
