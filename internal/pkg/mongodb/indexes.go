package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"carmarket/internal/model/account"
	"carmarket/internal/model/listing"
	"carmarket/internal/model/review"
	"carmarket/internal/model/shortlist"
)

// EnsureIndexes 创建所有集合的索引
// 唯一索引承担了用户名、角色、买家收藏单、评价三元组的唯一性约束
func EnsureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return EnsureAllIndexes(ctx, db,
		&account.User{},
		&account.Profile{},
		&listing.Listing{},
		&shortlist.Shortlist{},
		&review.Review{},
	)
}
