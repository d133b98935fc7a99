package review

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"carmarket/internal/model/review"
	"carmarket/internal/pkg/mongodb"
)

// ReviewRepo 评价仓库
type ReviewRepo struct {
	collection *mongo.Collection
}

// NewReviewRepo 创建评价仓库
func NewReviewRepo(db *mongo.Database) *ReviewRepo {
	var rv review.Review
	return &ReviewRepo{
		collection: db.Collection(rv.Collection()),
	}
}

// Create 创建评价，created_at 由服务端写入
// 违反 (agent_id, listing_id, reviewer_id) 唯一索引时返回 mongodb.ErrDuplicate
func (r *ReviewRepo) Create(ctx context.Context, rv *review.Review) error {
	rv.CreatedAt = time.Now().UTC()
	_, err := r.collection.InsertOne(ctx, rv)
	return mongodb.Translate(err)
}

// FindByID 根据ID查询评价
func (r *ReviewRepo) FindByID(ctx context.Context, id string) (*review.Review, error) {
	var rv review.Review
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rv); err != nil {
		return nil, mongodb.Translate(err)
	}
	return &rv, nil
}

// Exists 是否已存在同一唯一性键的评价
func (r *ReviewRepo) Exists(ctx context.Context, key review.Key) (bool, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{
		"agent_id":    key.AgentID,
		"listing_id":  key.ListingID,
		"reviewer_id": key.ReviewerID,
	}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListByAgent 查询经纪人收到的全部评价，按创建时间倒序
func (r *ReviewRepo) ListByAgent(ctx context.Context, agentID string) ([]*review.Review, error) {
	opts := options.Find().SetSort(bson.D{bson.E{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"agent_id": agentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := make([]*review.Review, 0)
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// UpdateContent 更新评分与评价内容并记录编辑时间
func (r *ReviewRepo) UpdateContent(ctx context.Context, id string, rating float64, text string, editedAt time.Time) error {
	update := bson.M{"$set": bson.M{
		"rating":    rating,
		"review":    text,
		"edited_at": editedAt,
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongodb.ErrNotFound
	}
	return nil
}
