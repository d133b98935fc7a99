package shortlist

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"carmarket/internal/model/shortlist"
	"carmarket/internal/pkg/id"
	"carmarket/internal/pkg/mongodb"
)

// ShortlistRepo 买家收藏单仓库
type ShortlistRepo struct {
	collection *mongo.Collection
}

// NewShortlistRepo 创建收藏单仓库
func NewShortlistRepo(db *mongo.Database) *ShortlistRepo {
	var s shortlist.Shortlist
	return &ShortlistRepo{
		collection: db.Collection(s.Collection()),
	}
}

// Add 将车源加入买家收藏单（不存在则创建收藏单）
// 返回是否为新增；重复收藏返回 false 且不报错
func (r *ShortlistRepo) Add(ctx context.Context, userID, listingID string) (bool, error) {
	update := bson.M{
		"$addToSet":    bson.M{"shortlist": listingID},
		"$setOnInsert": bson.M{"_id": id.New()},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"user_id": userID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, mongodb.Translate(err)
	}
	return res.ModifiedCount > 0 || res.UpsertedCount > 0, nil
}

// FindByUser 查询买家收藏单
func (r *ShortlistRepo) FindByUser(ctx context.Context, userID string) (*shortlist.Shortlist, error) {
	var s shortlist.Shortlist
	if err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&s); err != nil {
		return nil, mongodb.Translate(err)
	}
	return &s, nil
}

// Remove 从收藏单移除车源，返回是否确实移除
func (r *ShortlistRepo) Remove(ctx context.Context, userID, listingID string) (bool, error) {
	filter := bson.M{"user_id": userID, "shortlist": listingID}
	res, err := r.collection.UpdateOne(ctx, filter, bson.M{"$pull": bson.M{"shortlist": listingID}})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// RemoveListing 车源删除后从所有收藏单中移除
func (r *ShortlistRepo) RemoveListing(ctx context.Context, listingID string) (int64, error) {
	res, err := r.collection.UpdateMany(ctx,
		bson.M{"shortlist": listingID},
		bson.M{"$pull": bson.M{"shortlist": listingID}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
