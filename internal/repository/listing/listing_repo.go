package listing

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"carmarket/internal/model/listing"
	"carmarket/internal/pkg/mongodb"
)

// ListingRepo 车源仓库
type ListingRepo struct {
	collection *mongo.Collection
}

// NewListingRepo 创建车源仓库
func NewListingRepo(db *mongo.Database) *ListingRepo {
	var l listing.Listing
	return &ListingRepo{
		collection: db.Collection(l.Collection()),
	}
}

// Create 创建车源
func (r *ListingRepo) Create(ctx context.Context, l *listing.Listing) error {
	now := time.Now()
	l.CreatedAt = now
	l.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, l)
	return mongodb.Translate(err)
}

// FindByID 根据ID查询车源
func (r *ListingRepo) FindByID(ctx context.Context, id string) (*listing.Listing, error) {
	var l listing.Listing
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&l); err != nil {
		return nil, mongodb.Translate(err)
	}
	return &l, nil
}

// List 按经纪人/卖家筛选车源，按创建时间倒序
func (r *ListingRepo) List(ctx context.Context, f listing.Filter) ([]*listing.Listing, error) {
	filter := bson.M{}
	if f.AgentID != "" {
		filter["agent_id"] = f.AgentID
	}
	if f.SellerID != "" {
		filter["seller_id"] = f.SellerID
	}
	return r.find(ctx, filter)
}

// Search 对 make/model/year 做不区分大小写的子串搜索
// year 以数字存储，通过 $toString 转为文本后匹配
func (r *ListingRepo) Search(ctx context.Context, q listing.Query) ([]*listing.Listing, error) {
	filter := bson.M{}
	if q.IDs != nil {
		filter["_id"] = bson.M{"$in": q.IDs}
	}
	if q.Text != "" {
		pattern := regexp.QuoteMeta(q.Text)
		filter["$or"] = bson.A{
			bson.M{"make": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"model": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"$expr": bson.M{"$regexMatch": bson.M{
				"input":   bson.M{"$toString": "$year"},
				"regex":   pattern,
				"options": "i",
			}}},
		}
	}
	return r.find(ctx, filter)
}

func (r *ListingRepo) find(ctx context.Context, filter bson.M) ([]*listing.Listing, error) {
	opts := options.Find().SetSort(bson.D{bson.E{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	listings := make([]*listing.Listing, 0)
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// Update 更新车源字段
func (r *ListingRepo) Update(ctx context.Context, id string, upd listing.Update) error {
	set := bson.M{"updated_at": time.Now()}
	if upd.Make != nil {
		set["make"] = *upd.Make
	}
	if upd.Model != nil {
		set["model"] = *upd.Model
	}
	if upd.Year != nil {
		set["year"] = *upd.Year
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.SellerID != nil {
		set["seller_id"] = *upd.SellerID
	}
	return r.updateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
}

// Delete 删除车源
func (r *ListingRepo) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongodb.ErrNotFound
	}
	return nil
}

// Increment 原子递增计数字段
func (r *ListingRepo) Increment(ctx context.Context, id string, counter listing.Counter) error {
	update := bson.M{"$inc": bson.M{string(counter): 1}}
	return r.updateOne(ctx, bson.M{"_id": id}, update)
}

// AddImage 追加图片
func (r *ListingRepo) AddImage(ctx context.Context, id string, img listing.Image) error {
	update := bson.M{
		"$push": bson.M{"images": img},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	return r.updateOne(ctx, bson.M{"_id": id}, update)
}

// RemoveImage 移除图片，图片不存在时返回 mongodb.ErrNotFound
func (r *ListingRepo) RemoveImage(ctx context.Context, id, imageID string) error {
	filter := bson.M{"_id": id, "images.id": imageID}
	update := bson.M{
		"$pull": bson.M{"images": bson.M{"id": imageID}},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	return r.updateOne(ctx, filter, update)
}

func (r *ListingRepo) updateOne(ctx context.Context, filter, update bson.M) error {
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return mongodb.Translate(err)
	}
	if res.MatchedCount == 0 {
		return mongodb.ErrNotFound
	}
	return nil
}
