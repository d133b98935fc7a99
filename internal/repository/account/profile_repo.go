package account

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"carmarket/internal/model/account"
	"carmarket/internal/pkg/mongodb"
)

// ProfileRepo 角色档案仓库
type ProfileRepo struct {
	collection *mongo.Collection
}

// NewProfileRepo 创建角色档案仓库
func NewProfileRepo(db *mongo.Database) *ProfileRepo {
	var p account.Profile
	return &ProfileRepo{
		collection: db.Collection(p.Collection()),
	}
}

// Create 创建档案，角色重复时返回 mongodb.ErrDuplicate
func (r *ProfileRepo) Create(ctx context.Context, profile *account.Profile) error {
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, profile)
	return mongodb.Translate(err)
}

// FindByRole 根据角色查询档案
func (r *ProfileRepo) FindByRole(ctx context.Context, role string) (*account.Profile, error) {
	var profile account.Profile
	if err := r.collection.FindOne(ctx, bson.M{"role": role}).Decode(&profile); err != nil {
		return nil, mongodb.Translate(err)
	}
	return &profile, nil
}

// List 查询全部档案
func (r *ProfileRepo) List(ctx context.Context) ([]*account.Profile, error) {
	return r.find(ctx, bson.M{})
}

// Search 按角色名或权限做不区分大小写的正则匹配
// query 按正则原样使用，和管理后台的搜索语义一致
func (r *ProfileRepo) Search(ctx context.Context, query string) ([]*account.Profile, error) {
	pattern := bson.M{"$regex": query, "$options": "i"}
	return r.find(ctx, bson.M{"$or": bson.A{
		bson.M{"role": pattern},
		bson.M{"rights": pattern},
	}})
}

func (r *ProfileRepo) find(ctx context.Context, filter bson.M) ([]*account.Profile, error) {
	opts := options.Find().SetSort(bson.D{bson.E{Key: "role", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	profiles := make([]*account.Profile, 0)
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// UpdateRights 更新档案权限
func (r *ProfileRepo) UpdateRights(ctx context.Context, role string, rights []string) error {
	update := bson.M{"$set": bson.M{"rights": rights, "updated_at": time.Now()}}
	return r.updateOne(ctx, role, update)
}

// SetSuspended 挂起/恢复档案（只写档案本身，级联由服务层负责）
func (r *ProfileRepo) SetSuspended(ctx context.Context, role string, suspended bool) error {
	update := bson.M{"$set": bson.M{"suspended": suspended, "updated_at": time.Now()}}
	return r.updateOne(ctx, role, update)
}

func (r *ProfileRepo) updateOne(ctx context.Context, role string, update bson.M) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"role": role}, update)
	if err != nil {
		return mongodb.Translate(err)
	}
	if res.MatchedCount == 0 {
		return mongodb.ErrNotFound
	}
	return nil
}
