package account

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"carmarket/internal/model/account"
	"carmarket/internal/pkg/mongodb"
)

// UserRepo 用户仓库
type UserRepo struct {
	collection *mongo.Collection
}

// NewUserRepo 创建用户仓库
func NewUserRepo(db *mongo.Database) *UserRepo {
	var u account.User
	return &UserRepo{
		collection: db.Collection(u.Collection()),
	}
}

// Create 创建用户，用户名重复时返回 mongodb.ErrDuplicate
func (r *UserRepo) Create(ctx context.Context, user *account.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, user)
	return mongodb.Translate(err)
}

// FindByID 根据ID查询用户
func (r *UserRepo) FindByID(ctx context.Context, id string) (*account.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByUsername 根据用户名查询用户
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*account.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepo) findOne(ctx context.Context, filter bson.M) (*account.User, error) {
	var user account.User
	if err := r.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, mongodb.Translate(err)
	}
	return &user, nil
}

// Find 按条件筛选用户
func (r *UserRepo) Find(ctx context.Context, f account.UserFilter) ([]*account.User, error) {
	filter := bson.M{}
	if f.Username != "" {
		filter["username"] = containsIgnoreCase(f.Username)
	}
	if f.Email != "" {
		filter["email"] = containsIgnoreCase(f.Email)
	}
	if f.Role != "" {
		filter["role"] = f.Role
	}
	if f.Suspended != nil {
		filter["suspended"] = *f.Suspended
	}

	opts := options.Find().SetSort(bson.D{bson.E{Key: "username", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := make([]*account.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Update 按用户名更新用户
func (r *UserRepo) Update(ctx context.Context, username string, upd account.UserUpdate) error {
	set := bson.M{"updated_at": time.Now()}
	if upd.Email != nil {
		set["email"] = *upd.Email
	}
	if upd.Password != nil {
		set["password"] = *upd.Password
	}
	if upd.Role != nil {
		set["role"] = *upd.Role
	}
	return r.updateOne(ctx, bson.M{"username": username}, bson.M{"$set": set})
}

// SetSuspended 挂起/恢复单个用户
func (r *UserRepo) SetSuspended(ctx context.Context, username string, suspended bool) error {
	update := bson.M{"$set": bson.M{"suspended": suspended, "updated_at": time.Now()}}
	return r.updateOne(ctx, bson.M{"username": username}, update)
}

// SetSuspendedByRole 批量挂起/恢复某角色下的用户，返回实际变更数量
func (r *UserRepo) SetSuspendedByRole(ctx context.Context, role string, suspended bool) (int64, error) {
	filter := bson.M{"role": role, "suspended": bson.M{"$ne": suspended}}
	update := bson.M{"$set": bson.M{"suspended": suspended, "updated_at": time.Now()}}
	res, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *UserRepo) updateOne(ctx context.Context, filter, update bson.M) error {
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return mongodb.Translate(err)
	}
	if res.MatchedCount == 0 {
		return mongodb.ErrNotFound
	}
	return nil
}

// containsIgnoreCase 不区分大小写的子串匹配（转义用户输入中的正则元字符）
func containsIgnoreCase(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}
