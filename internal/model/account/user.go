package account

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// 系统内置角色；角色集合是开放的，由 Profile 决定
const (
	RoleAdmin  = "user_admin"     // 管理员
	RoleAgent  = "used_car_agent" // 二手车经纪人
	RoleBuyer  = "buyer"          // 买家
	RoleSeller = "seller"         // 卖家
)

// User 用户账号
// ID使用UUID格式（string）
type User struct {
	ID        string    `bson:"_id" json:"id"`
	Username  string    `bson:"username" json:"username"` // 用户名（唯一）
	Password  string    `bson:"password" json:"-"`        // 凭据（不返回）
	Email     string    `bson:"email" json:"email"`
	Role      string    `bson:"role" json:"role"`
	Suspended bool      `bson:"suspended" json:"suspended"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Collection 返回集合名称
func (u *User) Collection() string {
	return "users"
}

// Indexes 用户集合索引
func (u *User) Indexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "username", Value: 1}},
			Options: options.Index().SetName("idx_username").SetUnique(true),
		},
		{
			Keys:    bson.D{bson.E{Key: "role", Value: 1}, bson.E{Key: "suspended", Value: 1}},
			Options: options.Index().SetName("idx_role_suspended"),
		},
		{
			Keys:    bson.D{bson.E{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_email"),
		},
	}
}

// 用户状态筛选值
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

// UserFilter 用户筛选条件
// Username/Email 为不区分大小写的部分匹配，Role 为精确匹配
type UserFilter struct {
	Username  string
	Email     string
	Role      string
	Suspended *bool
}

// UserUpdate 用户可更新字段（nil 表示不更新）
type UserUpdate struct {
	Email    *string
	Password *string
	Role     *string
}

// IsEmpty 是否没有任何待更新字段
func (u UserUpdate) IsEmpty() bool {
	return u.Email == nil && u.Password == nil && u.Role == nil
}
