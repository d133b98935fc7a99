package account

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Profile 角色档案，每个角色至多一个
// 挂起/恢复档案会级联到该角色下的全部用户
type Profile struct {
	ID        string    `bson:"_id" json:"id"`
	Role      string    `bson:"role" json:"role"`
	Rights    []string  `bson:"rights" json:"rights"`
	Suspended bool      `bson:"suspended" json:"suspended"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Collection 返回集合名称
func (p *Profile) Collection() string {
	return "profiles"
}

// Indexes 档案集合索引
func (p *Profile) Indexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "role", Value: 1}},
			Options: options.Index().SetName("idx_role").SetUnique(true),
		},
	}
}
