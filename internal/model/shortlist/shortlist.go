package shortlist

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Shortlist 买家收藏单，每个买家一个文档，首次收藏时 upsert 创建
// Listings 是集合语义（$addToSet），不允许重复
type Shortlist struct {
	ID       string   `bson:"_id" json:"id"`
	UserID   string   `bson:"user_id" json:"user_id"`
	Listings []string `bson:"shortlist" json:"shortlist"`
}

// Contains 收藏单中是否包含该车源
func (s *Shortlist) Contains(listingID string) bool {
	for _, id := range s.Listings {
		if id == listingID {
			return true
		}
	}
	return false
}

// Collection 返回集合名称
func (s *Shortlist) Collection() string {
	return "buyer_shortlists"
}

// Indexes 收藏单集合索引
func (s *Shortlist) Indexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_user_id").SetUnique(true),
		},
		{
			Keys:    bson.D{bson.E{Key: "shortlist", Value: 1}},
			Options: options.Index().SetName("idx_shortlist"),
		},
	}
}
