package review

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// 评分范围（闭区间）
const (
	MinRating = 1.0
	MaxRating = 5.0
)

// Review 买家/卖家对经纪人的评价
// 创建后只能由原评价人编辑
type Review struct {
	ID           string     `bson:"_id" json:"id"`
	AgentID      string     `bson:"agent_id" json:"agent_id"`
	ReviewerID   string     `bson:"reviewer_id" json:"reviewer_id"`
	ReviewerRole string     `bson:"reviewer_role" json:"reviewer_role"` // buyer / seller
	ListingID    string     `bson:"listing_id" json:"listing_id,omitempty"`
	Rating       float64    `bson:"rating" json:"rating"`
	Review       string     `bson:"review" json:"review"`
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
	EditedAt     *time.Time `bson:"edited_at,omitempty" json:"edited_at,omitempty"`
}

// ValidRating 评分是否在 [1,5] 内
func ValidRating(r float64) bool {
	return r >= MinRating && r <= MaxRating
}

// Key 评价唯一性键：同一评价人对同一经纪人、同一车源只能评价一次
type Key struct {
	AgentID    string
	ListingID  string
	ReviewerID string
}

// Collection 返回集合名称
func (r *Review) Collection() string {
	return "reviews"
}

// Indexes 评价集合索引
func (r *Review) Indexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys: bson.D{
				bson.E{Key: "agent_id", Value: 1},
				bson.E{Key: "listing_id", Value: 1},
				bson.E{Key: "reviewer_id", Value: 1},
			},
			Options: options.Index().SetName("uniq_agent_listing_reviewer").SetUnique(true),
		},
		{
			Keys:    bson.D{bson.E{Key: "agent_id", Value: 1}, bson.E{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_agent_created"),
		},
	}
}
