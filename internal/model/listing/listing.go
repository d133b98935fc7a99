package listing

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Listing 二手车车源
// 浏览量和收藏量直接内嵌在车源文档中，通过原子 $inc 更新
type Listing struct {
	ID         string    `bson:"_id" json:"id"`
	Make       string    `bson:"make" json:"make"`
	Model      string    `bson:"model" json:"model"`
	Year       int       `bson:"year" json:"year"`
	Price      float64   `bson:"price" json:"price"`
	SellerID   string    `bson:"seller_id" json:"seller_id"`
	AgentID    string    `bson:"agent_id,omitempty" json:"agent_id,omitempty"`
	Views      int64     `bson:"views" json:"views"`
	Shortlists int64     `bson:"shortlists" json:"shortlists"`
	Images     []Image   `bson:"images,omitempty" json:"images,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}

// OwnerID 修改/删除时用于归属校验的身份：有经纪人时为经纪人，否则为卖家
func (l *Listing) OwnerID() string {
	if l.AgentID != "" {
		return l.AgentID
	}
	return l.SellerID
}

// FindImage 按ID查找图片
func (l *Listing) FindImage(imageID string) (Image, bool) {
	for _, img := range l.Images {
		if img.ID == imageID {
			return img, true
		}
	}
	return Image{}, false
}

// Image 车源图片
type Image struct {
	ID          string    `bson:"id" json:"id"`
	Key         string    `bson:"key" json:"key"` // 存储路径
	URL         string    `bson:"url" json:"url"`
	ContentType string    `bson:"content_type" json:"content_type"`
	UploadedAt  time.Time `bson:"uploaded_at" json:"uploaded_at"`
}

// Collection 返回集合名称
func (l *Listing) Collection() string {
	return "used_car_listings"
}

// Indexes 车源集合索引
func (l *Listing) Indexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "seller_id", Value: 1}, bson.E{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_seller_created"),
		},
		{
			Keys:    bson.D{bson.E{Key: "agent_id", Value: 1}, bson.E{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_agent_created"),
		},
		{
			Keys:    bson.D{bson.E{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_created_at"),
		},
	}
}

// Counter 可原子递增的计数字段
type Counter string

const (
	CounterViews      Counter = "views"
	CounterShortlists Counter = "shortlists"
)

// Update 车源可更新字段（nil 表示不更新）
type Update struct {
	Make     *string
	Model    *string
	Year     *int
	Price    *float64
	SellerID *string
}

// IsEmpty 是否没有任何待更新字段
func (u Update) IsEmpty() bool {
	return u.Make == nil && u.Model == nil && u.Year == nil && u.Price == nil && u.SellerID == nil
}

// Filter 列表筛选（字段为空表示不限制）
type Filter struct {
	AgentID  string
	SellerID string
}

// Query 搜索条件
// Text 对 make/model/year 做不区分大小写的子串匹配；IDs 非 nil 时限定在这些车源内
type Query struct {
	Text string
	IDs  []string
}

// Metrics 单个车源的计数
type Metrics struct {
	ListingID  string `json:"listing_id"`
	Make       string `json:"make"`
	Model      string `json:"model"`
	Year       int    `json:"year"`
	Views      int64  `json:"views"`
	Shortlists int64  `json:"shortlists"`
}

// MetricsOf 提取车源计数
func MetricsOf(l *Listing) Metrics {
	return Metrics{
		ListingID:  l.ID,
		Make:       l.Make,
		Model:      l.Model,
		Year:       l.Year,
		Views:      l.Views,
		Shortlists: l.Shortlists,
	}
}
