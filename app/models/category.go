package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category là dạng chuẩn trả về cho tầng hiển thị
type Category struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Image        string `json:"image"`
	ProductCount int    `json:"productCount"` // luôn đếm lại từ record sản phẩm
}

// CategoryRecord record danh mục gốc đã hợp nhất, chưa bridge id
type CategoryRecord struct {
	Key         RecordKey
	Name        string
	Description string
	Image       string
}

// LegacyCategory danh mục trong bundle categories.json
type LegacyCategory struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// Record nâng cấp record JSON cũ
func (c LegacyCategory) Record() CategoryRecord {
	return CategoryRecord{
		Key:         NumericKey(c.ID),
		Name:        c.Name,
		Description: c.Description,
		Image:       c.Thumbnail,
	}
}

// DocumentCategory danh mục trong collection "categories"
type DocumentCategory struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Thumbnail   string             `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Key key chuỗi của document
func (c DocumentCategory) Key() RecordKey {
	if c.ID.IsZero() {
		return RecordKey{}
	}
	return DocumentKey(c.ID.Hex())
}

// Record nâng cấp document lên dạng hợp nhất
func (c DocumentCategory) Record() CategoryRecord {
	return CategoryRecord{
		Key:         c.Key(),
		Name:        c.Name,
		Description: c.Description,
		Image:       c.Thumbnail,
	}
}

// CategoryInput dữ liệu admin gửi lên khi tạo/sửa danh mục
type CategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
}

// CatalogBundle toàn bộ dữ liệu JSON cũ: products.json + categories.json
type CatalogBundle struct {
	Products   []LegacyProduct  `json:"products"`
	Categories []LegacyCategory `json:"categories"`
}
