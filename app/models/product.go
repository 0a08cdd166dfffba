package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product là dạng chuẩn trả về cho tầng hiển thị
type Product struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"` // 0 = liên hệ
	Image       string   `json:"image"`
	Images      []string `json:"images,omitempty"`
	CategoryID  int      `json:"categoryId"`
	Stock       int      `json:"stock"` // 0 = hết hàng
	Rating      float64  `json:"rating"`
	Reviews     int      `json:"reviews"`
	Tags        []string `json:"tags,omitempty"`
}

// Gallery danh sách ảnh cho carousel; thiếu images thì dùng ảnh chính
func (p Product) Gallery() []string {
	if len(p.Images) > 0 {
		return p.Images
	}
	if p.Image == "" {
		return []string{}
	}
	return []string{p.Image}
}

// PriceOnRequest giá = 0 nghĩa là liên hệ
func (p Product) PriceOnRequest() bool { return p.Price == 0 }

// InStock còn hàng hay không
func (p Product) InStock() bool { return p.Stock > 0 }

// MetricsKind nguồn của rating/reviews
type MetricsKind uint8

const (
	MetricsNone     MetricsKind = iota // record mới, không có số liệu
	MetricsViews                       // ước lượng từ views_count
	MetricsExplicit                    // record lưu sẵn rating/reviews
)

// RecordMetrics số liệu hiển thị của record, gắn tag theo nguồn
type RecordMetrics struct {
	Kind       MetricsKind
	ViewsCount int
	Rating     float64
	Reviews    int
}

// ViewsMetrics metrics tính từ lượt xem
func ViewsMetrics(views int) RecordMetrics {
	return RecordMetrics{Kind: MetricsViews, ViewsCount: views}
}

// ExplicitMetrics metrics lưu sẵn trong record
func ExplicitMetrics(rating float64, reviews int) RecordMetrics {
	return RecordMetrics{Kind: MetricsExplicit, Rating: rating, Reviews: reviews}
}

// ProductRecord record sản phẩm gốc đã hợp nhất từ các nguồn, chưa bridge id
type ProductRecord struct {
	Key         RecordKey
	CategoryKey RecordKey
	ProductCode string
	Name        string
	Description string
	Price       float64
	Image       string
	Images      []string
	Stock       int
	Tags        []string
	Metrics     RecordMetrics
}

// ImageRef ảnh sản phẩm trong bundle JSON và document store
type ImageRef struct {
	ID  int    `bson:"id" json:"id"`
	URL string `bson:"url" json:"url"`
}

// LegacyProduct sản phẩm trong bundle products.json (id số)
type LegacyProduct struct {
	ID          int        `json:"id"`
	CategoryID  int        `json:"category_id"`
	ProductCode string     `json:"product_code"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Quantity    int        `json:"quantity"`
	Price       float64    `json:"price"`
	ViewsCount  int        `json:"views_count"`
	Images      []ImageRef `json:"images"`
	Tags        []string   `json:"tags"`
	CreatedAt   string     `json:"created_at"`
	UpdatedAt   string     `json:"updated_at"`
}

// Record nâng cấp record JSON cũ lên dạng hợp nhất
func (p LegacyProduct) Record() ProductRecord {
	images := imageURLs(p.Images)
	rec := ProductRecord{
		Key:         NumericKey(p.ID),
		CategoryKey: NumericKey(p.CategoryID),
		ProductCode: p.ProductCode,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Images:      images,
		Stock:       p.Quantity,
		Tags:        p.Tags,
		Metrics:     ViewsMetrics(p.ViewsCount),
	}
	if len(images) > 0 {
		rec.Image = images[0]
	}
	return rec
}

// DocumentProduct sản phẩm trong collection "products" của document store.
// Các field con trỏ phân biệt "không có" với giá trị 0.
type DocumentProduct struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CategoryID  string             `bson:"category_id" json:"category_id"` // key của category
	ProductCode string             `bson:"product_code,omitempty" json:"product_code,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Quantity    *int               `bson:"quantity,omitempty" json:"quantity,omitempty"`
	InStock     *bool              `bson:"in_stock,omitempty" json:"in_stock,omitempty"`
	ViewsCount  *int               `bson:"views_count,omitempty" json:"views_count,omitempty"`
	Rating      *float64           `bson:"rating,omitempty" json:"rating,omitempty"`
	Reviews     *int               `bson:"reviews,omitempty" json:"reviews,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Images      []ImageRef         `bson:"images,omitempty" json:"images,omitempty"`
	Tags        []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Key key chuỗi của document
func (p DocumentProduct) Key() RecordKey {
	if p.ID.IsZero() {
		return RecordKey{}
	}
	return DocumentKey(p.ID.Hex())
}

// Record nâng cấp document lên dạng hợp nhất: in_stock → 1/0, chọn nguồn metrics
func (p DocumentProduct) Record() ProductRecord {
	rec := ProductRecord{
		Key:         p.Key(),
		CategoryKey: DocumentKey(p.CategoryID),
		ProductCode: p.ProductCode,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		Images:      imageURLs(p.Images),
		Tags:        p.Tags,
	}
	if rec.Image == "" && len(rec.Images) > 0 {
		rec.Image = rec.Images[0]
	}

	switch {
	case p.Quantity != nil:
		rec.Stock = *p.Quantity
	case p.InStock != nil && *p.InStock:
		rec.Stock = 1
	}

	switch {
	case p.Rating != nil || p.Reviews != nil:
		m := ExplicitMetrics(0, 0)
		if p.Rating != nil {
			m.Rating = *p.Rating
		}
		if p.Reviews != nil {
			m.Reviews = *p.Reviews
		}
		rec.Metrics = m
	case p.ViewsCount != nil:
		rec.Metrics = ViewsMetrics(*p.ViewsCount)
	}
	return rec
}

// ProductInput dữ liệu admin gửi lên khi tạo/sửa sản phẩm
type ProductInput struct {
	CategoryKey string   `json:"category_id" binding:"required"`
	ProductCode string   `json:"product_code"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Quantity    int      `json:"quantity"`
	Price       float64  `json:"price"`
	Images      []string `json:"images"`
	Tags        []string `json:"tags"`
}

func imageURLs(refs []ImageRef) []string {
	if len(refs) == 0 {
		return nil
	}
	urls := make([]string, 0, len(refs))
	for _, img := range refs {
		if img.URL != "" {
			urls = append(urls, img.URL)
		}
	}
	return urls
}
