package responses

import (
	"github.com/safety-storefront/app/models"
	"github.com/safety-storefront/helpers/utils"
)

// ProductView sản phẩm trả về storefront
type ProductView struct {
	models.Product
	PriceDisplay string   `json:"price_display"` // "250.000đ" hoặc "Liên hệ"
	Gallery      []string `json:"gallery"`       // ảnh carousel, tối thiểu là ảnh chính
	Available    bool     `json:"in_stock"`
}

// NewProductView thêm các field hiển thị
func NewProductView(p models.Product) ProductView {
	return ProductView{
		Product:      p,
		PriceDisplay: utils.FormatVND(p.Price),
		Gallery:      p.Gallery(),
		Available:    p.InStock(),
	}
}

// NewProductViews danh sách ProductView, luôn khác nil
func NewProductViews(products []models.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, NewProductView(p))
	}
	return views
}

// ProductListResponse danh sách sản phẩm
type ProductListResponse struct {
	Products []ProductView `json:"products"`
	Total    int           `json:"total"`
	Query    string        `json:"query,omitempty"`
}

// ProductDetailResponse chi tiết sản phẩm kèm danh mục
type ProductDetailResponse struct {
	Product  ProductView      `json:"product"`
	Category *models.Category `json:"category,omitempty"`
}

// CategoryListResponse danh sách danh mục
type CategoryListResponse struct {
	Categories []models.Category `json:"categories"`
	Total      int               `json:"total"`
}

// CategoryDetailResponse danh mục và sản phẩm của nó
type CategoryDetailResponse struct {
	Category models.Category `json:"category"`
	Products []ProductView   `json:"products"`
}

// SearchResponse kết quả tìm kiếm instant
type SearchResponse struct {
	Query    string        `json:"query"`
	Source   string        `json:"source"` // meilisearch | memory
	Products []ProductView `json:"products"`
	Total    int           `json:"total"`
}

// SuggestResponse gợi ý "có phải bạn muốn tìm"
type SuggestResponse struct {
	Query       string      `json:"query"`
	Suggestions interface{} `json:"suggestions"`
}

// ViewRecordedResponse kết quả ghi lượt xem
type ViewRecordedResponse struct {
	ProductID int  `json:"product_id"`
	Counted   bool `json:"counted"`
}
