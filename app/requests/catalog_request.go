package requests

import "github.com/safety-storefront/app/models"

// SearchQuery query tìm kiếm sản phẩm
type SearchQuery struct {
	Search string `form:"search"` // Từ khóa, rỗng = tất cả
}

// SuggestQuery query gợi ý/instant search
type SuggestQuery struct {
	Q     string `form:"q" binding:"required"` // Từ khóa
	Limit int    `form:"limit"`                // Số kết quả tối đa
}

// SeedQuery tùy chọn seed
type SeedQuery struct {
	DryRun  bool `form:"dry_run"` // Chỉ kiểm tra, không ghi
	Replace bool `form:"replace"` // Xóa catalog cũ trước khi seed
}

// SeedRequest bundle JSON cũ gửi lên để seed; rỗng thì dùng file cấu hình
type SeedRequest struct {
	Products   []models.LegacyProduct  `json:"products"`
	Categories []models.LegacyCategory `json:"categories"`
}

// Bundle chuyển request thành CatalogBundle
func (r SeedRequest) Bundle() *models.CatalogBundle {
	return &models.CatalogBundle{Products: r.Products, Categories: r.Categories}
}

// Empty request không kèm dữ liệu
func (r SeedRequest) Empty() bool {
	return len(r.Products) == 0 && len(r.Categories) == 0
}

// ProductRequest tạo/sửa sản phẩm
type ProductRequest = models.ProductInput

// CategoryRequest tạo/sửa danh mục
type CategoryRequest = models.CategoryInput
