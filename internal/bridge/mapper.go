package bridge

import (
	"math"

	"github.com/safety-storefront/app/models"
)

const (
	baseRating    = 4.0
	maxRating     = 5.0
	reviewPerView = 0.08
)

// MapRecordToProduct dựng Product chuẩn từ record gốc
func MapRecordToProduct(rec models.ProductRecord) models.Product {
	rating, reviews := deriveMetrics(rec.Metrics)
	return models.Product{
		ID:          KeyID(rec.Key),
		Name:        rec.Name,
		Description: rec.Description,
		Price:       rec.Price,
		Image:       rec.Image,
		Images:      cloneStrings(rec.Images),
		CategoryID:  KeyID(rec.CategoryKey),
		Stock:       rec.Stock,
		Rating:      rating,
		Reviews:     reviews,
		Tags:        cloneStrings(rec.Tags),
	}
}

// deriveMetrics rating/reviews theo nguồn:
// views → rating = min(5, 4 + (v mod 10)/10) làm tròn 1 chữ số, reviews = max(0, floor(v*0.08));
// không có số liệu → 0, 0.
func deriveMetrics(m models.RecordMetrics) (float64, int) {
	switch m.Kind {
	case models.MetricsExplicit:
		return m.Rating, m.Reviews
	case models.MetricsViews:
		rating := math.Min(maxRating, baseRating+float64(m.ViewsCount%10)/10)
		rating = math.Round(rating*10) / 10
		reviews := int(math.Floor(float64(m.ViewsCount) * reviewPerView))
		if reviews < 0 {
			reviews = 0
		}
		return rating, reviews
	default:
		return 0, 0
	}
}

// MapRecordToCategory dựng Category chuẩn; productCount do caller đếm
func MapRecordToCategory(rec models.CategoryRecord, productCount int) models.Category {
	return models.Category{
		ID:           KeyID(rec.Key),
		Name:         rec.Name,
		Description:  rec.Description,
		Image:        rec.Image,
		ProductCount: productCount,
	}
}

// CountProductsByCategory đếm sản phẩm theo key category gốc (chưa bridge)
func CountProductsByCategory(products []models.ProductRecord) map[models.RecordKey]int {
	counts := make(map[models.RecordKey]int)
	for _, p := range products {
		counts[p.CategoryKey]++
	}
	return counts
}

// MapProducts bridge toàn bộ record sản phẩm, giữ nguyên thứ tự
func MapProducts(records []models.ProductRecord) []models.Product {
	products := make([]models.Product, 0, len(records))
	for _, rec := range records {
		products = append(products, MapRecordToProduct(rec))
	}
	return products
}

// MapCategories bridge danh mục, productCount tra theo key gốc của chính category
func MapCategories(categories []models.CategoryRecord, products []models.ProductRecord) []models.Category {
	counts := CountProductsByCategory(products)
	out := make([]models.Category, 0, len(categories))
	for _, rec := range categories {
		out = append(out, MapRecordToCategory(rec, counts[rec.Key]))
	}
	return out
}

// FindProductByID quét tuần tự, bridge từng key, trả record đầu tiên khớp. O(n), không index.
func FindProductByID(id int, products []models.ProductRecord) (models.ProductRecord, bool) {
	for _, p := range products {
		if KeyID(p.Key) == id {
			return p, true
		}
	}
	return models.ProductRecord{}, false
}

// FindCategoryByID quét tuần tự danh mục. O(n).
func FindCategoryByID(id int, categories []models.CategoryRecord) (models.CategoryRecord, bool) {
	for _, c := range categories {
		if KeyID(c.Key) == id {
			return c, true
		}
	}
	return models.CategoryRecord{}, false
}

// FindProductsByCategoryID tìm key gốc của category từ id (O(n) theo số danh mục),
// rồi lọc sản phẩm theo key gốc (O(m) theo số sản phẩm). Không thấy category → slice rỗng.
func FindProductsByCategoryID(categoryID int, categories []models.CategoryRecord, products []models.ProductRecord) []models.ProductRecord {
	matched := make([]models.ProductRecord, 0)

	category, ok := FindCategoryByID(categoryID, categories)
	if !ok {
		return matched
	}
	for _, p := range products {
		if p.CategoryKey == category.Key {
			matched = append(matched, p)
		}
	}
	return matched
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
