package search

import (
	"strings"

	"github.com/safety-storefront/app/models"
	"github.com/safety-storefront/internal/normalizer"
)

// SearchProducts tìm sản phẩm không phân biệt dấu/hoa thường.
//
// Khớp trực tiếp: tên, mô tả hoặc tag chứa query (substring sau chuẩn hóa).
// Khớp qua danh mục: tên danh mục chứa query → lấy mọi sản phẩm thuộc danh mục đó.
// Kết quả: khớp trực tiếp trước (giữ thứ tự gốc), sau đó sản phẩm từ danh mục chưa có,
// khử trùng theo id. Query rỗng/toàn khoảng trắng trả về toàn bộ sản phẩm.
func SearchProducts(query string, products []models.Product, categories []models.Category) []models.Product {
	if strings.TrimSpace(query) == "" {
		all := make([]models.Product, len(products))
		copy(all, products)
		return all
	}

	q := normalizer.NormalizeForSearch(query)

	results := make([]models.Product, 0)
	seen := make(map[int]struct{})

	for _, p := range products {
		if productMatches(p, q) {
			if _, dup := seen[p.ID]; dup {
				continue
			}
			seen[p.ID] = struct{}{}
			results = append(results, p)
		}
	}

	matchedCategories := make(map[int]struct{})
	for _, c := range MatchCategories(q, categories) {
		matchedCategories[c.ID] = struct{}{}
	}
	if len(matchedCategories) == 0 {
		return results
	}

	for _, p := range products {
		if _, ok := matchedCategories[p.CategoryID]; !ok {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		results = append(results, p)
	}
	return results
}

// MatchCategories danh mục có tên chứa query (đã chuẩn hóa)
func MatchCategories(query string, categories []models.Category) []models.Category {
	matched := make([]models.Category, 0)
	for _, c := range categories {
		if normalizer.Contains(c.Name, query) {
			matched = append(matched, c)
		}
	}
	return matched
}

func productMatches(p models.Product, normalizedQuery string) bool {
	if strings.Contains(normalizer.NormalizeForSearch(p.Name), normalizedQuery) ||
		strings.Contains(normalizer.NormalizeForSearch(p.Description), normalizedQuery) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(normalizer.NormalizeForSearch(tag), normalizedQuery) {
			return true
		}
	}
	return false
}
