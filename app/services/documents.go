package services

import (
	"strings"
	"time"

	"github.com/safety-storefront/app/models"
)

// ProductDocument dựng document từ dữ liệu admin gửi lên
func ProductDocument(input models.ProductInput) *models.DocumentProduct {
	quantity := input.Quantity
	doc := &models.DocumentProduct{
		CategoryID:  input.CategoryKey,
		ProductCode: strings.TrimSpace(input.ProductCode),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		Quantity:    &quantity,
		Images:      imageRefs(input.Images),
		Tags:        cleanTags(input.Tags),
	}
	if len(doc.Images) > 0 {
		doc.Image = doc.Images[0].URL
	}
	return doc
}

// CategoryDocument dựng document danh mục từ dữ liệu admin
func CategoryDocument(input models.CategoryInput) *models.DocumentCategory {
	return &models.DocumentCategory{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Thumbnail:   input.Thumbnail,
	}
}

// LegacyProductDocument chuyển sản phẩm bundle cũ sang document, category_id là key mới
func LegacyProductDocument(p models.LegacyProduct, categoryKey string) *models.DocumentProduct {
	quantity, views := p.Quantity, p.ViewsCount
	doc := &models.DocumentProduct{
		CategoryID:  categoryKey,
		ProductCode: p.ProductCode,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    &quantity,
		ViewsCount:  &views,
		Images:      p.Images,
		Tags:        p.Tags,
		CreatedAt:   parseTimestamp(p.CreatedAt),
		UpdatedAt:   parseTimestamp(p.UpdatedAt),
	}
	if len(p.Images) > 0 {
		doc.Image = p.Images[0].URL
	}
	return doc
}

// LegacyCategoryDocument chuyển danh mục bundle cũ sang document
func LegacyCategoryDocument(c models.LegacyCategory) *models.DocumentCategory {
	return &models.DocumentCategory{
		Name:        c.Name,
		Description: c.Description,
		Thumbnail:   c.Thumbnail,
		CreatedAt:   parseTimestamp(c.CreatedAt),
		UpdatedAt:   parseTimestamp(c.UpdatedAt),
	}
}

func imageRefs(urls []string) []models.ImageRef {
	refs := make([]models.ImageRef, 0, len(urls))
	for _, url := range urls {
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		refs = append(refs, models.ImageRef{ID: len(refs) + 1, URL: url})
	}
	return refs
}

// cleanTags bỏ tag rỗng và tag trùng (giữ thứ tự)
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// parseTimestamp timestamp trong bundle ("2024-01-15T08:00:00Z" hoặc "2024-01-15 08:00:00"); lỗi → zero
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
