package services

import (
	"context"

	"github.com/safety-storefront/app/models"
)

// CatalogStore nguồn đọc record catalog (JSON bundle hoặc document store)
type CatalogStore interface {
	ProductRecords(ctx context.Context) ([]models.ProductRecord, error)
	CategoryRecords(ctx context.Context) ([]models.CategoryRecord, error)
}

// CatalogWriter store có thể ghi, dùng cho admin. Key là chuỗi hex của document.
type CatalogWriter interface {
	CatalogStore

	GetProduct(ctx context.Context, key string) (*models.DocumentProduct, error)
	InsertProduct(ctx context.Context, p *models.DocumentProduct) (string, error)
	UpdateProduct(ctx context.Context, key string, p *models.DocumentProduct) error
	DeleteProduct(ctx context.Context, key string) error

	GetCategory(ctx context.Context, key string) (*models.DocumentCategory, error)
	InsertCategory(ctx context.Context, c *models.DocumentCategory) (string, error)
	UpdateCategory(ctx context.Context, key string, c *models.DocumentCategory) error
	DeleteCategory(ctx context.Context, key string) error

	CountProducts(ctx context.Context) (int64, error)
	CountCategories(ctx context.Context) (int64, error)
	CountProductsInCategory(ctx context.Context, categoryKey string) (int64, error)
	IncrementViews(ctx context.Context, deltas map[string]int64) (int64, error)
	Clear(ctx context.Context) error
}
