package services

import (
	"context"

	"github.com/safety-storefront/app/models"
	"github.com/safety-storefront/internal/bridge"
	"github.com/safety-storefront/internal/search"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Catalog snapshot của một lần load: record gốc và dạng chuẩn đã bridge
type Catalog struct {
	ProductRecords  []models.ProductRecord
	CategoryRecords []models.CategoryRecord
	Products        []models.Product
	Categories      []models.Category
}

// CatalogService phía đọc của storefront. Mỗi lời gọi load snapshot riêng từ store,
// không giữ state giữa các request.
type CatalogService struct {
	store  CatalogStore
	logger *zap.Logger
}

func NewCatalogService(store CatalogStore, logger *zap.Logger) *CatalogService {
	return &CatalogService{store: store, logger: logger}
}

// LoadRecords lấy đồng thời products và categories; lỗi một bên thì cả hai thất bại
func (cs *CatalogService) LoadRecords(ctx context.Context) ([]models.ProductRecord, []models.CategoryRecord, error) {
	var (
		products   []models.ProductRecord
		categories []models.CategoryRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = cs.store.ProductRecords(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = cs.store.CategoryRecords(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return products, categories, nil
}

// LoadCatalog snapshot đầy đủ; lỗi backend được log và trả về catalog rỗng
func (cs *CatalogService) LoadCatalog(ctx context.Context) *Catalog {
	productRecords, categoryRecords, err := cs.LoadRecords(ctx)
	if err != nil {
		cs.logger.Error("Lỗi load catalog", zap.Error(err))
		return &Catalog{
			ProductRecords:  []models.ProductRecord{},
			CategoryRecords: []models.CategoryRecord{},
			Products:        []models.Product{},
			Categories:      []models.Category{},
		}
	}

	return &Catalog{
		ProductRecords:  productRecords,
		CategoryRecords: categoryRecords,
		Products:        bridge.MapProducts(productRecords),
		Categories:      bridge.MapCategories(categoryRecords, productRecords),
	}
}

// LoadProducts toàn bộ sản phẩm dạng chuẩn
func (cs *CatalogService) LoadProducts(ctx context.Context) []models.Product {
	records, err := cs.store.ProductRecords(ctx)
	if err != nil {
		cs.logger.Error("Lỗi load products", zap.Error(err))
		return []models.Product{}
	}
	return bridge.MapProducts(records)
}

// LoadCategories danh mục kèm productCount đếm lại từ record sản phẩm
func (cs *CatalogService) LoadCategories(ctx context.Context) []models.Category {
	return cs.LoadCatalog(ctx).Categories
}

// GetProductByID trả về (zero, false) nếu không có
func (cs *CatalogService) GetProductByID(ctx context.Context, id int) (models.Product, bool) {
	rec, ok := cs.FindProductRecord(ctx, id)
	if !ok {
		return models.Product{}, false
	}
	return bridge.MapRecordToProduct(rec), true
}

// FindProductRecord record gốc của id đã bridge (cần key thật để ghi lượt xem)
func (cs *CatalogService) FindProductRecord(ctx context.Context, id int) (models.ProductRecord, bool) {
	records, err := cs.store.ProductRecords(ctx)
	if err != nil {
		cs.logger.Error("Lỗi load products", zap.Error(err), zap.Int("id", id))
		return models.ProductRecord{}, false
	}
	return bridge.FindProductByID(id, records)
}

// GetCategoryByID danh mục kèm productCount
func (cs *CatalogService) GetCategoryByID(ctx context.Context, id int) (models.Category, bool) {
	return cs.LoadCatalog(ctx).CategoryByID(id)
}

// CategoryByID tra danh mục trong snapshot
func (c *Catalog) CategoryByID(id int) (models.Category, bool) {
	for _, category := range c.Categories {
		if category.ID == id {
			return category, true
		}
	}
	return models.Category{}, false
}

// ProductsInCategory sản phẩm thuộc danh mục, cùng snapshot với productCount
func (c *Catalog) ProductsInCategory(categoryID int) []models.Product {
	return bridge.MapProducts(bridge.FindProductsByCategoryID(categoryID, c.CategoryRecords, c.ProductRecords))
}

// GetProductsByCategoryID sản phẩm thuộc danh mục; danh mục không tồn tại → slice rỗng
func (cs *CatalogService) GetProductsByCategoryID(ctx context.Context, categoryID int) []models.Product {
	productRecords, categoryRecords, err := cs.LoadRecords(ctx)
	if err != nil {
		cs.logger.Error("Lỗi load catalog", zap.Error(err), zap.Int("category_id", categoryID))
		return []models.Product{}
	}
	return bridge.MapProducts(bridge.FindProductsByCategoryID(categoryID, categoryRecords, productRecords))
}

// SearchProducts tìm kiếm không dấu trên snapshot hiện tại
func (cs *CatalogService) SearchProducts(ctx context.Context, query string) []models.Product {
	catalog := cs.LoadCatalog(ctx)
	return search.SearchProducts(query, catalog.Products, catalog.Categories)
}

// Suggest gợi ý tên gần đúng khi tìm kiếm không ra kết quả
func (cs *CatalogService) Suggest(ctx context.Context, query string, limit int) []search.Suggestion {
	catalog := cs.LoadCatalog(ctx)
	return search.Suggest(query, catalog.Products, catalog.Categories, limit)
}
