package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/safety-storefront/app/models"
	"github.com/safety-storefront/internal/bridge"
	"go.uber.org/zap"
)

// ViewDrainer nguồn lượt xem chờ gom vào catalog
type ViewDrainer interface {
	Drain(ctx context.Context) (*ViewBatch, error)
	Commit(ctx context.Context, batch *ViewBatch) error
	Restore(ctx context.Context, batch *ViewBatch) error
	Pending(ctx context.Context) (int64, error)
}

// SearchIndexer index tìm kiếm ngoài (Meilisearch)
type SearchIndexer interface {
	Sync(records []models.ProductRecord, products []models.Product, categories []models.Category) (int, error)
}

// AdminService service quản lý catalog cho trang admin
type AdminService struct {
	catalog   *CatalogService
	writer    CatalogWriter // nil khi catalog chỉ đọc (bundle JSON)
	images    ImageStorage
	views     ViewDrainer
	index     SearchIndexer
	logger    *zap.Logger
	startedAt time.Time
}

// AdminDeps các thành phần tùy chọn; thiếu thì chức năng tương ứng bị tắt
type AdminDeps struct {
	Writer CatalogWriter
	Images ImageStorage
	Views  ViewDrainer
	Index  SearchIndexer
}

// CollisionReport nhiều key cùng bridge ra một id
type CollisionReport struct {
	Kind string   `json:"kind"` // product | category
	ID   int      `json:"id"`
	Keys []string `json:"keys"`
}

// CatalogValidation kết quả kiểm tra catalog
type CatalogValidation struct {
	Passed     bool              `json:"passed"`
	Products   int               `json:"products"`
	Categories int               `json:"categories"`
	Collisions []CollisionReport `json:"collisions"`
	Warnings   []string          `json:"warnings"`
}

// SeedOptions tùy chọn seed từ bundle JSON
type SeedOptions struct {
	DryRun  bool
	Replace bool
}

// SeedResult kết quả seed catalog
type SeedResult struct {
	DryRun             bool     `json:"dry_run"`
	CategoriesInserted int      `json:"categories_inserted"`
	ProductsInserted   int      `json:"products_inserted"`
	ProductsSkipped    int      `json:"products_skipped"`
	Warnings           []string `json:"warnings"`
	ProcessingTimeMs   int64    `json:"processing_time_ms"`
}

// FlushResult kết quả gom lượt xem
type FlushResult struct {
	Products int   `json:"products"`
	Views    int64 `json:"views"`
	Updated  int64 `json:"updated"`
}

// CatalogStats thống kê catalog
type CatalogStats struct {
	Products        int                    `json:"products"`
	Categories      int                    `json:"categories"`
	OutOfStock      int                    `json:"out_of_stock"`
	PriceOnRequest  int                    `json:"price_on_request"`
	EmptyCategories int                    `json:"empty_categories"`
	Collisions      int                    `json:"collisions"`
	PendingViews    int64                  `json:"pending_views"`
	ReadOnly        bool                   `json:"read_only"`
	Uptime          string                 `json:"uptime"`
	MemoryUsage     map[string]interface{} `json:"memory_usage"`
}

// ProductEntry sản phẩm kèm key gốc cho admin
type ProductEntry struct {
	Key string `json:"key"`
	models.Product
}

// CategoryEntry danh mục kèm key gốc cho admin
type CategoryEntry struct {
	Key string `json:"key"`
	models.Category
}

func NewAdminService(catalog *CatalogService, deps AdminDeps, logger *zap.Logger) *AdminService {
	return &AdminService{
		catalog:   catalog,
		writer:    deps.Writer,
		images:    deps.Images,
		views:     deps.Views,
		index:     deps.Index,
		logger:    logger,
		startedAt: time.Now(),
	}
}

// ReadOnly catalog không có writer
func (as *AdminService) ReadOnly() bool { return as.writer == nil }

// ValidateCatalog kiểm tra va chạm id, danh mục treo, thiếu tên, giá/tồn kho âm
func (as *AdminService) ValidateCatalog(ctx context.Context) (*CatalogValidation, error) {
	products, categories, err := as.catalog.LoadRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("lỗi load catalog: %w", err)
	}
	return ValidateRecords(products, categories), nil
}

// ValidateRecords kiểm tra snapshot record đã load
func ValidateRecords(products []models.ProductRecord, categories []models.CategoryRecord) *CatalogValidation {
	result := &CatalogValidation{
		Products:   len(products),
		Categories: len(categories),
		Collisions: make([]CollisionReport, 0),
		Warnings:   make([]string, 0),
	}

	for _, c := range bridge.DetectCollisions(bridge.ProductKeys(products)) {
		result.Collisions = append(result.Collisions, CollisionReport{Kind: "product", ID: c.ID, Keys: c.KeyStrings()})
	}
	for _, c := range bridge.DetectCollisions(bridge.CategoryKeys(categories)) {
		result.Collisions = append(result.Collisions, CollisionReport{Kind: "category", ID: c.ID, Keys: c.KeyStrings()})
	}

	known := make(map[models.RecordKey]struct{}, len(categories))
	for i, c := range categories {
		known[c.Key] = struct{}{}
		if strings.TrimSpace(c.Name) == "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Danh mục %s thiếu tên (index %d)", c.Key, i))
		}
	}

	for i, p := range products {
		if strings.TrimSpace(p.Name) == "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Sản phẩm %s thiếu tên (index %d)", p.Key, i))
		}
		if _, ok := known[p.CategoryKey]; !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Sản phẩm %s trỏ tới danh mục không tồn tại %s", p.Key, p.CategoryKey))
		}
		if p.Price < 0 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Sản phẩm %s có giá âm", p.Key))
		}
		if p.Stock < 0 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Sản phẩm %s có tồn kho âm", p.Key))
		}
	}

	result.Passed = len(result.Collisions) == 0 && len(result.Warnings) == 0
	return result
}

// SeedFromBundle nạp bundle JSON cũ vào document store.
// id danh mục số được ánh xạ sang key mới; sản phẩm trỏ tới danh mục không có trong bundle bị bỏ qua.
func (as *AdminService) SeedFromBundle(ctx context.Context, bundle *models.CatalogBundle, opts SeedOptions) (*SeedResult, error) {
	startTime := time.Now()
	if as.writer == nil && !opts.DryRun {
		return nil, ErrReadOnlyCatalog
	}

	result := &SeedResult{DryRun: opts.DryRun, Warnings: make([]string, 0)}

	if opts.Replace && !opts.DryRun {
		if err := as.writer.Clear(ctx); err != nil {
			return nil, fmt.Errorf("lỗi xóa dữ liệu cũ: %w", err)
		}
	}

	categoryKeys := make(map[int]string, len(bundle.Categories))
	for _, c := range bundle.Categories {
		doc := LegacyCategoryDocument(c)
		key := fmt.Sprintf("dry-run-%d", c.ID)
		if !opts.DryRun {
			var err error
			key, err = as.writer.InsertCategory(ctx, doc)
			if err != nil {
				return nil, fmt.Errorf("lỗi thêm danh mục %q: %w", c.Name, err)
			}
		}
		categoryKeys[c.ID] = key
		result.CategoriesInserted++
	}

	for _, p := range bundle.Products {
		categoryKey, ok := categoryKeys[p.CategoryID]
		if !ok {
			result.ProductsSkipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("Bỏ qua sản phẩm %d (%s): danh mục %d không tồn tại", p.ID, p.Name, p.CategoryID))
			continue
		}
		if !opts.DryRun {
			if _, err := as.writer.InsertProduct(ctx, LegacyProductDocument(p, categoryKey)); err != nil {
				return nil, fmt.Errorf("lỗi thêm sản phẩm %q: %w", p.Name, err)
			}
		}
		result.ProductsInserted++
	}

	result.ProcessingTimeMs = time.Since(startTime).Milliseconds()
	as.logger.Info("Seed catalog hoàn tất",
		zap.Bool("dry_run", opts.DryRun),
		zap.Bool("replace", opts.Replace),
		zap.Int("categories", result.CategoriesInserted),
		zap.Int("products", result.ProductsInserted),
		zap.Int("skipped", result.ProductsSkipped))

	return result, nil
}

// ListProducts sản phẩm kèm key gốc
func (as *AdminService) ListProducts(ctx context.Context) ([]ProductEntry, error) {
	records, _, err := as.catalog.LoadRecords(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]ProductEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, ProductEntry{Key: entryKey(r.Key), Product: bridge.MapRecordToProduct(r)})
	}
	return entries, nil
}

// ListCategories danh mục kèm key gốc và productCount
func (as *AdminService) ListCategories(ctx context.Context) ([]CategoryEntry, error) {
	products, categories, err := as.catalog.LoadRecords(ctx)
	if err != nil {
		return nil, err
	}
	counts := bridge.CountProductsByCategory(products)
	entries := make([]CategoryEntry, 0, len(categories))
	for _, c := range categories {
		entries = append(entries, CategoryEntry{Key: entryKey(c.Key), Category: bridge.MapRecordToCategory(c, counts[c.Key])})
	}
	return entries, nil
}

func (as *AdminService) GetProduct(ctx context.Context, key string) (*models.DocumentProduct, error) {
	if as.writer == nil {
		return nil, ErrReadOnlyCatalog
	}
	return as.writer.GetProduct(ctx, key)
}

func (as *AdminService) CreateProduct(ctx context.Context, input models.ProductInput) (string, error) {
	if as.writer == nil {
		return "", ErrReadOnlyCatalog
	}
	if err := as.checkProductInput(ctx, input); err != nil {
		return "", err
	}

	key, err := as.writer.InsertProduct(ctx, ProductDocument(input))
	if err != nil {
		return "", err
	}
	as.logger.Info("Đã tạo sản phẩm", zap.String("key", key), zap.String("name", input.Name))
	return key, nil
}

func (as *AdminService) UpdateProduct(ctx context.Context, key string, input models.ProductInput) error {
	if as.writer == nil {
		return ErrReadOnlyCatalog
	}
	if err := as.checkProductInput(ctx, input); err != nil {
		return err
	}
	if err := as.writer.UpdateProduct(ctx, key, ProductDocument(input)); err != nil {
		return err
	}
	as.logger.Info("Đã cập nhật sản phẩm", zap.String("key", key))
	return nil
}

// DeleteProduct xóa sản phẩm và ảnh của nó trong image store
func (as *AdminService) DeleteProduct(ctx context.Context, key string) error {
	if as.writer == nil {
		return ErrReadOnlyCatalog
	}

	doc, err := as.writer.GetProduct(ctx, key)
	if err != nil {
		return err
	}
	if err := as.writer.DeleteProduct(ctx, key); err != nil {
		return err
	}

	if as.images != nil {
		urls := make([]string, 0, len(doc.Images)+1)
		urls = append(urls, doc.Image)
		for _, img := range doc.Images {
			urls = append(urls, img.URL)
		}
		as.deleteImages(ctx, urls)
	}

	as.logger.Info("Đã xóa sản phẩm", zap.String("key", key))
	return nil
}

func (as *AdminService) deleteImages(ctx context.Context, urls []string) {
	seen := make(map[string]struct{}, len(urls))
	for _, url := range urls {
		id, ok := ImageIDFromURL(url)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if err := as.images.Delete(ctx, id); err != nil && !errors.Is(err, ErrImageNotFound) {
			as.logger.Warn("Không thể xóa ảnh", zap.Error(err), zap.String("image_id", id))
		}
	}
}

func (as *AdminService) checkProductInput(ctx context.Context, input models.ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: thiếu tên sản phẩm", ErrInvalidInput)
	}
	if input.Price < 0 {
		return fmt.Errorf("%w: giá không được âm", ErrInvalidInput)
	}
	if input.Quantity < 0 {
		return fmt.Errorf("%w: số lượng không được âm", ErrInvalidInput)
	}
	if _, err := as.writer.GetCategory(ctx, input.CategoryKey); err != nil {
		if errors.Is(err, ErrInvalidKey) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

func (as *AdminService) GetCategory(ctx context.Context, key string) (*models.DocumentCategory, error) {
	if as.writer == nil {
		return nil, ErrReadOnlyCatalog
	}
	return as.writer.GetCategory(ctx, key)
}

func (as *AdminService) CreateCategory(ctx context.Context, input models.CategoryInput) (string, error) {
	if as.writer == nil {
		return "", ErrReadOnlyCatalog
	}
	if strings.TrimSpace(input.Name) == "" {
		return "", fmt.Errorf("%w: thiếu tên danh mục", ErrInvalidInput)
	}

	key, err := as.writer.InsertCategory(ctx, CategoryDocument(input))
	if err != nil {
		return "", err
	}
	as.logger.Info("Đã tạo danh mục", zap.String("key", key), zap.String("name", input.Name))
	return key, nil
}

func (as *AdminService) UpdateCategory(ctx context.Context, key string, input models.CategoryInput) error {
	if as.writer == nil {
		return ErrReadOnlyCatalog
	}
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: thiếu tên danh mục", ErrInvalidInput)
	}
	return as.writer.UpdateCategory(ctx, key, CategoryDocument(input))
}

// DeleteCategory từ chối khi danh mục vẫn còn sản phẩm
func (as *AdminService) DeleteCategory(ctx context.Context, key string) error {
	if as.writer == nil {
		return ErrReadOnlyCatalog
	}

	n, err := as.writer.CountProductsInCategory(ctx, key)
	if err != nil {
		return fmt.Errorf("lỗi đếm sản phẩm trong danh mục: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w (%d sản phẩm)", ErrCategoryInUse, n)
	}
	if err := as.writer.DeleteCategory(ctx, key); err != nil {
		return err
	}
	as.logger.Info("Đã xóa danh mục", zap.String("key", key))
	return nil
}

// UploadImage lưu ảnh vào image store
func (as *AdminService) UploadImage(ctx context.Context, dir, filename string, file io.Reader) (*StoredImage, error) {
	if as.images == nil {
		return nil, ErrReadOnlyCatalog
	}
	return as.images.Upload(ctx, dir, filename, file)
}

// GetStats thống kê trên snapshot catalog hiện tại
func (as *AdminService) GetStats(ctx context.Context) (*CatalogStats, error) {
	products, categories, err := as.catalog.LoadRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("lỗi load catalog: %w", err)
	}

	stats := &CatalogStats{
		Products:   len(products),
		Categories: len(categories),
		ReadOnly:   as.ReadOnly(),
		Uptime:     time.Since(as.startedAt).Round(time.Second).String(),
	}

	for _, p := range products {
		if p.Stock <= 0 {
			stats.OutOfStock++
		}
		if p.Price == 0 {
			stats.PriceOnRequest++
		}
	}

	counts := bridge.CountProductsByCategory(products)
	for _, c := range categories {
		if counts[c.Key] == 0 {
			stats.EmptyCategories++
		}
	}

	stats.Collisions = len(bridge.DetectCollisions(bridge.ProductKeys(products))) +
		len(bridge.DetectCollisions(bridge.CategoryKeys(categories)))

	if as.views != nil {
		pending, err := as.views.Pending(ctx)
		if err != nil {
			as.logger.Warn("Không thể lấy số lượt xem đang chờ", zap.Error(err))
		}
		stats.PendingViews = pending
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	stats.MemoryUsage = map[string]interface{}{
		"alloc_mb":       bToMb(m.Alloc),
		"total_alloc_mb": bToMb(m.TotalAlloc),
		"sys_mb":         bToMb(m.Sys),
		"num_gc":         m.NumGC,
	}

	return stats, nil
}

// FlushViews gom lượt xem từ Redis vào views_count của document
func (as *AdminService) FlushViews(ctx context.Context) (*FlushResult, error) {
	if as.writer == nil {
		return nil, ErrReadOnlyCatalog
	}
	if as.views == nil {
		return &FlushResult{}, nil
	}

	batch, err := as.views.Drain(ctx)
	if err != nil {
		return nil, err
	}

	deltas := make(map[string]int64, len(batch.Counts))
	var total int64
	for field, n := range batch.Counts {
		key, err := models.ParseRecordKey(field)
		if err != nil || key.Kind() != models.KeyDocument {
			as.logger.Warn("Bỏ qua lượt xem của key không ghi được", zap.String("key", field))
			continue
		}
		deltas[key.Document()] += n
		total += n
	}

	updated, err := as.writer.IncrementViews(ctx, deltas)
	if err != nil {
		if restoreErr := as.views.Restore(ctx, batch); restoreErr != nil {
			as.logger.Error("Không trả được lượt xem về Redis",
				zap.Error(restoreErr),
				zap.String("batch", batch.Key),
				zap.Int64("views", total))
		}
		return nil, fmt.Errorf("lỗi ghi lượt xem: %w", err)
	}
	if err := as.views.Commit(ctx, batch); err != nil {
		as.logger.Warn("Không xóa được batch lượt xem đã ghi", zap.Error(err), zap.String("batch", batch.Key))
	}

	result := &FlushResult{Products: len(deltas), Views: total, Updated: updated}
	as.logger.Info("Đã gom lượt xem",
		zap.Int("products", result.Products),
		zap.Int64("views", result.Views),
		zap.Int64("updated", result.Updated))
	return result, nil
}

// ReindexSearch đồng bộ lại toàn bộ index tìm kiếm
func (as *AdminService) ReindexSearch(ctx context.Context) (int, error) {
	if as.index == nil {
		return 0, ErrSearchDisabled
	}

	productRecords, categoryRecords, err := as.catalog.LoadRecords(ctx)
	if err != nil {
		return 0, fmt.Errorf("lỗi load catalog: %w", err)
	}

	n, err := as.index.Sync(productRecords, bridge.MapProducts(productRecords), bridge.MapCategories(categoryRecords, productRecords))
	if err != nil {
		return n, err
	}
	as.logger.Info("Đã đồng bộ index tìm kiếm", zap.Int("documents", n))
	return n, nil
}

// entryKey key document cho CRUD; record bundle cũ dùng dạng "n:<id>"
func entryKey(k models.RecordKey) string {
	if k.Kind() == models.KeyDocument {
		return k.Document()
	}
	return k.String()
}

func bToMb(b uint64) uint64 {
	return b / 1024 / 1024
}
