package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/safety-storefront/app/models"
	"github.com/safety-storefront/app/requests"
	"github.com/safety-storefront/app/responses"
	"github.com/safety-storefront/app/services"
	"go.uber.org/zap"
)

const (
	defaultSuggestLimit = 5
	maxSuggestLimit     = 20
	defaultInstantLimit = 20
	maxInstantLimit     = 100
)

// ViewRecorder ghi lượt xem sản phẩm
type ViewRecorder interface {
	Record(ctx context.Context, clientID, productKey string) (bool, error)
}

// InstantSearcher index tìm kiếm chịu lỗi gõ, trả về product id theo thứ tự xếp hạng
type InstantSearcher interface {
	Search(query string, limit int) ([]int, error)
}

// StorefrontController API công khai cho storefront
type StorefrontController struct {
	catalog   *services.CatalogService
	views     ViewRecorder
	index     InstantSearcher
	images    services.ImageStorage
	logger    *zap.Logger
	startedAt time.Time
}

// StorefrontDeps thành phần tùy chọn của storefront
type StorefrontDeps struct {
	Views  ViewRecorder
	Index  InstantSearcher
	Images services.ImageStorage
}

func NewStorefrontController(catalog *services.CatalogService, deps StorefrontDeps, logger *zap.Logger) *StorefrontController {
	return &StorefrontController{
		catalog:   catalog,
		views:     deps.Views,
		index:     deps.Index,
		images:    deps.Images,
		logger:    logger,
		startedAt: time.Now(),
	}
}

// ListProducts GET /v1/products?search=
func (sc *StorefrontController) ListProducts(c *gin.Context) {
	var q requests.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, http.StatusBadRequest, responses.CodeInvalidRequest, "Query không hợp lệ: "+err.Error())
		return
	}

	products := sc.catalog.SearchProducts(c.Request.Context(), q.Search)
	respondCached(c, responses.ProductListResponse{
		Products: responses.NewProductViews(products),
		Total:    len(products),
		Query:    q.Search,
	})
}

// GetProduct GET /v1/products/:id
func (sc *StorefrontController) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	catalog := sc.catalog.LoadCatalog(c.Request.Context())
	var (
		product models.Product
		found   bool
	)
	for _, p := range catalog.Products {
		if p.ID == id {
			product, found = p, true
			break
		}
	}
	if !found {
		writeError(c, http.StatusNotFound, responses.CodeProductNotFound, "Không tìm thấy sản phẩm")
		return
	}

	resp := responses.ProductDetailResponse{Product: responses.NewProductView(product)}
	for i := range catalog.Categories {
		if catalog.Categories[i].ID == product.CategoryID {
			category := catalog.Categories[i]
			resp.Category = &category
			break
		}
	}
	respondCached(c, resp)
}

// RecordView POST /v1/products/:id/views
func (sc *StorefrontController) RecordView(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	rec, found := sc.catalog.FindProductRecord(c.Request.Context(), id)
	if !found {
		writeError(c, http.StatusNotFound, responses.CodeProductNotFound, "Không tìm thấy sản phẩm")
		return
	}

	counted := false
	if sc.views != nil {
		clientID := c.GetHeader("X-Client-ID")
		if clientID == "" {
			clientID = c.ClientIP()
		}
		var err error
		counted, err = sc.views.Record(c.Request.Context(), clientID, rec.Key.String())
		if err != nil {
			sc.logger.Warn("Không ghi được lượt xem", zap.Error(err), zap.Int("product_id", id))
		}
	}

	c.JSON(http.StatusAccepted, responses.ViewRecordedResponse{ProductID: id, Counted: counted})
}

// ListCategories GET /v1/categories
func (sc *StorefrontController) ListCategories(c *gin.Context) {
	categories := sc.catalog.LoadCategories(c.Request.Context())
	respondCached(c, responses.CategoryListResponse{Categories: categories, Total: len(categories)})
}

// GetCategory GET /v1/categories/:id
func (sc *StorefrontController) GetCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	catalog := sc.catalog.LoadCatalog(c.Request.Context())
	category, found := catalog.CategoryByID(id)
	if !found {
		writeError(c, http.StatusNotFound, responses.CodeCategoryNotFound, "Không tìm thấy danh mục")
		return
	}

	respondCached(c, responses.CategoryDetailResponse{
		Category: category,
		Products: responses.NewProductViews(catalog.ProductsInCategory(id)),
	})
}

// GetCategoryProducts GET /v1/categories/:id/products; danh mục không tồn tại → danh sách rỗng
func (sc *StorefrontController) GetCategoryProducts(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	products := sc.catalog.GetProductsByCategoryID(c.Request.Context(), id)
	respondCached(c, responses.ProductListResponse{
		Products: responses.NewProductViews(products),
		Total:    len(products),
	})
}

// Suggest GET /v1/search/suggest?q=
func (sc *StorefrontController) Suggest(c *gin.Context) {
	var q requests.SuggestQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, http.StatusBadRequest, responses.CodeInvalidRequest, "Thiếu tham số q")
		return
	}

	limit := clampLimit(q.Limit, defaultSuggestLimit, maxSuggestLimit)
	c.JSON(http.StatusOK, responses.SuggestResponse{
		Query:       q.Q,
		Suggestions: sc.catalog.Suggest(c.Request.Context(), q.Q, limit),
	})
}

// InstantSearch GET /v1/search/instant?q=; Meilisearch lỗi hoặc tắt thì tìm trong bộ nhớ
func (sc *StorefrontController) InstantSearch(c *gin.Context) {
	var q requests.SuggestQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, http.StatusBadRequest, responses.CodeInvalidRequest, "Thiếu tham số q")
		return
	}
	limit := clampLimit(q.Limit, defaultInstantLimit, maxInstantLimit)
	ctx := c.Request.Context()

	if sc.index != nil && strings.TrimSpace(q.Q) != "" {
		ids, err := sc.index.Search(q.Q, limit)
		if err == nil {
			products := productsByIDs(sc.catalog.LoadProducts(ctx), ids)
			c.JSON(http.StatusOK, responses.SearchResponse{
				Query:    q.Q,
				Source:   "meilisearch",
				Products: responses.NewProductViews(products),
				Total:    len(products),
			})
			return
		}
		sc.logger.Warn("Meilisearch lỗi, dùng tìm kiếm trong bộ nhớ", zap.Error(err))
	}

	products := sc.catalog.SearchProducts(ctx, q.Q)
	if len(products) > limit {
		products = products[:limit]
	}
	c.JSON(http.StatusOK, responses.SearchResponse{
		Query:    q.Q,
		Source:   "memory",
		Products: responses.NewProductViews(products),
		Total:    len(products),
	})
}

// GetImage GET /v1/images/:id
func (sc *StorefrontController) GetImage(c *gin.Context) {
	if sc.images == nil {
		writeError(c, http.StatusNotFound, responses.CodeImageNotFound, "Không có kho ảnh")
		return
	}

	file, err := sc.images.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, sc.logger, err)
		return
	}
	defer file.Body.Close()

	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.DataFromReader(http.StatusOK, file.Size, file.ContentType, file.Body, nil)
}

// HealthCheck GET /v1/health
func (sc *StorefrontController) HealthCheck(c *gin.Context) {
	status := map[string]string{
		"catalog": "healthy",
		"views":   "disabled",
		"search":  "disabled",
		"images":  "disabled",
	}
	if sc.views != nil {
		status["views"] = "healthy"
	}
	if sc.index != nil {
		status["search"] = "healthy"
	}
	if sc.images != nil {
		status["images"] = "healthy"
	}

	c.JSON(http.StatusOK, responses.HealthCheckResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    time.Since(sc.startedAt).Round(time.Second).String(),
		Version:   "1.0.0",
		Services:  status,
	})
}

// parseID id số không âm từ path; sai định dạng thì trả 400 INVALID_ID
func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 0 {
		writeError(c, http.StatusBadRequest, responses.CodeInvalidID, "ID không hợp lệ")
		return 0, false
	}
	return id, true
}

func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// productsByIDs giữ thứ tự ids; id không còn trong catalog bị bỏ qua
func productsByIDs(products []models.Product, ids []int) []models.Product {
	byID := make(map[int]models.Product, len(products))
	for _, p := range products {
		if _, dup := byID[p.ID]; !dup {
			byID[p.ID] = p
		}
	}
	out := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}
