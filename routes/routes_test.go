package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/safety-storefront/app/config"
	"github.com/safety-storefront/app/controllers"
	"github.com/safety-storefront/app/middleware"
	"github.com/safety-storefront/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "routes-test-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	products := filepath.Join(dir, "products.json")
	categories := filepath.Join(dir, "categories.json")
	require.NoError(t, os.WriteFile(products, []byte(`{"products": [{"id": 1, "category_id": 1, "name": "Mũ Bảo Hộ", "quantity": 5, "price": 250000}]}`), 0o644))
	require.NoError(t, os.WriteFile(categories, []byte(`{"categories": [{"id": 1, "name": "Bảo Vệ Đầu"}]}`), 0o644))

	logger := zap.NewNop()
	store := services.NewJSONCatalogStore(products, categories)
	catalog := services.NewCatalogService(store, logger)
	admin := services.NewAdminService(catalog, services.AdminDeps{}, logger)

	storefront := controllers.NewStorefrontController(catalog, controllers.StorefrontDeps{}, logger)
	adminController := controllers.NewAdminController(admin, store.Bundle, logger)
	auth := middleware.NewAdminAuth(config.AuthCfg{
		JWTSecret:   testSecret,
		AdminEmails: []string{"admin@safety.vn"},
	}, logger)

	router := gin.New()
	SetupMiddleware(router, logger)
	SetupAllRoutes(router, storefront, adminController, auth)
	return router
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStorefrontRoutes(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/", "/docs", "/health", "/v1/health", "/v1/products", "/v1/products/1", "/v1/categories", "/v1/categories/1/products"} {
		w := get(r, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID), path)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	w := get(r, "/v1/admin/stats", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	outsider, err := middleware.IssueToken([]byte(testSecret), "", "someone@example.com", time.Hour)
	require.NoError(t, err)
	w = get(r, "/v1/admin/stats", outsider)
	assert.Equal(t, http.StatusForbidden, w.Code)

	token, err := middleware.IssueToken([]byte(testSecret), "", "admin@safety.vn", time.Hour)
	require.NoError(t, err)
	w = get(r, "/v1/admin/stats", token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(r, "/v1/admin/validate", token)
	assert.Equal(t, http.StatusOK, w.Code)

	// catalog JSON chỉ đọc
	w = get(r, "/v1/admin/products/abc", token)
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestNoRoute(t *testing.T) {
	r := newTestRouter(t)

	w := get(r, "/v2/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Route not found")
}
