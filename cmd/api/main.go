package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/safety-storefront/app/config"
	"github.com/safety-storefront/app/controllers"
	"github.com/safety-storefront/app/middleware"
	"github.com/safety-storefront/app/models"
	"github.com/safety-storefront/app/services"
	"github.com/safety-storefront/internal/bootstrap"
	"github.com/safety-storefront/routes"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Cannot load config: ", err)
	}

	// 2. Khởi tạo logger
	logger, err := bootstrap.NewLogger(cfg)
	if err != nil {
		log.Fatal("Cannot initialize logger: ", err)
	}
	defer logger.Sync()

	logger.Info("Starting Safety Storefront API",
		zap.String("env", cfg.App.Env),
		zap.String("catalog_source", cfg.Catalog.Source))

	// 3. Kết nối backend (MongoDB, Redis, Meilisearch)
	ctx := context.Background()
	backends, err := bootstrap.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open backends", zap.Error(err))
	}
	defer backends.Close(context.Background(), logger)

	// 4. Khởi tạo services
	catalogService := services.NewCatalogService(backends.CatalogStore(cfg), logger)
	adminService := services.NewAdminService(catalogService, backends.AdminDeps(), logger)

	// 5. Khởi tạo controllers
	storefrontController := controllers.NewStorefrontController(catalogService, storefrontDeps(backends), logger)
	adminController := controllers.NewAdminController(adminService, func() (*models.CatalogBundle, error) {
		return services.LoadBundle(cfg.Catalog.ProductsFile, cfg.Catalog.CategoriesFile)
	}, logger)

	if len(cfg.Auth.AdminEmails) == 0 || cfg.Auth.JWTSecret == "" {
		logger.Warn("Chưa cấu hình admin, mọi request /v1/admin sẽ bị từ chối")
	}
	auth := middleware.NewAdminAuth(cfg.Auth, logger)

	// 6. Khởi tạo Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.MaxMultipartMemory = cfg.Upload.MaxBytes

	// 7. Thiết lập routes
	routes.SetupMiddleware(router, logger)
	routes.SetupAllRoutes(router, storefrontController, adminController, auth)

	// 8. Khởi động server
	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// storefrontDeps chỉ gán backend đang bật; con trỏ nil trong interface sẽ khác nil
func storefrontDeps(b *bootstrap.Backends) controllers.StorefrontDeps {
	var deps controllers.StorefrontDeps
	if b.Views != nil {
		deps.Views = b.Views
	}
	if b.Index != nil {
		deps.Index = b.Index
	}
	if b.Images != nil {
		deps.Images = b.Images
	}
	return deps
}
