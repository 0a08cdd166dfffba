package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/safety-storefront/app/config"
	"github.com/safety-storefront/app/services"
	"github.com/safety-storefront/internal/bootstrap"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Cannot load config: ", err)
	}

	logger, err := bootstrap.NewLogger(cfg)
	if err != nil {
		log.Fatal("Cannot initialize logger: ", err)
	}
	defer logger.Sync()

	logger.Info("Starting Safety Storefront Worker",
		zap.Duration("flush_interval", cfg.Worker.FlushInterval),
		zap.Duration("reindex_interval", cfg.Worker.ReindexInterval))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backends, err := bootstrap.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open backends", zap.Error(err))
	}
	defer backends.Close(context.Background(), logger)

	catalogService := services.NewCatalogService(backends.CatalogStore(cfg), logger)
	adminService := services.NewAdminService(catalogService, backends.AdminDeps(), logger)

	flush := time.NewTicker(cfg.Worker.FlushInterval)
	defer flush.Stop()
	reindex := time.NewTicker(cfg.Worker.ReindexInterval)
	defer reindex.Stop()

	// đồng bộ index ngay khi khởi động
	runReindex(ctx, adminService, logger)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutting down worker, flushing pending views...")
			finalCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			runFlush(finalCtx, adminService, logger)
			cancel()
			logger.Info("Worker exited")
			return
		case <-flush.C:
			runFlush(ctx, adminService, logger)
		case <-reindex.C:
			runReindex(ctx, adminService, logger)
		}
	}
}

func runFlush(ctx context.Context, admin *services.AdminService, logger *zap.Logger) {
	if _, err := admin.FlushViews(ctx); err != nil && !errors.Is(err, services.ErrReadOnlyCatalog) {
		logger.Error("Flush views failed", zap.Error(err))
	}
}

func runReindex(ctx context.Context, admin *services.AdminService, logger *zap.Logger) {
	if _, err := admin.ReindexSearch(ctx); err != nil && !errors.Is(err, services.ErrSearchDisabled) {
		logger.Error("Reindex search failed", zap.Error(err))
	}
}
