package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/safety-storefront/app/config"
	"github.com/safety-storefront/app/middleware"
	"github.com/safety-storefront/app/services"
	"github.com/safety-storefront/internal/bootstrap"
	"go.uber.org/zap"
)

type options struct {
	productsFile   string
	categoriesFile string
	dryRun         bool
	replace        bool
	reindex        bool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Cannot load config: ", err)
	}

	var opts options
	flag.StringVar(&opts.productsFile, "products", cfg.Catalog.ProductsFile, "file products.json")
	flag.StringVar(&opts.categoriesFile, "categories", cfg.Catalog.CategoriesFile, "file categories.json")
	flag.BoolVar(&opts.dryRun, "dry-run", false, "chỉ kiểm tra, không ghi vào MongoDB")
	flag.BoolVar(&opts.replace, "replace", false, "xóa catalog hiện có trước khi seed")
	flag.BoolVar(&opts.reindex, "reindex", false, "đồng bộ Meilisearch sau khi seed")
	tokenFor := flag.String("token", "", "in token admin cho email này (môi trường dev) rồi thoát")
	flag.Parse()

	if *tokenFor != "" {
		if cfg.IsProduction() || cfg.Auth.JWTSecret == "" {
			log.Fatal("Không thể cấp token: cần auth.jwt_secret và môi trường khác production")
		}
		token, err := middleware.IssueToken([]byte(cfg.Auth.JWTSecret), cfg.Auth.Issuer, *tokenFor, 24*time.Hour)
		if err != nil {
			log.Fatal("Cannot issue token: ", err)
		}
		fmt.Println(token)
		return
	}

	logger, err := bootstrap.NewLogger(cfg)
	if err != nil {
		log.Fatal("Cannot initialize logger: ", err)
	}

	err = run(context.Background(), cfg, opts, logger)
	if err != nil {
		logger.Error("Migrate failed", zap.Error(err))
	}
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run seed bundle JSON vào MongoDB; mọi defer chạy xong trước khi main thoát
func run(ctx context.Context, cfg *config.Config, opts options, logger *zap.Logger) error {
	fmt.Println("🔄 Loading JSON bundle...")
	bundle, err := services.LoadBundle(opts.productsFile, opts.categoriesFile)
	if err != nil {
		return fmt.Errorf("lỗi đọc bundle: %w", err)
	}
	fmt.Printf("✅ Loaded %d products, %d categories\n", len(bundle.Products), len(bundle.Categories))

	// Kiểm tra bundle trước khi ghi
	jsonStore := services.NewJSONCatalogStore(opts.productsFile, opts.categoriesFile)
	products, err := jsonStore.ProductRecords(ctx)
	if err != nil {
		return fmt.Errorf("lỗi đọc products: %w", err)
	}
	categories, err := jsonStore.CategoryRecords(ctx)
	if err != nil {
		return fmt.Errorf("lỗi đọc categories: %w", err)
	}
	validation := services.ValidateRecords(products, categories)
	for _, w := range validation.Warnings {
		fmt.Printf("⚠️  %s\n", w)
	}
	for _, c := range validation.Collisions {
		fmt.Printf("⚠️  %s id %d dùng chung bởi %v\n", c.Kind, c.ID, c.Keys)
	}

	if !opts.dryRun {
		cfg.Catalog.Source = "mongo"
	}
	backends, err := bootstrap.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer backends.Close(context.Background(), logger)

	catalogService := services.NewCatalogService(backends.CatalogStore(cfg), logger)
	adminService := services.NewAdminService(catalogService, backends.AdminDeps(), logger)

	result, err := adminService.SeedFromBundle(ctx, bundle, services.SeedOptions{DryRun: opts.dryRun, Replace: opts.replace})
	if err != nil {
		return fmt.Errorf("lỗi seed: %w", err)
	}
	for _, w := range result.Warnings {
		fmt.Printf("⚠️  %s\n", w)
	}
	fmt.Printf("✅ Categories: %d, products: %d, skipped: %d (dry-run=%v, %dms)\n",
		result.CategoriesInserted, result.ProductsInserted, result.ProductsSkipped, result.DryRun, result.ProcessingTimeMs)

	if opts.reindex && !opts.dryRun {
		n, err := adminService.ReindexSearch(ctx)
		if err != nil {
			return fmt.Errorf("lỗi reindex: %w", err)
		}
		fmt.Printf("🔎 Indexed %d products\n", n)
	}
	return nil
}
