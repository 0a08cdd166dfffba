// Package bootstrap khởi tạo các thành phần dùng chung cho api, worker và migrate.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/safety-storefront/app/config"
	"github.com/safety-storefront/app/services"
	"github.com/safety-storefront/internal/search"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// NewLogger logger JSON ở production, console ở môi trường khác
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	return zapCfg.Build()
}

// ConnectMongo kết nối và ping MongoDB
func ConnectMongo(ctx context.Context, cfg config.MongoCfg, logger *zap.Logger) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("không thể kết nối MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*config.RequestTimeout())
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("không thể ping MongoDB: %w", err)
	}

	logger.Info("Connected to MongoDB", zap.String("database", cfg.Database))
	return client.Database(cfg.Database), nil
}

// Backends các backend tùy chọn; field nil nghĩa là tắt
type Backends struct {
	DB     *mongo.Database
	Store  *services.MongoCatalogStore
	Images *services.ImageStore
	Redis  *redis.Client
	Views  *services.ViewCounter
	Index  *search.ProductIndex
}

// Open mở các backend theo cấu hình. Mongo lỗi là lỗi khởi động; Redis, Meilisearch lỗi thì chỉ tắt tính năng.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Backends, error) {
	b := &Backends{}

	if cfg.UseMongo() {
		db, err := ConnectMongo(ctx, cfg.Mongo, logger)
		if err != nil {
			return nil, err
		}
		b.DB = db
		b.Store = services.NewMongoCatalogStore(db, logger)
		images, err := services.NewImageStore(db, cfg.Upload.MaxBytes, logger)
		if err != nil {
			b.Close(ctx, logger)
			return nil, err
		}
		b.Images = images
	}

	if cfg.Redis.URL != "" {
		client, err := services.NewRedisClient(cfg.Redis.URL)
		if err != nil {
			logger.Warn("Redis không khả dụng, tắt đếm lượt xem", zap.Error(err))
		} else {
			b.Redis = client
			views, err := services.NewViewCounter(client, cfg.Views.DebounceSize, cfg.Views.DebounceWindow, logger)
			if err != nil {
				b.Close(ctx, logger)
				return nil, err
			}
			b.Views = views
		}
	}

	if cfg.Meili.Enabled {
		index, err := search.NewProductIndex(search.IndexConfig{
			Host:      cfg.Meili.URL,
			APIKey:    cfg.Meili.MasterKey,
			IndexName: cfg.Meili.IndexName,
		}, logger)
		if err != nil {
			logger.Warn("Meilisearch không khả dụng, instant search dùng bộ nhớ", zap.Error(err))
		} else if err := index.BuildIndex(); err != nil {
			logger.Warn("Không cấu hình được index Meilisearch", zap.Error(err))
		} else {
			b.Index = index
		}
	}

	return b, nil
}

// CatalogStore nguồn đọc catalog theo cấu hình
func (b *Backends) CatalogStore(cfg *config.Config) services.CatalogStore {
	if b.Store != nil {
		return b.Store
	}
	return services.NewJSONCatalogStore(cfg.Catalog.ProductsFile, cfg.Catalog.CategoriesFile)
}

// AdminDeps chuyển backend sang AdminDeps; tránh gán con trỏ nil vào interface
func (b *Backends) AdminDeps() services.AdminDeps {
	var deps services.AdminDeps
	if b.Store != nil {
		deps.Writer = b.Store
	}
	if b.Images != nil {
		deps.Images = b.Images
	}
	if b.Views != nil {
		deps.Views = b.Views
	}
	if b.Index != nil {
		deps.Index = b.Index
	}
	return deps
}

// Close đóng kết nối MongoDB và Redis
func (b *Backends) Close(ctx context.Context, logger *zap.Logger) {
	if b.Redis != nil {
		if err := b.Redis.Close(); err != nil {
			logger.Error("Error closing Redis", zap.Error(err))
		}
	}
	if b.DB != nil {
		if err := b.DB.Client().Disconnect(ctx); err != nil {
			logger.Error("Error disconnecting MongoDB", zap.Error(err))
		}
	}
}
