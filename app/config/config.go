package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppCfg struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

// CatalogCfg nguồn dữ liệu catalog: "json" (bundle cũ, chỉ đọc) hoặc "mongo"
type CatalogCfg struct {
	Source         string `mapstructure:"source"`
	ProductsFile   string `mapstructure:"products_file"`
	CategoriesFile string `mapstructure:"categories_file"`
}

type MongoCfg struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

type RedisCfg struct {
	URL string `mapstructure:"url"`
}

type MeiliCfg struct {
	Enabled   bool   `mapstructure:"enabled"`
	URL       string `mapstructure:"url"`
	MasterKey string `mapstructure:"master_key"`
	IndexName string `mapstructure:"index_name"`
}

// AuthCfg xác thực admin bằng ID token HS256
type AuthCfg struct {
	JWTSecret   string   `mapstructure:"jwt_secret"`
	Issuer      string   `mapstructure:"issuer"`
	AdminEmails []string `mapstructure:"admin_emails"`
}

type ViewsCfg struct {
	DebounceSize   int           `mapstructure:"debounce_size"`
	DebounceWindow time.Duration `mapstructure:"debounce_window"`
}

type UploadCfg struct {
	MaxBytes int64 `mapstructure:"max_bytes"`
}

type WorkerCfg struct {
	FlushInterval   time.Duration `mapstructure:"flush_interval"`
	ReindexInterval time.Duration `mapstructure:"reindex_interval"`
}

type Config struct {
	App     AppCfg     `mapstructure:"app"`
	Catalog CatalogCfg `mapstructure:"catalog"`
	Mongo   MongoCfg   `mapstructure:"mongo"`
	Redis   RedisCfg   `mapstructure:"redis"`
	Meili   MeiliCfg   `mapstructure:"meilisearch"`
	Auth    AuthCfg    `mapstructure:"auth"`
	Views   ViewsCfg   `mapstructure:"views"`
	Upload  UploadCfg  `mapstructure:"upload"`
	Worker  WorkerCfg  `mapstructure:"worker"`
}

// IsProduction môi trường production
func (c *Config) IsProduction() bool { return c.App.Env == "production" }

// UseMongo catalog đọc từ MongoDB
func (c *Config) UseMongo() bool { return c.Catalog.Source == "mongo" }

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("catalog.source", "json")
	v.SetDefault("catalog.products_file", "data/products.json")
	v.SetDefault("catalog.categories_file", "data/categories.json")
	v.SetDefault("mongo.url", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "storefront")
	v.SetDefault("redis.url", "redis://localhost:6379")
	v.SetDefault("meilisearch.enabled", false)
	v.SetDefault("meilisearch.url", "http://localhost:7700")
	v.SetDefault("meilisearch.master_key", "")
	v.SetDefault("meilisearch.index_name", "products")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "")
	v.SetDefault("auth.admin_emails", []string{})
	v.SetDefault("views.debounce_size", 10000)
	v.SetDefault("views.debounce_window", "30m")
	v.SetDefault("upload.max_bytes", 5<<20)
	v.SetDefault("worker.flush_interval", "1m")
	v.SetDefault("worker.reindex_interval", "15m")
}

// Load đọc cấu hình: defaults → config/app.yaml (nếu có) → .env → biến môi trường.
// Biến môi trường dùng dạng MONGO_URL, MEILISEARCH_MASTER_KEY, AUTH_ADMIN_EMAILS (cách nhau bởi dấu phẩy).
func Load(paths ...string) (*Config, error) {
	// .env không bắt buộc
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("app")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"./config", "."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("lỗi đọc file cấu hình: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("lỗi parse cấu hình: %w", err)
	}

	// AUTH_ADMIN_EMAILS="a@x.vn,b@x.vn"
	cfg.Auth.AdminEmails = splitList(v.GetStringSlice("auth.admin_emails"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate kiểm tra các giá trị bắt buộc
func (c *Config) Validate() error {
	switch c.Catalog.Source {
	case "json", "mongo":
	default:
		return fmt.Errorf("catalog.source không hợp lệ: %q (json|mongo)", c.Catalog.Source)
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload.max_bytes phải > 0")
	}
	if c.Views.DebounceSize <= 0 {
		return fmt.Errorf("views.debounce_size phải > 0")
	}
	if c.Worker.FlushInterval <= 0 || c.Worker.ReindexInterval <= 0 {
		return fmt.Errorf("worker.flush_interval và worker.reindex_interval phải > 0")
	}
	return nil
}

func splitList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			part = strings.ToLower(strings.TrimSpace(part))
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// RequestTimeout thời gian chờ tối đa khi ping các backend lúc khởi động
func RequestTimeout() time.Duration { return 1500 * time.Millisecond }
