package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "json", cfg.Catalog.Source)
	assert.False(t, cfg.UseMongo())
	assert.Equal(t, int64(5<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, 30*time.Minute, cfg.Views.DebounceWindow)
	assert.Equal(t, time.Minute, cfg.Worker.FlushInterval)
	assert.Empty(t, cfg.Auth.AdminEmails)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := "catalog:\n  source: mongo\nmongo:\n  database: shop_test\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.yaml"), []byte(yaml), 0o644))

	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_ADMIN_EMAILS", "Admin@Safety.vn, ops@safety.vn")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.True(t, cfg.UseMongo())
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "shop_test", cfg.Mongo.Database)
	assert.Equal(t, []string{"admin@safety.vn", "ops@safety.vn"}, cfg.Auth.AdminEmails)
}

func TestLoad_InvalidSource(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "sqlite")

	_, err := Load(t.TempDir())
	assert.Error(t, err)
}
