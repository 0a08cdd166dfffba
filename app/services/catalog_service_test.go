package services

import (
	"context"
	"testing"

	"github.com/safety-storefront/app/models"
	"github.com/safety-storefront/internal/bridge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type seededCatalog struct {
	store     *memoryStore
	headKey   string
	handKey   string
	helmetKey string
	gloveKey  string
	scarfKey  string
}

func seedCatalog(t *testing.T) seededCatalog {
	t.Helper()
	ctx := context.Background()
	store := newMemoryStore()

	head, err := store.InsertCategory(ctx, &models.DocumentCategory{Name: "Bảo Vệ Đầu"})
	require.NoError(t, err)
	hand, err := store.InsertCategory(ctx, &models.DocumentCategory{Name: "Bảo Vệ Tay"})
	require.NoError(t, err)

	qty := 10
	helmet, err := store.InsertProduct(ctx, &models.DocumentProduct{
		CategoryID: head, Name: "Mũ Bảo Hộ", Description: "Chống va đập", Price: 250000, Quantity: &qty,
	})
	require.NoError(t, err)
	glove, err := store.InsertProduct(ctx, &models.DocumentProduct{
		CategoryID: hand, Name: "Găng Tay Chống Cắt", Price: 0,
	})
	require.NoError(t, err)
	scarf, err := store.InsertProduct(ctx, &models.DocumentProduct{
		CategoryID: head, Name: "Khăn Trùm Đầu", Tags: []string{"chống nắng"},
	})
	require.NoError(t, err)

	return seededCatalog{store: store, headKey: head, handKey: hand, helmetKey: helmet, gloveKey: glove, scarfKey: scarf}
}

func TestCatalogService_LoadCatalog(t *testing.T) {
	seed := seedCatalog(t)
	cs := NewCatalogService(seed.store, zap.NewNop())

	catalog := cs.LoadCatalog(context.Background())
	require.Len(t, catalog.Products, 3)
	require.Len(t, catalog.Categories, 2)

	assert.Equal(t, bridge.DocKeyToID(seed.helmetKey), catalog.Products[0].ID)
	assert.Equal(t, bridge.DocKeyToID(seed.headKey), catalog.Products[0].CategoryID)
	assert.Equal(t, 2, catalog.Categories[0].ProductCount)
	assert.Equal(t, 1, catalog.Categories[1].ProductCount)
}

func TestCatalogService_BackendErrorYieldsEmpty(t *testing.T) {
	store := newMemoryStore()
	store.readErr = errBackendDown
	cs := NewCatalogService(store, zap.NewNop())
	ctx := context.Background()

	products := cs.LoadProducts(ctx)
	assert.NotNil(t, products)
	assert.Empty(t, products)

	categories := cs.LoadCategories(ctx)
	assert.NotNil(t, categories)
	assert.Empty(t, categories)

	_, ok := cs.GetProductByID(ctx, 1)
	assert.False(t, ok)

	assert.Empty(t, cs.SearchProducts(ctx, ""))

	_, _, err := cs.LoadRecords(ctx)
	assert.ErrorIs(t, err, errBackendDown)
}

func TestCatalogService_Lookups(t *testing.T) {
	seed := seedCatalog(t)
	cs := NewCatalogService(seed.store, zap.NewNop())
	ctx := context.Background()

	p, ok := cs.GetProductByID(ctx, bridge.DocKeyToID(seed.gloveKey))
	require.True(t, ok)
	assert.Equal(t, "Găng Tay Chống Cắt", p.Name)

	rec, ok := cs.FindProductRecord(ctx, bridge.DocKeyToID(seed.gloveKey))
	require.True(t, ok)
	assert.Equal(t, models.DocumentKey(seed.gloveKey), rec.Key)

	c, ok := cs.GetCategoryByID(ctx, bridge.DocKeyToID(seed.headKey))
	require.True(t, ok)
	assert.Equal(t, "Bảo Vệ Đầu", c.Name)
	assert.Equal(t, 2, c.ProductCount)

	_, ok = cs.GetCategoryByID(ctx, -1)
	assert.False(t, ok)

	inHead := cs.GetProductsByCategoryID(ctx, bridge.DocKeyToID(seed.headKey))
	require.Len(t, inHead, 2)
	assert.Equal(t, "Mũ Bảo Hộ", inHead[0].Name)
	assert.Equal(t, "Khăn Trùm Đầu", inHead[1].Name)

	missing := cs.GetProductsByCategoryID(ctx, -1)
	assert.NotNil(t, missing)
	assert.Empty(t, missing)
}

func TestCatalogService_Search(t *testing.T) {
	seed := seedCatalog(t)
	cs := NewCatalogService(seed.store, zap.NewNop())
	ctx := context.Background()

	got := cs.SearchProducts(ctx, "bao ho")
	require.Len(t, got, 1)
	assert.Equal(t, "Mũ Bảo Hộ", got[0].Name)

	// chỉ khớp qua tên danh mục
	got = cs.SearchProducts(ctx, "BẢO VỆ ĐẦU")
	require.Len(t, got, 2)

	got = cs.SearchProducts(ctx, "chong nang")
	require.Len(t, got, 1)
	assert.Equal(t, "Khăn Trùm Đầu", got[0].Name)

	assert.Len(t, cs.SearchProducts(ctx, "  "), 3)

	suggestions := cs.Suggest(ctx, "gang tya", 3)
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "Găng Tay Chống Cắt", suggestions[0].Text)
}
