package search

import (
	"testing"

	"github.com/safety-storefront/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCatalog() ([]models.Product, []models.Category) {
	products := []models.Product{
		{ID: 1, Name: "Mũ Bảo Hộ Công Nghiệp", Description: "Chống va đập mạnh", CategoryID: 1},
		{ID: 2, Name: "Găng Tay Chống Cắt", Description: "Phù hợp cơ khí", CategoryID: 2, Tags: []string{"bảo vệ tay"}},
		{ID: 3, Name: "Giày Bảo Hộ Thép", Description: "Mũi thép, đế chống trượt", CategoryID: 3},
		{ID: 4, Name: "Áo Phản Quang An Toàn", Description: "Tăng khả năng nhìn thấy", CategoryID: 5},
		{ID: 5, Name: "ao bao ho", Description: "vai kaki", CategoryID: 5},
		{ID: 6, Name: "Nón Vải", Description: "Che nắng", CategoryID: 1},
	}
	categories := []models.Category{
		{ID: 1, Name: "Bảo Vệ Đầu"},
		{ID: 2, Name: "Bảo Vệ Tay"},
		{ID: 3, Name: "Bảo Vệ Chân"},
		{ID: 5, Name: "Quần Áo Bảo Hộ"},
	}
	return products, categories
}

func productIDs(products []models.Product) []int {
	ids := make([]int, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func TestSearchProducts_EmptyQueryReturnsAll(t *testing.T) {
	products, categories := sampleCatalog()

	for _, q := range []string{"", "   ", "\t"} {
		got := SearchProducts(q, products, categories)
		assert.Equal(t, products, got)
		if len(got) > 0 {
			got[0].Name = "mutated"
			assert.NotEqual(t, "mutated", products[0].Name, "kết quả phải là slice mới")
		}
	}
}

func TestSearchProducts_AccentInsensitive(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "Áo Phản Quang", CategoryID: 1},
		{ID: 2, Name: "Giày Da", CategoryID: 2},
		{ID: 3, Name: "ao bao ho", CategoryID: 1},
	}

	got := SearchProducts("áo", products, nil)
	assert.Equal(t, []int{1, 3}, productIDs(got))

	got = SearchProducts("ÁO", products, nil)
	assert.Equal(t, []int{1, 3}, productIDs(got))
}

func TestSearchProducts_DescriptionAndTags(t *testing.T) {
	products, _ := sampleCatalog()

	assert.Equal(t, []int{3}, productIDs(SearchProducts("đế chống", products, nil)))
	assert.Equal(t, []int{2}, productIDs(SearchProducts("bao ve tay", products, nil)))
}

func TestSearchProducts_EndToEnd(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "Mũ Bảo Hộ", CategoryID: 1},
		{ID: 2, Name: "Giày", CategoryID: 2},
	}
	categories := []models.Category{{ID: 1, Name: "Bảo Vệ Đầu"}}

	direct := SearchProducts("bao ho", products, categories)
	require.Len(t, direct, 1)
	assert.Equal(t, 1, direct[0].ID)

	expanded := SearchProducts("bao ve dau", products, categories)
	require.Len(t, expanded, 1)
	assert.Equal(t, 1, expanded[0].ID)
}

func TestSearchProducts_DirectMatchesFirstThenCategoryExpansion(t *testing.T) {
	products, categories := sampleCatalog()

	// "bao ho": trực tiếp 1, 3, 5; danh mục "Quần Áo Bảo Hộ" thêm 4 (5 đã có)
	got := SearchProducts("bao ho", products, categories)
	assert.Equal(t, []int{1, 3, 5, 4}, productIDs(got))

	// "dau": không khớp trực tiếp; danh mục "Bảo Vệ Đầu" → 1, 6
	got = SearchProducts("đầu", products, categories)
	assert.Equal(t, []int{1, 6}, productIDs(got))
}

func TestSearchProducts_NoMatch(t *testing.T) {
	products, categories := sampleCatalog()

	got := SearchProducts("bình chữa cháy", products, categories)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSearchProducts_DoesNotMutateInputs(t *testing.T) {
	products, categories := sampleCatalog()
	productsCopy := append([]models.Product(nil), products...)
	categoriesCopy := append([]models.Category(nil), categories...)

	first := SearchProducts("bảo", products, categories)
	second := SearchProducts("bảo", products, categories)

	assert.Equal(t, productsCopy, products)
	assert.Equal(t, categoriesCopy, categories)
	assert.Equal(t, first, second)
}

func TestSearchProducts_DedupByID(t *testing.T) {
	products := []models.Product{
		{ID: 9, Name: "Kính bảo hộ", CategoryID: 1},
		{ID: 9, Name: "Kính bảo hộ (bản sao)", CategoryID: 1},
	}
	got := SearchProducts("kinh", products, []models.Category{{ID: 1, Name: "Kính"}})
	assert.Equal(t, []int{9}, productIDs(got))
}

func TestMatchCategories(t *testing.T) {
	_, categories := sampleCatalog()

	got := MatchCategories("bao ve", categories)
	require.Len(t, got, 3)
	assert.Equal(t, "Bảo Vệ Đầu", got[0].Name)
}
