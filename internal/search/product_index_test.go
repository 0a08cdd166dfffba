package search

import (
	"testing"

	"github.com/meilisearch/meilisearch-go"
	"github.com/safety-storefront/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIndexDocuments(t *testing.T) {
	records := []models.ProductRecord{
		{Key: models.DocumentKey("65f1c2a9e4b0a1b2c3d4e5f6")},
		{Key: models.NumericKey(2)},
	}
	products := []models.Product{
		{ID: 142574, Name: "Mũ Bảo Hộ", Description: "Chống va đập", CategoryID: 1, Stock: 5, Tags: []string{"Mũ"}},
		{ID: 2, Name: "Găng Tay", CategoryID: 9},
	}
	categories := []models.Category{{ID: 1, Name: "Bảo Vệ Đầu"}}

	docs := BuildIndexDocuments(records, products, categories)
	require.Len(t, docs, 2)

	assert.Equal(t, 142574, docs[0].ProductID)
	assert.Equal(t, "d:65f1c2a9e4b0a1b2c3d4e5f6", docs[0].RecordKey)
	assert.Equal(t, "Mu Bao Ho", docs[0].UnaccentedName)
	assert.Equal(t, "mu bao ho", docs[0].NormalizedName)
	assert.Equal(t, "chong va dap", docs[0].NormalizedDescription)
	assert.Equal(t, []string{"mu"}, docs[0].Tags)
	assert.Equal(t, "bao ve dau", docs[0].CategoryName)
	assert.True(t, docs[0].InStock)

	assert.Equal(t, "", docs[1].CategoryName)
	assert.False(t, docs[1].InStock)
	assert.NotEqual(t, docs[0].DocID, docs[1].DocID)
}

func TestDocumentID(t *testing.T) {
	id := DocumentID("d:abc")
	assert.Regexp(t, `^p[0-9a-f]{16}$`, id)
	assert.Equal(t, id, DocumentID("d:abc"))
	assert.NotEqual(t, id, DocumentID("n:1"))
}

func TestParseProductHits(t *testing.T) {
	resp := &meilisearch.SearchResponse{
		Hits: []interface{}{
			map[string]interface{}{"product_id": float64(12), "name": "a"},
			map[string]interface{}{"name": "missing id"},
			"not a map",
			map[string]interface{}{"product_id": float64(7)},
		},
	}
	assert.Equal(t, []int{12, 7}, parseProductHits(resp))
}
