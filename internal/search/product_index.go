package search

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/meilisearch/meilisearch-go"
	"github.com/safety-storefront/app/models"
	"github.com/safety-storefront/internal/normalizer"
	"go.uber.org/zap"
)

// ProductIndex index sản phẩm trên Meilisearch cho instant search (chịu lỗi gõ).
// Nguồn dữ liệu chuẩn vẫn là catalog store; index chỉ là bản sao để tra nhanh.
type ProductIndex struct {
	client    meilisearch.ServiceManager
	logger    *zap.Logger
	indexName string
}

// IndexConfig cấu hình cho Meilisearch
type IndexConfig struct {
	Host      string
	APIKey    string
	IndexName string
}

// IndexDocument document lưu trong index
type IndexDocument struct {
	DocID                 string   `json:"doc_id"`
	ProductID             int      `json:"product_id"`
	RecordKey             string   `json:"record_key"`
	Name                  string   `json:"name"`
	UnaccentedName        string   `json:"unaccented_name"`
	NormalizedName        string   `json:"normalized_name"`
	NormalizedDescription string   `json:"normalized_description"`
	Tags                  []string `json:"tags"`
	CategoryID            int      `json:"category_id"`
	CategoryName          string   `json:"category_name"`
	InStock               bool     `json:"in_stock"`
	Price                 float64  `json:"price"`
}

const indexBatchSize = 1000

// NewProductIndex tạo mới ProductIndex và kiểm tra kết nối
func NewProductIndex(config IndexConfig, logger *zap.Logger) (*ProductIndex, error) {
	client := meilisearch.New(config.Host, meilisearch.WithAPIKey(config.APIKey))

	if _, err := client.Health(); err != nil {
		return nil, fmt.Errorf("không thể kết nối Meilisearch: %w", err)
	}

	return &ProductIndex{
		client:    client,
		logger:    logger,
		indexName: config.IndexName,
	}, nil
}

// BuildIndex cấu hình index: thuộc tính tìm kiếm, synonyms, stop words
func (pi *ProductIndex) BuildIndex() error {
	rules, err := normalizer.LoadSearchRules()
	if err != nil {
		return err
	}

	index := pi.client.Index(pi.indexName)
	task, err := index.UpdateSettings(&meilisearch.Settings{
		SearchableAttributes: []string{"name", "unaccented_name", "normalized_name", "tags", "category_name", "normalized_description"},
		FilterableAttributes: []string{"category_id", "in_stock", "product_id"},
		SortableAttributes:   []string{"price", "product_id"},
		RankingRules:         []string{"words", "typo", "proximity", "attribute", "sort", "exactness"},
		StopWords:            rules.StopWords,
		Synonyms:             rules.Synonyms,
		TypoTolerance: &meilisearch.TypoTolerance{
			Enabled: true,
			MinWordSizeForTypos: meilisearch.MinWordSizeForTypos{
				OneTypo:  4,
				TwoTypos: 8,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("lỗi cấu hình index: %w", err)
	}

	pi.logger.Info("Đã cấu hình index sản phẩm", zap.String("index", pi.indexName), zap.Int64("task_uid", task.TaskUID))
	return nil
}

// Sync thay toàn bộ document trong index bằng snapshot catalog hiện tại
func (pi *ProductIndex) Sync(records []models.ProductRecord, products []models.Product, categories []models.Category) (int, error) {
	docs := BuildIndexDocuments(records, products, categories)
	index := pi.client.Index(pi.indexName)

	task, err := index.DeleteAllDocuments()
	if err != nil {
		return 0, fmt.Errorf("lỗi xóa documents cũ: %w", err)
	}
	pi.logger.Debug("Đã gửi lệnh xóa documents", zap.Int64("task_uid", task.TaskUID))

	for i := 0; i < len(docs); i += indexBatchSize {
		end := i + indexBatchSize
		if end > len(docs) {
			end = len(docs)
		}

		task, err := index.AddDocuments(docs[i:end], "doc_id")
		if err != nil {
			return i, fmt.Errorf("lỗi thêm documents batch %d-%d: %w", i, end, err)
		}
		pi.logger.Info("Đã thêm batch documents",
			zap.Int("from", i),
			zap.Int("to", end),
			zap.Int64("task_uid", task.TaskUID))
	}

	return len(docs), nil
}

// Search trả về product id theo thứ tự xếp hạng của Meilisearch
func (pi *ProductIndex) Search(query string, limit int) ([]int, error) {
	if query == "" {
		return nil, errors.New("query không được để trống")
	}

	result, err := pi.client.Index(pi.indexName).Search(query, &meilisearch.SearchRequest{
		Limit: int64(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("lỗi tìm kiếm Meilisearch: %w", err)
	}
	return parseProductHits(result), nil
}

// BuildIndexDocuments dựng document index; records và products cùng thứ tự (products = MapProducts(records))
func BuildIndexDocuments(records []models.ProductRecord, products []models.Product, categories []models.Category) []IndexDocument {
	categoryNames := make(map[int]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	docs := make([]IndexDocument, 0, len(products))
	for i, p := range products {
		key := ""
		if i < len(records) {
			key = records[i].Key.String()
		}
		tags := make([]string, 0, len(p.Tags))
		for _, tag := range p.Tags {
			tags = append(tags, normalizer.NormalizeForSearch(tag))
		}
		docs = append(docs, IndexDocument{
			DocID:                 DocumentID(key),
			ProductID:             p.ID,
			RecordKey:             key,
			Name:                  p.Name,
			UnaccentedName:        normalizer.StripDiacritics(p.Name),
			NormalizedName:        normalizer.NormalizeForSearch(p.Name),
			NormalizedDescription: normalizer.NormalizeForSearch(p.Description),
			Tags:                  tags,
			CategoryID:            p.CategoryID,
			CategoryName:          normalizer.NormalizeForSearch(categoryNames[p.CategoryID]),
			InStock:               p.InStock(),
			Price:                 p.Price,
		})
	}
	return docs
}

// DocumentID primary key hợp lệ cho Meilisearch ([a-zA-Z0-9_-]) từ record key bất kỳ
func DocumentID(recordKey string) string {
	return fmt.Sprintf("p%016x", xxhash.Sum64String(recordKey))
}

func parseProductHits(result *meilisearch.SearchResponse) []int {
	ids := make([]int, 0, len(result.Hits))
	for _, hit := range result.Hits {
		hitMap, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}
		if id, ok := hitMap["product_id"].(float64); ok {
			ids = append(ids, int(id))
		}
	}
	return ids
}
