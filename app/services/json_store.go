package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/safety-storefront/app/models"
)

// JSONCatalogStore đọc bundle JSON cũ ({"products": [...]}, {"categories": [...]}).
// Chỉ đọc: mọi thao tác ghi trả về ErrReadOnlyCatalog ở tầng AdminService.
type JSONCatalogStore struct {
	productsFile   string
	categoriesFile string
}

func NewJSONCatalogStore(productsFile, categoriesFile string) *JSONCatalogStore {
	return &JSONCatalogStore{productsFile: productsFile, categoriesFile: categoriesFile}
}

func (s *JSONCatalogStore) ProductRecords(ctx context.Context) ([]models.ProductRecord, error) {
	bundle, err := readBundle(s.productsFile)
	if err != nil {
		return nil, err
	}
	records := make([]models.ProductRecord, 0, len(bundle.Products))
	for _, p := range bundle.Products {
		records = append(records, p.Record())
	}
	return records, nil
}

func (s *JSONCatalogStore) CategoryRecords(ctx context.Context) ([]models.CategoryRecord, error) {
	bundle, err := readBundle(s.categoriesFile)
	if err != nil {
		return nil, err
	}
	records := make([]models.CategoryRecord, 0, len(bundle.Categories))
	for _, c := range bundle.Categories {
		records = append(records, c.Record())
	}
	return records, nil
}

// Bundle đọc cả hai file thành một CatalogBundle (dùng cho seed)
func (s *JSONCatalogStore) Bundle() (*models.CatalogBundle, error) {
	return LoadBundle(s.productsFile, s.categoriesFile)
}

// LoadBundle đọc products.json và categories.json
func LoadBundle(productsFile, categoriesFile string) (*models.CatalogBundle, error) {
	products, err := readBundle(productsFile)
	if err != nil {
		return nil, err
	}
	categories, err := readBundle(categoriesFile)
	if err != nil {
		return nil, err
	}
	return &models.CatalogBundle{Products: products.Products, Categories: categories.Categories}, nil
}

func readBundle(path string) (*models.CatalogBundle, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lỗi đọc %s: %w", path, err)
	}
	var bundle models.CatalogBundle
	if err := json.Unmarshal(b, &bundle); err != nil {
		return nil, fmt.Errorf("lỗi parse %s: %w", path, err)
	}
	return &bundle, nil
}
