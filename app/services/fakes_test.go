package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/safety-storefront/app/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryStore CatalogWriter trong bộ nhớ, giữ thứ tự chèn
type memoryStore struct {
	mu         sync.Mutex
	products   []models.DocumentProduct
	categories []models.DocumentCategory
	readErr    error
	viewsErr   error
	views      map[string]int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{views: make(map[string]int64)}
}

func (m *memoryStore) ProductRecords(ctx context.Context) ([]models.ProductRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	out := make([]models.ProductRecord, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p.Record())
	}
	return out, nil
}

func (m *memoryStore) CategoryRecords(ctx context.Context) ([]models.CategoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	out := make([]models.CategoryRecord, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, c.Record())
	}
	return out, nil
}

func (m *memoryStore) findProduct(key string) (int, error) {
	id, err := objectID(key)
	if err != nil {
		return -1, err
	}
	for i, p := range m.products {
		if p.ID == id {
			return i, nil
		}
	}
	return -1, ErrProductNotFound
}

func (m *memoryStore) findCategory(key string) (int, error) {
	id, err := objectID(key)
	if err != nil {
		return -1, err
	}
	for i, c := range m.categories {
		if c.ID == id {
			return i, nil
		}
	}
	return -1, ErrCategoryNotFound
}

func (m *memoryStore) GetProduct(ctx context.Context, key string) (*models.DocumentProduct, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, err := m.findProduct(key)
	if err != nil {
		return nil, err
	}
	p := m.products[i]
	return &p, nil
}

func (m *memoryStore) InsertProduct(ctx context.Context, p *models.DocumentProduct) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = primitive.NewObjectID()
	m.products = append(m.products, *p)
	return p.ID.Hex(), nil
}

func (m *memoryStore) UpdateProduct(ctx context.Context, key string, p *models.DocumentProduct) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, err := m.findProduct(key)
	if err != nil {
		return err
	}
	p.ID = m.products[i].ID
	m.products[i] = *p
	return nil
}

func (m *memoryStore) DeleteProduct(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, err := m.findProduct(key)
	if err != nil {
		return err
	}
	m.products = append(m.products[:i], m.products[i+1:]...)
	return nil
}

func (m *memoryStore) GetCategory(ctx context.Context, key string) (*models.DocumentCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, err := m.findCategory(key)
	if err != nil {
		return nil, err
	}
	c := m.categories[i]
	return &c, nil
}

func (m *memoryStore) InsertCategory(ctx context.Context, c *models.DocumentCategory) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = primitive.NewObjectID()
	m.categories = append(m.categories, *c)
	return c.ID.Hex(), nil
}

func (m *memoryStore) UpdateCategory(ctx context.Context, key string, c *models.DocumentCategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, err := m.findCategory(key)
	if err != nil {
		return err
	}
	c.ID = m.categories[i].ID
	m.categories[i] = *c
	return nil
}

func (m *memoryStore) DeleteCategory(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, err := m.findCategory(key)
	if err != nil {
		return err
	}
	m.categories = append(m.categories[:i], m.categories[i+1:]...)
	return nil
}

func (m *memoryStore) CountProducts(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.products)), nil
}

func (m *memoryStore) CountCategories(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.categories)), nil
}

func (m *memoryStore) CountProductsInCategory(ctx context.Context, categoryKey string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, p := range m.products {
		if p.CategoryID == categoryKey {
			n++
		}
	}
	return n, nil
}

func (m *memoryStore) IncrementViews(ctx context.Context, deltas map[string]int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.viewsErr != nil {
		return 0, m.viewsErr
	}
	var updated int64
	for key, delta := range deltas {
		m.views[key] += delta
		updated++
	}
	return updated, nil
}

func (m *memoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products, m.categories = nil, nil
	return nil
}

// memoryImages ImageStorage ghi lại các id đã xóa
type memoryImages struct {
	deleted []string
}

func (m *memoryImages) Upload(ctx context.Context, dir, filename string, r io.Reader) (*StoredImage, error) {
	id := primitive.NewObjectID().Hex()
	return &StoredImage{ID: id, URL: ImageURLPrefix + id}, nil
}

func (m *memoryImages) Open(ctx context.Context, id string) (*ImageFile, error) {
	return nil, ErrImageNotFound
}

func (m *memoryImages) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

// staticViews ViewDrainer trong bộ nhớ; batch đang gom nằm trong inflight
type staticViews struct {
	counts    map[string]int64
	inflight  map[string]*ViewBatch
	committed int
}

func (s *staticViews) Drain(ctx context.Context) (*ViewBatch, error) {
	if len(s.counts) == 0 {
		return &ViewBatch{Counts: map[string]int64{}}, nil
	}
	batch := &ViewBatch{Key: fmt.Sprintf("batch-%d", len(s.inflight)+s.committed), Counts: s.counts}
	if s.inflight == nil {
		s.inflight = make(map[string]*ViewBatch)
	}
	s.inflight[batch.Key] = batch
	s.counts = map[string]int64{}
	return batch, nil
}

func (s *staticViews) Commit(ctx context.Context, batch *ViewBatch) error {
	if batch.Key == "" {
		return nil
	}
	delete(s.inflight, batch.Key)
	s.committed++
	return nil
}

func (s *staticViews) Restore(ctx context.Context, batch *ViewBatch) error {
	if batch.Key == "" {
		return nil
	}
	if s.counts == nil {
		s.counts = make(map[string]int64)
	}
	for k, n := range batch.Counts {
		s.counts[k] += n
	}
	delete(s.inflight, batch.Key)
	return nil
}

func (s *staticViews) Pending(ctx context.Context) (int64, error) {
	return int64(len(s.counts)), nil
}

type recordingIndex struct {
	synced int
	err    error
}

func (r *recordingIndex) Sync(records []models.ProductRecord, products []models.Product, categories []models.Category) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.synced = len(products)
	return len(products), nil
}

var errBackendDown = errors.New("backend down")
