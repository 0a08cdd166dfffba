package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/safety-storefront/app/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	productsCollection   = "products"
	categoriesCollection = "categories"
)

// MongoCatalogStore catalog trên MongoDB: collections "products" và "categories"
type MongoCatalogStore struct {
	db         *mongo.Database
	products   *mongo.Collection
	categories *mongo.Collection
	logger     *zap.Logger
}

// NewMongoCatalogStore tạo store và đảm bảo indexes
func NewMongoCatalogStore(db *mongo.Database, logger *zap.Logger) *MongoCatalogStore {
	store := &MongoCatalogStore{
		db:         db,
		products:   db.Collection(productsCollection),
		categories: db.Collection(categoriesCollection),
		logger:     logger,
	}

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{bson.E{Key: "category_id", Value: 1}}},
		{Keys: bson.D{bson.E{Key: "created_at", Value: 1}}},
		{
			Keys:    bson.D{bson.E{Key: "product_code", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := store.products.Indexes().CreateMany(ctx, indexModels); err != nil {
		logger.Warn("Không thể tạo indexes cho products", zap.Error(err))
	}
	return store
}

// ProductRecords đọc toàn bộ sản phẩm theo thứ tự tạo
func (s *MongoCatalogStore) ProductRecords(ctx context.Context) ([]models.ProductRecord, error) {
	opts := options.Find().SetSort(bson.D{bson.E{Key: "created_at", Value: 1}, bson.E{Key: "_id", Value: 1}})
	cursor, err := s.products.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("lỗi query products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.DocumentProduct
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("lỗi decode products: %w", err)
	}

	records := make([]models.ProductRecord, 0, len(docs))
	for _, d := range docs {
		records = append(records, d.Record())
	}
	return records, nil
}

// CategoryRecords đọc toàn bộ danh mục theo thứ tự tạo
func (s *MongoCatalogStore) CategoryRecords(ctx context.Context) ([]models.CategoryRecord, error) {
	opts := options.Find().SetSort(bson.D{bson.E{Key: "created_at", Value: 1}, bson.E{Key: "_id", Value: 1}})
	cursor, err := s.categories.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("lỗi query categories: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.DocumentCategory
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("lỗi decode categories: %w", err)
	}

	records := make([]models.CategoryRecord, 0, len(docs))
	for _, d := range docs {
		records = append(records, d.Record())
	}
	return records, nil
}

func (s *MongoCatalogStore) GetProduct(ctx context.Context, key string) (*models.DocumentProduct, error) {
	id, err := objectID(key)
	if err != nil {
		return nil, err
	}

	var doc models.DocumentProduct
	if err := s.products.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("lỗi query product: %w", err)
	}
	return &doc, nil
}

func (s *MongoCatalogStore) InsertProduct(ctx context.Context, p *models.DocumentProduct) (string, error) {
	now := time.Now()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}

	if _, err := s.products.InsertOne(ctx, p); err != nil {
		return "", fmt.Errorf("lỗi thêm product: %w", err)
	}
	return p.ID.Hex(), nil
}

// UpdateProduct thay document, giữ created_at và views_count hiện có
func (s *MongoCatalogStore) UpdateProduct(ctx context.Context, key string, p *models.DocumentProduct) error {
	current, err := s.GetProduct(ctx, key)
	if err != nil {
		return err
	}

	p.ID = current.ID
	p.CreatedAt = current.CreatedAt
	p.UpdatedAt = time.Now()
	if p.ViewsCount == nil {
		p.ViewsCount = current.ViewsCount
	}

	if _, err := s.products.ReplaceOne(ctx, bson.M{"_id": current.ID}, p); err != nil {
		return fmt.Errorf("lỗi cập nhật product: %w", err)
	}
	return nil
}

func (s *MongoCatalogStore) DeleteProduct(ctx context.Context, key string) error {
	id, err := objectID(key)
	if err != nil {
		return err
	}

	res, err := s.products.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("lỗi xóa product: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *MongoCatalogStore) GetCategory(ctx context.Context, key string) (*models.DocumentCategory, error) {
	id, err := objectID(key)
	if err != nil {
		return nil, err
	}

	var doc models.DocumentCategory
	if err := s.categories.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("lỗi query category: %w", err)
	}
	return &doc, nil
}

func (s *MongoCatalogStore) InsertCategory(ctx context.Context, c *models.DocumentCategory) (string, error) {
	now := time.Now()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	if _, err := s.categories.InsertOne(ctx, c); err != nil {
		return "", fmt.Errorf("lỗi thêm category: %w", err)
	}
	return c.ID.Hex(), nil
}

func (s *MongoCatalogStore) UpdateCategory(ctx context.Context, key string, c *models.DocumentCategory) error {
	current, err := s.GetCategory(ctx, key)
	if err != nil {
		return err
	}

	c.ID = current.ID
	c.CreatedAt = current.CreatedAt
	c.UpdatedAt = time.Now()

	if _, err := s.categories.ReplaceOne(ctx, bson.M{"_id": current.ID}, c); err != nil {
		return fmt.Errorf("lỗi cập nhật category: %w", err)
	}
	return nil
}

func (s *MongoCatalogStore) DeleteCategory(ctx context.Context, key string) error {
	id, err := objectID(key)
	if err != nil {
		return err
	}

	res, err := s.categories.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("lỗi xóa category: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (s *MongoCatalogStore) CountProducts(ctx context.Context) (int64, error) {
	return s.products.CountDocuments(ctx, bson.M{})
}

func (s *MongoCatalogStore) CountCategories(ctx context.Context) (int64, error) {
	return s.categories.CountDocuments(ctx, bson.M{})
}

func (s *MongoCatalogStore) CountProductsInCategory(ctx context.Context, categoryKey string) (int64, error) {
	return s.products.CountDocuments(ctx, bson.M{"category_id": categoryKey})
}

// IncrementViews cộng dồn lượt xem theo key sản phẩm bằng một bulk write.
// Trả về số document đã cập nhật; key không hợp lệ bị bỏ qua.
func (s *MongoCatalogStore) IncrementViews(ctx context.Context, deltas map[string]int64) (int64, error) {
	writes := make([]mongo.WriteModel, 0, len(deltas))
	for key, delta := range deltas {
		id, err := primitive.ObjectIDFromHex(key)
		if err != nil || delta == 0 {
			continue
		}
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": id}).
			SetUpdate(bson.M{"$inc": bson.M{"views_count": delta}}))
	}
	if len(writes) == 0 {
		return 0, nil
	}

	res, err := s.products.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, fmt.Errorf("lỗi cập nhật views_count: %w", err)
	}
	return res.ModifiedCount, nil
}

// Clear xóa toàn bộ sản phẩm và danh mục
func (s *MongoCatalogStore) Clear(ctx context.Context) error {
	if _, err := s.products.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("lỗi clear products: %w", err)
	}
	if _, err := s.categories.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("lỗi clear categories: %w", err)
	}
	s.logger.Info("Đã xóa toàn bộ catalog")
	return nil
}

func objectID(key string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(key)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return id, nil
}
