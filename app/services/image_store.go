package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/safety-storefront/internal/normalizer"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	// DefaultMaxImageBytes giới hạn 5 MiB mỗi ảnh
	DefaultMaxImageBytes int64 = 5 << 20

	// ImageURLPrefix đường dẫn public của ảnh lưu trong GridFS
	ImageURLPrefix = "/v1/images/"
)

// StoredImage ảnh đã upload
type StoredImage struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// ImageFile ảnh đọc ra để trả về client
type ImageFile struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.ReadCloser
}

// ImageStorage lưu trữ ảnh sản phẩm/danh mục
type ImageStorage interface {
	Upload(ctx context.Context, dir, filename string, r io.Reader) (*StoredImage, error)
	Open(ctx context.Context, id string) (*ImageFile, error)
	Delete(ctx context.Context, id string) error
}

// ImageStore ảnh lưu trong GridFS bucket "images"
type ImageStore struct {
	bucket   *gridfs.Bucket
	maxBytes int64
	logger   *zap.Logger
}

func NewImageStore(db *mongo.Database, maxBytes int64, logger *zap.Logger) (*ImageStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName("images"))
	if err != nil {
		return nil, fmt.Errorf("không thể tạo GridFS bucket: %w", err)
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	return &ImageStore{bucket: bucket, maxBytes: maxBytes, logger: logger}, nil
}

// Upload kiểm tra nội dung là ảnh rồi lưu với tên "<dir>/<unix-ms>_<slug>"
func (s *ImageStore) Upload(ctx context.Context, dir, filename string, r io.Reader) (*StoredImage, error) {
	data, contentType, err := ReadImage(r, s.maxBytes)
	if err != nil {
		return nil, err
	}

	name := ImageObjectName(dir, filename, time.Now())
	opts := options.GridFSUpload().SetMetadata(bson.D{
		bson.E{Key: "content_type", Value: contentType},
		bson.E{Key: "original_name", Value: filename},
	})

	id, err := s.bucket.UploadFromStream(name, bytes.NewReader(data), opts)
	if err != nil {
		return nil, fmt.Errorf("lỗi upload ảnh: %w", err)
	}

	s.logger.Info("Đã upload ảnh",
		zap.String("id", id.Hex()),
		zap.String("name", name),
		zap.Int("size", len(data)))

	return &StoredImage{
		ID:          id.Hex(),
		Name:        name,
		URL:         ImageURLPrefix + id.Hex(),
		ContentType: contentType,
		Size:        int64(len(data)),
	}, nil
}

func (s *ImageStore) Open(ctx context.Context, id string) (*ImageFile, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKey, id)
	}

	stream, err := s.bucket.OpenDownloadStream(oid)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("lỗi mở ảnh: %w", err)
	}

	file := stream.GetFile()
	contentType := "application/octet-stream"
	if file.Metadata != nil {
		if v, ok := file.Metadata.Lookup("content_type").StringValueOK(); ok {
			contentType = v
		}
	}

	return &ImageFile{
		Name:        file.Name,
		ContentType: contentType,
		Size:        file.Length,
		Body:        stream,
	}, nil
}

func (s *ImageStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidKey, id)
	}
	if err := s.bucket.Delete(oid); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return ErrImageNotFound
		}
		return fmt.Errorf("lỗi xóa ảnh: %w", err)
	}
	return nil
}

// ReadImage đọc tối đa maxBytes và nhận dạng loại file theo nội dung (không tin header client)
func ReadImage(r io.Reader, maxBytes int64) ([]byte, string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("lỗi đọc file: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, "", ErrImageTooLarge
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, "", fmt.Errorf("%w: %s", ErrInvalidImage, mt.String())
	}
	return data, mt.String(), nil
}

// ImageObjectName tên object: thư mục/unix-ms_slug.ext
func ImageObjectName(dir, filename string, now time.Time) string {
	ext := strings.ToLower(path.Ext(filename))
	base := normalizer.Slugify(strings.TrimSuffix(filename, path.Ext(filename)))
	if base == "" {
		base = "image"
	}
	name := fmt.Sprintf("%d_%s%s", now.UnixMilli(), base, ext)

	dir = strings.Trim(dir, "/")
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

// ImageIDFromURL id GridFS của URL do ImageStore cấp; URL ngoài trả về false
func ImageIDFromURL(url string) (string, bool) {
	if !strings.HasPrefix(url, ImageURLPrefix) {
		return "", false
	}
	id := strings.TrimPrefix(url, ImageURLPrefix)
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return "", false
	}
	return id, true
}
