package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const viewsHashKey = "storefront:views"

// ViewCounter đếm lượt xem sản phẩm trên Redis (HINCRBY), gom định kỳ vào catalog.
// Mỗi client chỉ được tính một lượt cho mỗi sản phẩm trong cửa sổ debounce.
type ViewCounter struct {
	client redis.Cmdable
	seen   *lru.Cache[string, time.Time]
	window time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewRedisClient tạo client từ URL dạng redis://host:port/db và kiểm tra kết nối
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("lỗi parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("không thể kết nối Redis: %w", err)
	}
	return client, nil
}

func NewViewCounter(client redis.Cmdable, debounceSize int, window time.Duration, logger *zap.Logger) (*ViewCounter, error) {
	seen, err := lru.New[string, time.Time](debounceSize)
	if err != nil {
		return nil, fmt.Errorf("không thể tạo LRU cache: %w", err)
	}
	return &ViewCounter{
		client: client,
		seen:   seen,
		window: window,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Record ghi một lượt xem; trả về false nếu bị debounce
func (vc *ViewCounter) Record(ctx context.Context, clientID, productKey string) (bool, error) {
	if !vc.shouldCount(clientID, productKey) {
		return false, nil
	}
	if err := vc.client.HIncrBy(ctx, viewsHashKey, productKey, 1).Err(); err != nil {
		vc.logger.Error("Lỗi HINCRBY lượt xem", zap.Error(err), zap.String("product", productKey))
		return false, err
	}
	return true, nil
}

func (vc *ViewCounter) shouldCount(clientID, productKey string) bool {
	if clientID == "" {
		return true
	}
	key := clientID + "|" + productKey
	now := vc.now()
	if last, ok := vc.seen.Get(key); ok && now.Sub(last) < vc.window {
		return false
	}
	vc.seen.Add(key, now)
	return true
}

// ViewBatch lượt xem đã tách khỏi hash chính, chờ ghi vào catalog.
// Key rỗng nghĩa là không có gì để gom.
type ViewBatch struct {
	Key    string
	Counts map[string]int64
}

// Drain tách toàn bộ lượt xem đang chờ sang hash riêng (RENAME) rồi đọc.
// Lượt xem mới trong lúc gom vẫn vào hash chính. Batch phải được Commit sau khi
// ghi thành công, hoặc Restore khi ghi lỗi.
func (vc *ViewCounter) Drain(ctx context.Context) (*ViewBatch, error) {
	exists, err := vc.client.Exists(ctx, viewsHashKey).Result()
	if err != nil {
		return nil, fmt.Errorf("lỗi kiểm tra hash lượt xem: %w", err)
	}
	if exists == 0 {
		return &ViewBatch{Counts: map[string]int64{}}, nil
	}

	draining := fmt.Sprintf("%s:draining:%d", viewsHashKey, vc.now().UnixNano())
	if err := vc.client.Rename(ctx, viewsHashKey, draining).Err(); err != nil {
		return nil, fmt.Errorf("lỗi rename hash lượt xem: %w", err)
	}

	counts, err := vc.readCounts(ctx, draining)
	if err != nil {
		return nil, err
	}
	return &ViewBatch{Key: draining, Counts: counts}, nil
}

// Commit xóa batch đã ghi vào catalog
func (vc *ViewCounter) Commit(ctx context.Context, batch *ViewBatch) error {
	if batch == nil || batch.Key == "" {
		return nil
	}
	if err := vc.client.Del(ctx, batch.Key).Err(); err != nil {
		return fmt.Errorf("lỗi xóa hash lượt xem đã gom: %w", err)
	}
	return nil
}

// Restore cộng batch trở lại hash chính rồi xóa batch (một transaction)
func (vc *ViewCounter) Restore(ctx context.Context, batch *ViewBatch) error {
	if batch == nil || batch.Key == "" {
		return nil
	}
	_, err := vc.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, n := range batch.Counts {
			pipe.HIncrBy(ctx, viewsHashKey, key, n)
		}
		pipe.Del(ctx, batch.Key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("lỗi trả lượt xem về hash chính: %w", err)
	}
	return nil
}

func (vc *ViewCounter) readCounts(ctx context.Context, key string) (map[string]int64, error) {
	raw, err := vc.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("lỗi đọc hash lượt xem: %w", err)
	}

	counts := make(map[string]int64, len(raw))
	for field, val := range raw {
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			vc.logger.Warn("Bỏ qua giá trị lượt xem không hợp lệ", zap.String("product", field), zap.String("value", val))
			continue
		}
		counts[field] = n
	}
	return counts, nil
}

// Pending số sản phẩm đang có lượt xem chờ gom (không xóa)
func (vc *ViewCounter) Pending(ctx context.Context) (int64, error) {
	return vc.client.HLen(ctx, viewsHashKey).Result()
}
