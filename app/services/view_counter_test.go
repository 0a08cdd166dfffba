package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRedisViewCounter(t *testing.T) (*ViewCounter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	vc, err := NewViewCounter(client, 100, 30*time.Minute, zap.NewNop())
	require.NoError(t, err)
	return vc, mr
}

func TestViewCounter_Debounce(t *testing.T) {
	vc, err := NewViewCounter(nil, 2, 30*time.Minute, zap.NewNop())
	require.NoError(t, err)

	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	vc.now = func() time.Time { return now }

	assert.True(t, vc.shouldCount("client-a", "d:p1"))
	assert.False(t, vc.shouldCount("client-a", "d:p1"))
	assert.True(t, vc.shouldCount("client-b", "d:p1"))
	assert.True(t, vc.shouldCount("", "d:p1"), "không có client id thì luôn đếm")

	now = now.Add(31 * time.Minute)
	assert.True(t, vc.shouldCount("client-a", "d:p1"))

	// LRU chỉ giữ 2 cặp gần nhất; cặp cũ bị đẩy ra thì được đếm lại
	assert.True(t, vc.shouldCount("client-c", "d:p1"))
	assert.True(t, vc.shouldCount("client-d", "d:p1"))
	assert.True(t, vc.shouldCount("client-a", "d:p1"))
}

func TestViewCounter_Record(t *testing.T) {
	vc, mr := newRedisViewCounter(t)
	ctx := context.Background()

	counted, err := vc.Record(ctx, "client-a", "d:p1")
	require.NoError(t, err)
	assert.True(t, counted)

	counted, err = vc.Record(ctx, "client-a", "d:p1")
	require.NoError(t, err)
	assert.False(t, counted, "cùng client trong cửa sổ debounce")

	counted, err = vc.Record(ctx, "client-b", "d:p1")
	require.NoError(t, err)
	assert.True(t, counted)

	_, err = vc.Record(ctx, "client-a", "n:7")
	require.NoError(t, err)

	assert.Equal(t, "2", mr.HGet(viewsHashKey, "d:p1"))
	assert.Equal(t, "1", mr.HGet(viewsHashKey, "n:7"))

	pending, err := vc.Pending(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), pending)
}

func TestViewCounter_DrainEmpty(t *testing.T) {
	vc, _ := newRedisViewCounter(t)
	ctx := context.Background()

	batch, err := vc.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", batch.Key)
	assert.Equal(t, map[string]int64{}, batch.Counts)
	assert.NoError(t, vc.Commit(ctx, batch))
	assert.NoError(t, vc.Restore(ctx, batch))
}

func TestViewCounter_DrainAndCommit(t *testing.T) {
	vc, mr := newRedisViewCounter(t)
	ctx := context.Background()

	mr.HSet(viewsHashKey, "d:p1", "5", "d:p2", "2", "d:bad", "abc")

	batch, err := vc.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"d:p1": 5, "d:p2": 2}, batch.Counts, "giá trị không phải số bị bỏ qua")
	assert.True(t, mr.Exists(batch.Key))
	assert.False(t, mr.Exists(viewsHashKey))

	// lượt xem mới sau khi tách batch vẫn nằm trong hash chính
	_, err = vc.Record(ctx, "client-a", "d:p1")
	require.NoError(t, err)
	pending, err := vc.Pending(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending)

	require.NoError(t, vc.Commit(ctx, batch))
	assert.False(t, mr.Exists(batch.Key))
	assert.Equal(t, "1", mr.HGet(viewsHashKey, "d:p1"))
}

func TestViewCounter_Restore(t *testing.T) {
	vc, mr := newRedisViewCounter(t)
	ctx := context.Background()

	mr.HSet(viewsHashKey, "d:p1", "5", "d:p2", "2")

	batch, err := vc.Drain(ctx)
	require.NoError(t, err)

	_, err = vc.Record(ctx, "client-a", "d:p1")
	require.NoError(t, err)

	require.NoError(t, vc.Restore(ctx, batch))
	assert.False(t, mr.Exists(batch.Key))
	assert.Equal(t, "6", mr.HGet(viewsHashKey, "d:p1"))
	assert.Equal(t, "2", mr.HGet(viewsHashKey, "d:p2"))

	again, err := vc.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"d:p1": 6, "d:p2": 2}, again.Counts)
}

func TestAdminService_FlushViewsWithRedis(t *testing.T) {
	seed := seedCatalog(t)
	vc, mr := newRedisViewCounter(t)
	admin := newAdmin(seed.store, AdminDeps{Views: vc})
	ctx := context.Background()

	helmet := "d:" + seed.helmetKey
	mr.HSet(viewsHashKey, helmet, "4")

	seed.store.viewsErr = errBackendDown
	_, err := admin.FlushViews(ctx)
	require.ErrorIs(t, err, errBackendDown)
	assert.Equal(t, "4", mr.HGet(viewsHashKey, helmet))

	seed.store.viewsErr = nil
	res, err := admin.FlushViews(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.Views)
	assert.Equal(t, int64(4), seed.store.views[seed.helmetKey])
	assert.False(t, mr.Exists(viewsHashKey))
	assert.Empty(t, mr.Keys())
}
