package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLoader struct {
	calls int
	value interface{}
	err   error
}

func (l *countingLoader) load(ctx context.Context) (interface{}, error) {
	l.calls++
	return l.value, l.err
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute, nil), mr
}

func TestFetchJSONCachesValue(t *testing.T) {
	cache, _ := newTestCache(t)
	loader := &countingLoader{value: map[string]float64{"total": 42}}
	ctx := context.Background()

	var first map[string]float64
	require.NoError(t, cache.FetchJSON(ctx, Key("stats", "test"), &first, loader.load))
	assert.Equal(t, 42.0, first["total"])
	assert.Equal(t, 1, loader.calls)

	var second map[string]float64
	require.NoError(t, cache.FetchJSON(ctx, Key("stats", "test"), &second, loader.load))
	assert.Equal(t, 42.0, second["total"])
	assert.Equal(t, 1, loader.calls, "second read should be served from cache")
}

func TestFetchJSONExpiry(t *testing.T) {
	cache, mr := newTestCache(t)
	loader := &countingLoader{value: map[string]float64{"total": 7}}
	ctx := context.Background()

	var out map[string]float64
	require.NoError(t, cache.FetchJSON(ctx, "stats:ttl", &out, loader.load))
	mr.FastForward(2 * time.Minute)

	require.NoError(t, cache.FetchJSON(ctx, "stats:ttl", &out, loader.load))
	assert.Equal(t, 2, loader.calls, "expired entry should recompute")
}

func TestFetchJSONFallsBackWhenRedisDown(t *testing.T) {
	cache, mr := newTestCache(t)
	mr.Close()

	loader := &countingLoader{value: map[string]float64{"total": 9}}
	var out map[string]float64
	require.NoError(t, cache.FetchJSON(context.Background(), "stats:down", &out, loader.load))
	assert.Equal(t, 9.0, out["total"])
	assert.Equal(t, 1, loader.calls)
}

func TestFetchJSONNilCacheComputesDirectly(t *testing.T) {
	var cache *Cache
	loader := &countingLoader{value: map[string]float64{"total": 3}}

	var out map[string]float64
	require.NoError(t, cache.FetchJSON(context.Background(), "stats:nil", &out, loader.load))
	assert.Equal(t, 3.0, out["total"])
}

func TestFetchJSONPropagatesLoaderError(t *testing.T) {
	cache, _ := newTestCache(t)
	wantErr := errors.New("fetch failed")
	loader := &countingLoader{err: wantErr}

	var out map[string]float64
	err := cache.FetchJSON(context.Background(), "stats:err", &out, loader.load)
	assert.ErrorIs(t, err, wantErr)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "stats:production:farm-1:2024-01-01:2024-01-31",
		Key("stats", "production", "farm-1", "2024-01-01", "2024-01-31"))
}
