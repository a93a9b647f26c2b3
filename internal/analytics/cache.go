package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache is a read-through TTL cache over Redis. Every cache failure is logged
// and degrades to direct computation; callers never see a cache error. A nil
// Cache is valid and always computes directly.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCache wires the cache helper around an established Redis client.
func NewCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{client: client, ttl: ttl, logger: logger}
}

// Key joins key parts with the conventional separator.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// FetchJSON loads a cached value into dest, or computes it with the loader and
// populates the cache. Concurrent misses may race to recompute; the last write
// wins, which is acceptable because the computation is deterministic.
func (c *Cache) FetchJSON(ctx context.Context, key string, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	if loader == nil {
		return errors.New("cache: loader required")
	}
	if c == nil || c.client == nil {
		return c.loadInto(ctx, dest, loader)
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		if unmarshalErr := json.Unmarshal(payload, dest); unmarshalErr == nil {
			return nil
		}
		c.logger.Warn("discarding unreadable cache entry", zap.String("key", key))
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("cache read failed, computing directly", zap.String("key", key), zap.Error(err))
	}

	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if setErr := c.client.Set(ctx, key, raw, c.ttl).Err(); setErr != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(setErr))
	}
	return json.Unmarshal(raw, dest)
}

func (c *Cache) loadInto(ctx context.Context, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}
