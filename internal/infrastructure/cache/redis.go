package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisMetricsCache — TTL-кэш дашбордных агрегаций. Ошибки Redis не
// фатальны: промах кэша просто ведет к пересчету.
type RedisMetricsCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisMetricsCache(addr, password string, db int, ttl time.Duration, logger *slog.Logger) *RedisMetricsCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisMetricsCache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl:    ttl,
		logger: logger,
	}
}

func (c *RedisMetricsCache) Get(key string, dest interface{}) bool {
	payload, err := c.client.Get(context.Background(), key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache get failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		c.logger.Warn("cache payload unmarshal failed", "key", key, "error", err)
		return false
	}
	return true
}

func (c *RedisMetricsCache) Set(key string, value interface{}) {
	payload, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache payload marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(context.Background(), key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("cache set failed", "key", key, "error", err)
	}
}

func (c *RedisMetricsCache) Close() error {
	return c.client.Close()
}
