package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rebechilabs/tributalks/internal/domain/analysis"
	"go.uber.org/zap"
)

// RedisBenchmarkCache implements BenchmarkCache using Redis.
// Cache failures are logged and surface as misses, never as errors.
type RedisBenchmarkCache struct {
	client     *redis.Client
	ownsClient bool
	ttl        time.Duration
	logger     *zap.Logger
}

// RedisConfig holds Redis connection settings for the cache
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisBenchmarkCacheOption is a functional option for configuring the cache
type RedisBenchmarkCacheOption func(*RedisBenchmarkCache)

// WithRedisLogger sets the logger for the cache
func WithRedisLogger(logger *zap.Logger) RedisBenchmarkCacheOption {
	return func(c *RedisBenchmarkCache) {
		c.logger = logger
	}
}

// NewRedisBenchmarkCache creates a Redis-backed benchmark cache and verifies
// the connection before returning.
func NewRedisBenchmarkCache(cfg RedisConfig, ttl time.Duration, opts ...RedisBenchmarkCacheOption) (*RedisBenchmarkCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	c := &RedisBenchmarkCache{
		client:     client,
		ownsClient: true,
		ttl:        ttl,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewRedisBenchmarkCacheWithClient wraps an existing Redis client.
// The caller keeps ownership of the client.
func NewRedisBenchmarkCacheWithClient(client *redis.Client, ttl time.Duration, opts ...RedisBenchmarkCacheOption) *RedisBenchmarkCache {
	c := &RedisBenchmarkCache{
		client: client,
		ttl:    ttl,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached benchmark and whether it was present
func (c *RedisBenchmarkCache) Get(ctx context.Context, sectorCode string) (*analysis.Benchmark, bool) {
	data, err := c.client.Get(ctx, benchmarkCacheKey(sectorCode)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("benchmark cache read failed",
				zap.String("sector", sectorCode),
				zap.Error(err))
		}
		return nil, false
	}

	var bm analysis.Benchmark
	if err := json.Unmarshal(data, &bm); err != nil {
		c.logger.Warn("benchmark cache entry corrupted",
			zap.String("sector", sectorCode),
			zap.Error(err))
		return nil, false
	}
	return &bm, true
}

// Set stores a benchmark under its sector code
func (c *RedisBenchmarkCache) Set(ctx context.Context, bm *analysis.Benchmark) {
	if bm == nil {
		return
	}

	data, err := json.Marshal(bm)
	if err != nil {
		c.logger.Warn("benchmark cache marshal failed",
			zap.String("sector", bm.SectorCode),
			zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, benchmarkCacheKey(bm.SectorCode), data, c.ttl).Err(); err != nil {
		c.logger.Warn("benchmark cache write failed",
			zap.String("sector", bm.SectorCode),
			zap.Error(err))
	}
}

// Close closes the Redis client if this cache created it
func (c *RedisBenchmarkCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}
