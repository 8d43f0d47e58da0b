package cache

import (
	"github.com/rebechilabs/tributalks/internal/infrastructure/config"
	"go.uber.org/zap"
)

// BenchmarkCacheFactory creates benchmark caches based on configuration
type BenchmarkCacheFactory struct {
	cacheConfig           config.CacheConfig
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// BenchmarkCacheFactoryOption is a functional option for configuring the factory
type BenchmarkCacheFactoryOption func(*BenchmarkCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) BenchmarkCacheFactoryOption {
	return func(f *BenchmarkCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) BenchmarkCacheFactoryOption {
	return func(f *BenchmarkCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewBenchmarkCacheFactory creates a new factory
func NewBenchmarkCacheFactory(cacheCfg config.CacheConfig, redisCfg config.RedisConfig, opts ...BenchmarkCacheFactoryOption) *BenchmarkCacheFactory {
	f := &BenchmarkCacheFactory{
		cacheConfig:           cacheCfg,
		redisConfig:           redisCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateCache creates a benchmark cache per the configured cache type.
// A Redis cache that cannot connect degrades to in-memory when fallback
// is allowed.
func (f *BenchmarkCacheFactory) CreateCache() (BenchmarkCache, error) {
	if f.cacheConfig.Type != "redis" {
		return NewInMemoryBenchmarkCache(f.cacheConfig.BenchmarkTTL, WithInMemoryLogger(f.logger)), nil
	}

	redisCache, err := NewRedisBenchmarkCache(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}, f.cacheConfig.BenchmarkTTL, WithRedisLogger(f.logger))
	if err == nil {
		f.logger.Info("using Redis benchmark cache")
		return redisCache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, err
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory benchmark cache", zap.Error(err))
	return NewInMemoryBenchmarkCache(f.cacheConfig.BenchmarkTTL, WithInMemoryLogger(f.logger)), nil
}
