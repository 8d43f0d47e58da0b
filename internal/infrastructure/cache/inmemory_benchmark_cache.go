package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rebechilabs/tributalks/internal/domain/analysis"
	"go.uber.org/zap"
)

const defaultCleanupInterval = 30 * time.Second

// InMemoryBenchmarkCache implements BenchmarkCache with process-local storage.
// Suitable for single-instance deployments and tests.
type InMemoryBenchmarkCache struct {
	entries sync.Map // map[string]*benchmarkEntry
	ttl     time.Duration
	logger  *zap.Logger
	stopCh  chan struct{}
	stopped int32

	hits   int64
	misses int64
}

type benchmarkEntry struct {
	value     *analysis.Benchmark
	expiresAt time.Time
}

func (e *benchmarkEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// InMemoryBenchmarkCacheOption is a functional option for configuring the cache
type InMemoryBenchmarkCacheOption func(*InMemoryBenchmarkCache)

// WithInMemoryLogger sets the logger for the cache
func WithInMemoryLogger(logger *zap.Logger) InMemoryBenchmarkCacheOption {
	return func(c *InMemoryBenchmarkCache) {
		c.logger = logger
	}
}

// NewInMemoryBenchmarkCache creates a new in-memory benchmark cache
func NewInMemoryBenchmarkCache(ttl time.Duration, opts ...InMemoryBenchmarkCacheOption) *InMemoryBenchmarkCache {
	c := &InMemoryBenchmarkCache{
		ttl:    ttl,
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	go c.cleanupExpired()
	return c
}

// Get returns the cached benchmark and whether it was present
func (c *InMemoryBenchmarkCache) Get(_ context.Context, sectorCode string) (*analysis.Benchmark, bool) {
	v, ok := c.entries.Load(benchmarkCacheKey(sectorCode))
	if !ok {
		atomic.AddInt64(&c.misses, 1)
		return nil, false
	}

	entry := v.(*benchmarkEntry)
	if entry.isExpired() {
		c.entries.Delete(benchmarkCacheKey(sectorCode))
		atomic.AddInt64(&c.misses, 1)
		return nil, false
	}

	atomic.AddInt64(&c.hits, 1)
	return entry.value, true
}

// Set stores a benchmark under its sector code
func (c *InMemoryBenchmarkCache) Set(_ context.Context, bm *analysis.Benchmark) {
	if bm == nil {
		return
	}
	c.entries.Store(benchmarkCacheKey(bm.SectorCode), &benchmarkEntry{
		value:     bm,
		expiresAt: time.Now().Add(c.ttl),
	})
}

// Close stops the cleanup goroutine
func (c *InMemoryBenchmarkCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// Stats returns hit and miss counters
func (c *InMemoryBenchmarkCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

func (c *InMemoryBenchmarkCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.entries.Range(func(key, value any) bool {
				if value.(*benchmarkEntry).isExpired() {
					c.entries.Delete(key)
				}
				return true
			})
		}
	}
}
