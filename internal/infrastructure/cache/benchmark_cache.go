package cache

import (
	"context"

	"github.com/rebechilabs/tributalks/internal/domain/analysis"
)

// BenchmarkCache caches sector benchmark reference data. Benchmarks change
// only on migration, so entries may be served stale for up to one TTL.
type BenchmarkCache interface {
	// Get returns the cached benchmark and whether it was present.
	Get(ctx context.Context, sectorCode string) (*analysis.Benchmark, bool)

	// Set stores a benchmark under its sector code.
	Set(ctx context.Context, bm *analysis.Benchmark)

	// Close releases any resources held by the cache.
	Close() error
}

func benchmarkCacheKey(sectorCode string) string {
	return "benchmark:sector:" + sectorCode
}
