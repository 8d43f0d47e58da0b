package cache

import (
	"context"

	"github.com/rebechilabs/tributalks/internal/domain/analysis"
)

// CachedBenchmarkRepository decorates a BenchmarkRepository with a
// read-through cache. Only found benchmarks are cached; absent sectors
// always hit the store so new seed rows become visible immediately.
type CachedBenchmarkRepository struct {
	inner analysis.BenchmarkRepository
	cache BenchmarkCache
}

// NewCachedBenchmarkRepository wraps a repository with a cache
func NewCachedBenchmarkRepository(inner analysis.BenchmarkRepository, cache BenchmarkCache) *CachedBenchmarkRepository {
	return &CachedBenchmarkRepository{inner: inner, cache: cache}
}

var _ analysis.BenchmarkRepository = (*CachedBenchmarkRepository)(nil)

// FindBySector returns the benchmark for a sector, serving from cache
// when possible.
func (r *CachedBenchmarkRepository) FindBySector(ctx context.Context, sectorCode string) (*analysis.Benchmark, error) {
	if bm, ok := r.cache.Get(ctx, sectorCode); ok {
		return bm, nil
	}

	bm, err := r.inner.FindBySector(ctx, sectorCode)
	if err != nil {
		return nil, err
	}
	if bm != nil {
		r.cache.Set(ctx, bm)
	}
	return bm, nil
}
