package analysis

import (
	"context"

	"github.com/google/uuid"
)

// BenchmarkRepository reads sector benchmark reference data.
// A missing sector is (nil, nil), never an error.
type BenchmarkRepository interface {
	FindBySector(ctx context.Context, sectorCode string) (*Benchmark, error)
}

// AnalysisResultRepository persists computed results.
type AnalysisResultRepository interface {
	// Upsert replaces the full row for the result's (user, period) key,
	// creating it on first computation. Idempotent for identical input.
	Upsert(ctx context.Context, result *AnalysisResult) error

	// Update overwrites the row identified by result.ID in place.
	Update(ctx context.Context, result *AnalysisResult) error

	// FindByID returns the result owned by userID, or nil when absent.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*AnalysisResult, error)

	// FindByPeriod returns the result stored for the composite key, or nil.
	FindByPeriod(ctx context.Context, userID uuid.UUID, period Period) (*AnalysisResult, error)

	// ListByUser returns the user's results newest first, with total count.
	ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]AnalysisResult, int64, error)
}
