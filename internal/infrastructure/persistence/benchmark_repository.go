package persistence

import (
	"context"
	"errors"

	"github.com/rebechilabs/tributalks/internal/domain/analysis"
	"github.com/rebechilabs/tributalks/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBenchmarkRepository implements analysis.BenchmarkRepository using GORM
type GormBenchmarkRepository struct {
	db *gorm.DB
}

// NewGormBenchmarkRepository creates a new GormBenchmarkRepository
func NewGormBenchmarkRepository(db *gorm.DB) *GormBenchmarkRepository {
	return &GormBenchmarkRepository{db: db}
}

var _ analysis.BenchmarkRepository = (*GormBenchmarkRepository)(nil)

// FindBySector returns the benchmark for a sector, or nil when the sector
// has no record. Absence is not an error; callers fall back to the default
// benchmark.
func (r *GormBenchmarkRepository) FindBySector(ctx context.Context, sectorCode string) (*analysis.Benchmark, error) {
	var model models.SectorBenchmarkModel
	err := r.db.WithContext(ctx).
		Where("sector_code = ?", sectorCode).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}
