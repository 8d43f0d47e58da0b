package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rebechilabs/tributalks/internal/domain/analysis"
	"github.com/rebechilabs/tributalks/internal/domain/shared"
	"github.com/rebechilabs/tributalks/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAnalysisResultRepository implements analysis.AnalysisResultRepository using GORM
type GormAnalysisResultRepository struct {
	db *gorm.DB
}

// NewGormAnalysisResultRepository creates a new GormAnalysisResultRepository
func NewGormAnalysisResultRepository(db *gorm.DB) *GormAnalysisResultRepository {
	return &GormAnalysisResultRepository{db: db}
}

var _ analysis.AnalysisResultRepository = (*GormAnalysisResultRepository)(nil)

// periodKeyColumns is the composite key that identifies one analysis row.
var periodKeyColumns = []clause.Column{
	{Name: "user_id"},
	{Name: "period_type"},
	{Name: "period_year"},
	{Name: "period_month"},
}

// upsertColumns are the columns replaced when a period is recomputed.
// The row identity (id, key columns, created_at) stays stable.
var upsertColumns = []string{
	"sector_code",
	"inputs",
	"statement",
	"diagnostics",
	"recommendations",
	"reforma",
	"health_score",
	"health_status",
	"updated_at",
}

// Upsert replaces the full row for the result's (user, period) key.
// When a row already exists, its id and created_at are preserved and
// copied back into the passed result.
func (r *GormAnalysisResultRepository) Upsert(ctx context.Context, result *analysis.AnalysisResult) error {
	var model models.AnalysisResultModel
	model.FromDomain(result)

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   periodKeyColumns,
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).
		Create(&model).Error
	if err != nil {
		return err
	}

	// The conflict path keeps the existing row identity, so read the row
	// back to hand the caller the stable id and created_at.
	var stored models.AnalysisResultModel
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND period_type = ? AND period_year = ? AND period_month = ?",
			result.UserID, result.Period.Type, result.Period.Year, result.Period.Month).
		First(&stored).Error
	if err != nil {
		return err
	}

	result.ID = stored.ID
	result.CreatedAt = stored.CreatedAt
	result.UpdatedAt = stored.UpdatedAt
	return nil
}

// Update overwrites the row identified by result.ID in place.
func (r *GormAnalysisResultRepository) Update(ctx context.Context, result *analysis.AnalysisResult) error {
	var model models.AnalysisResultModel
	model.FromDomain(result)

	tx := r.db.WithContext(ctx).
		Model(&models.AnalysisResultModel{}).
		Where("id = ? AND user_id = ?", result.ID, result.UserID).
		Select(append([]string{"period_type", "period_year", "period_month"}, upsertColumns...)).
		Updates(&model)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	result.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID returns the result owned by userID, or nil when absent.
func (r *GormAnalysisResultRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*analysis.AnalysisResult, error) {
	var model models.AnalysisResultModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPeriod returns the result stored for the composite key, or nil.
func (r *GormAnalysisResultRepository) FindByPeriod(ctx context.Context, userID uuid.UUID, period analysis.Period) (*analysis.AnalysisResult, error) {
	var model models.AnalysisResultModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND period_type = ? AND period_year = ? AND period_month = ?",
			userID, period.Type, period.Year, period.Month).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByUser returns the user's results newest first, with total count.
func (r *GormAnalysisResultRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]analysis.AnalysisResult, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.AnalysisResultModel{}).
		Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.AnalysisResultModel
	err := query.
		Order("period_year DESC, period_month DESC, updated_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	results := make([]analysis.AnalysisResult, 0, len(rows))
	for i := range rows {
		results = append(results, *rows[i].ToDomain())
	}
	return results, total, nil
}
