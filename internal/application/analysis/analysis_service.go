package analysis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rebechilabs/tributalks/internal/domain/shared"
	"go.uber.org/zap"

	analysisdomain "github.com/rebechilabs/tributalks/internal/domain/analysis"
)

// Service orchestrates one full computation: benchmark resolution, statement
// derivation, diagnostics, scoring, recommendations, reform simulation and
// the final upsert. The engine itself is pure; only the two store calls
// touch I/O.
type Service struct {
	benchmarks analysisdomain.BenchmarkRepository
	results    analysisdomain.AnalysisResultRepository
	logger     *zap.Logger
	now        func() time.Time
}

// NewService creates a new analysis Service.
func NewService(
	benchmarks analysisdomain.BenchmarkRepository,
	results analysisdomain.AnalysisResultRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		benchmarks: benchmarks,
		results:    results,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Analyze runs the full pipeline for one user and persists the outcome.
// A benchmark-store failure degrades to the default benchmark; a persistence
// failure fails the whole request so the returned result never diverges from
// the stored one.
func (s *Service) Analyze(ctx context.Context, userID uuid.UUID, req AnalyzeRequest) (*AnalyzeResponse, error) {
	if !req.Inputs.Regime.IsValid() {
		return nil, shared.ErrInvalidRegime
	}

	period, err := s.resolvePeriod(req.Period)
	if err != nil {
		return nil, shared.ErrInvalidPeriod
	}

	benchmark := s.resolveBenchmark(ctx, req.SectorCode)

	statement := analysisdomain.DeriveStatement(req.Inputs)
	diagnostics := analysisdomain.RunDiagnostics(statement, req.Inputs, benchmark)
	score, status := analysisdomain.ScoreHealth(diagnostics)
	recommendations := analysisdomain.BuildRecommendations(diagnostics, statement, benchmark)
	reforma := analysisdomain.SimulateReforma(req.Inputs, statement)

	result := &analysisdomain.AnalysisResult{
		UserID:          userID,
		Period:          period,
		SectorCode:      req.SectorCode,
		Inputs:          req.Inputs,
		Statement:       statement,
		HealthScore:     score,
		HealthStatus:    status,
		Diagnostics:     diagnostics,
		Recommendations: recommendations,
		Reforma:         reforma,
	}

	if req.ExistingID != nil {
		if err := s.updateExisting(ctx, userID, *req.ExistingID, result); err != nil {
			return nil, err
		}
	} else {
		result.ID = uuid.New()
		if err := s.results.Upsert(ctx, result); err != nil {
			s.logger.Error("failed to persist analysis result",
				zap.String("user_id", userID.String()),
				zap.Error(err))
			return nil, err
		}
	}

	return &AnalyzeResponse{
		ResultID:        result.ID,
		Period:          result.Period,
		Statement:       statement,
		Diagnostics:     diagnostics,
		HealthScore:     score,
		HealthStatus:    status,
		Recommendations: recommendations,
		ReformaImpact:   reforma,
		Benchmark:       benchmark,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// updateExisting overwrites a specific stored row after an ownership check.
func (s *Service) updateExisting(ctx context.Context, userID, existingID uuid.UUID, result *analysisdomain.AnalysisResult) error {
	existing, err := s.results.FindByID(ctx, userID, existingID)
	if err != nil {
		return err
	}
	if existing == nil {
		return shared.NewDomainError("NOT_FOUND", "Analysis result not found")
	}
	result.ID = existing.ID
	result.CreatedAt = existing.CreatedAt
	if err := s.results.Update(ctx, result); err != nil {
		s.logger.Error("failed to update analysis result",
			zap.String("result_id", existingID.String()),
			zap.Error(err))
		return err
	}
	return nil
}

// resolveBenchmark looks the sector up and falls back to the generic default
// on absence or store failure. Benchmark problems never fail a request.
func (s *Service) resolveBenchmark(ctx context.Context, sectorCode string) analysisdomain.Benchmark {
	if sectorCode == "" {
		return analysisdomain.DefaultBenchmark()
	}
	bm, err := s.benchmarks.FindBySector(ctx, sectorCode)
	if err != nil {
		s.logger.Warn("benchmark lookup failed, using default",
			zap.String("sector_code", sectorCode),
			zap.Error(err))
		return analysisdomain.DefaultBenchmark()
	}
	if bm == nil {
		return analysisdomain.DefaultBenchmark()
	}
	return *bm
}

func (s *Service) resolvePeriod(req *PeriodRequest) (analysisdomain.Period, error) {
	if req == nil {
		return analysisdomain.CurrentMonthPeriod(s.now()), nil
	}
	period := analysisdomain.Period{
		Type:  analysisdomain.PeriodType(req.Type),
		Year:  req.Year,
		Month: req.Month,
	}
	if period.Type == "" {
		period.Type = analysisdomain.PeriodMonthly
	}
	if err := period.Validate(); err != nil {
		return analysisdomain.Period{}, err
	}
	return period, nil
}

// GetResult fetches one stored result owned by the caller.
func (s *Service) GetResult(ctx context.Context, userID, id uuid.UUID) (*ResultResponse, error) {
	result, err := s.results.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Analysis result not found")
	}
	return toResultResponse(result), nil
}

// ListResults returns the caller's stored results, newest first.
func (s *Service) ListResults(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]ResultResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	results, total, err := s.results.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]ResultResponse, 0, len(results))
	for i := range results {
		responses = append(responses, *toResultResponse(&results[i]))
	}
	return responses, total, nil
}

// GetBenchmark exposes the benchmark used for a sector, including the
// default fallback, so callers can display what results are graded against.
func (s *Service) GetBenchmark(ctx context.Context, sectorCode string) analysisdomain.Benchmark {
	return s.resolveBenchmark(ctx, sectorCode)
}
