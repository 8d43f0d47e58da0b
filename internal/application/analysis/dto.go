package analysis

import (
	"time"

	"github.com/google/uuid"
	analysisdomain "github.com/rebechilabs/tributalks/internal/domain/analysis"
)

// PeriodRequest selects the period an analysis covers. When omitted the
// current calendar month is assumed.
type PeriodRequest struct {
	Type  string `json:"type" binding:"omitempty,oneof=MONTHLY ANNUAL"`
	Year  int    `json:"year"`
	Month int    `json:"month"`
}

// AnalyzeRequest is the full computation request body.
type AnalyzeRequest struct {
	Inputs     analysisdomain.FinancialInputs `json:"inputs" binding:"required"`
	SectorCode string                         `json:"sector_code"`
	Period     *PeriodRequest                 `json:"period"`
	ExistingID *uuid.UUID                     `json:"existing_id"`
}

// AnalyzeResponse carries everything the computation produced, including the
// identity of the stored row.
type AnalyzeResponse struct {
	ResultID        uuid.UUID                      `json:"result_id"`
	Period          analysisdomain.Period          `json:"period"`
	Statement       analysisdomain.Statement       `json:"statement"`
	Diagnostics     analysisdomain.Diagnostics     `json:"diagnostics"`
	HealthScore     int                            `json:"health_score"`
	HealthStatus    analysisdomain.HealthStatus    `json:"health_status"`
	Recommendations analysisdomain.Recommendations `json:"recommendations"`
	ReformaImpact   analysisdomain.ReformaImpact   `json:"reforma_impact"`
	Benchmark       analysisdomain.Benchmark       `json:"benchmark"`
	CreatedAt       time.Time                      `json:"created_at"`
	UpdatedAt       time.Time                      `json:"updated_at"`
}

// ResultResponse is a stored result as returned by read endpoints.
type ResultResponse struct {
	ID              uuid.UUID                      `json:"id"`
	Period          analysisdomain.Period          `json:"period"`
	SectorCode      string                         `json:"sector_code,omitempty"`
	Inputs          analysisdomain.FinancialInputs `json:"inputs"`
	Statement       analysisdomain.Statement       `json:"statement"`
	HealthScore     int                            `json:"health_score"`
	HealthStatus    analysisdomain.HealthStatus    `json:"health_status"`
	Diagnostics     analysisdomain.Diagnostics     `json:"diagnostics"`
	Recommendations analysisdomain.Recommendations `json:"recommendations"`
	ReformaImpact   analysisdomain.ReformaImpact   `json:"reforma_impact"`
	CreatedAt       time.Time                      `json:"created_at"`
	UpdatedAt       time.Time                      `json:"updated_at"`
}

func toResultResponse(r *analysisdomain.AnalysisResult) *ResultResponse {
	return &ResultResponse{
		ID:              r.ID,
		Period:          r.Period,
		SectorCode:      r.SectorCode,
		Inputs:          r.Inputs,
		Statement:       r.Statement,
		HealthScore:     r.HealthScore,
		HealthStatus:    r.HealthStatus,
		Diagnostics:     r.Diagnostics,
		Recommendations: r.Recommendations,
		ReformaImpact:   r.Reforma,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
