package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rebechilabs/tributalks/internal/domain/analysis"
	"github.com/shopspring/decimal"
)

// AnalysisResultModel is the persistence model for a computed analysis.
// One row per (user, period) key; recomputation replaces the whole row.
type AnalysisResultModel struct {
	ID          uuid.UUID           `gorm:"type:uuid;primary_key"`
	UserID      uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_analysis_user_period,priority:1"`
	PeriodType  analysis.PeriodType `gorm:"type:varchar(10);not null;uniqueIndex:idx_analysis_user_period,priority:2"`
	PeriodYear  int                 `gorm:"not null;uniqueIndex:idx_analysis_user_period,priority:3"`
	PeriodMonth int                 `gorm:"not null;uniqueIndex:idx_analysis_user_period,priority:4"`
	SectorCode  string              `gorm:"type:varchar(50);index"`

	Inputs          analysis.FinancialInputs `gorm:"type:jsonb;not null"`
	Statement       analysis.Statement       `gorm:"type:jsonb;not null"`
	Diagnostics     analysis.Diagnostics     `gorm:"type:jsonb;not null;default:'[]'"`
	Recommendations analysis.Recommendations `gorm:"type:jsonb;not null;default:'[]'"`
	Reforma         analysis.ReformaImpact   `gorm:"type:jsonb;not null"`

	HealthScore  int                   `gorm:"not null"`
	HealthStatus analysis.HealthStatus `gorm:"type:varchar(20);not null;index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AnalysisResultModel) TableName() string {
	return "analysis_results"
}

// ToDomain converts the persistence model to a domain AnalysisResult.
func (m *AnalysisResultModel) ToDomain() *analysis.AnalysisResult {
	return &analysis.AnalysisResult{
		ID:     m.ID,
		UserID: m.UserID,
		Period: analysis.Period{
			Type:  m.PeriodType,
			Year:  m.PeriodYear,
			Month: m.PeriodMonth,
		},
		SectorCode:      m.SectorCode,
		Inputs:          m.Inputs,
		Statement:       m.Statement,
		HealthScore:     m.HealthScore,
		HealthStatus:    m.HealthStatus,
		Diagnostics:     m.Diagnostics,
		Recommendations: m.Recommendations,
		Reforma:         m.Reforma,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain AnalysisResult.
func (m *AnalysisResultModel) FromDomain(r *analysis.AnalysisResult) {
	m.ID = r.ID
	m.UserID = r.UserID
	m.PeriodType = r.Period.Type
	m.PeriodYear = r.Period.Year
	m.PeriodMonth = r.Period.Month
	m.SectorCode = r.SectorCode
	m.Inputs = r.Inputs
	m.Statement = r.Statement
	m.HealthScore = r.HealthScore
	m.HealthStatus = r.HealthStatus
	m.Diagnostics = r.Diagnostics
	m.Recommendations = r.Recommendations
	m.Reforma = r.Reforma
	m.CreatedAt = r.CreatedAt
	m.UpdatedAt = r.UpdatedAt
}

// SectorBenchmarkModel is the persistence model for sector benchmark
// reference data. Rows are seeded by migration and read-only at runtime.
type SectorBenchmarkModel struct {
	SectorCode         string          `gorm:"type:varchar(50);primary_key"`
	Name               string          `gorm:"type:varchar(200);not null"`
	GrossMarginPct     decimal.Decimal `gorm:"type:decimal(8,4);not null"`
	OperatingMarginPct decimal.Decimal `gorm:"type:decimal(8,4);not null"`
	NetMarginPct       decimal.Decimal `gorm:"type:decimal(8,4);not null"`
	EBITDAMarginPct    decimal.Decimal `gorm:"type:decimal(8,4);not null"`
	PayrollCostPct     decimal.Decimal `gorm:"type:decimal(8,4);not null"`
	RentCostPct        decimal.Decimal `gorm:"type:decimal(8,4);not null"`
	CreatedAt          time.Time       `gorm:"not null"`
	UpdatedAt          time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SectorBenchmarkModel) TableName() string {
	return "sector_benchmarks"
}

// ToDomain converts the persistence model to a domain Benchmark.
func (m *SectorBenchmarkModel) ToDomain() *analysis.Benchmark {
	return &analysis.Benchmark{
		SectorCode:         m.SectorCode,
		Name:               m.Name,
		GrossMarginPct:     m.GrossMarginPct,
		OperatingMarginPct: m.OperatingMarginPct,
		NetMarginPct:       m.NetMarginPct,
		EBITDAMarginPct:    m.EBITDAMarginPct,
		PayrollCostPct:     m.PayrollCostPct,
		RentCostPct:        m.RentCostPct,
	}
}

// FromDomain populates the persistence model from a domain Benchmark.
func (m *SectorBenchmarkModel) FromDomain(b *analysis.Benchmark) {
	m.SectorCode = b.SectorCode
	m.Name = b.Name
	m.GrossMarginPct = b.GrossMarginPct
	m.OperatingMarginPct = b.OperatingMarginPct
	m.NetMarginPct = b.NetMarginPct
	m.EBITDAMarginPct = b.EBITDAMarginPct
	m.PayrollCostPct = b.PayrollCostPct
	m.RentCostPct = b.RentCostPct
}
