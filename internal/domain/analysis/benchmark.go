package analysis

import "github.com/shopspring/decimal"

// Benchmark holds sector-average margins and typical cost ratios used to
// grade a derived statement. Read-only reference data.
type Benchmark struct {
	SectorCode         string          `json:"sector_code"`
	Name               string          `json:"name"`
	GrossMarginPct     decimal.Decimal `json:"gross_margin_pct"`
	OperatingMarginPct decimal.Decimal `json:"operating_margin_pct"`
	NetMarginPct       decimal.Decimal `json:"net_margin_pct"`
	EBITDAMarginPct    decimal.Decimal `json:"ebitda_margin_pct"`
	PayrollCostPct     decimal.Decimal `json:"payroll_cost_pct"`
	RentCostPct        decimal.Decimal `json:"rent_cost_pct"`
}

// DefaultBenchmark is the fallback applied whenever no sector record exists.
// Absence of benchmark data degrades to these generic averages, never to an
// error.
func DefaultBenchmark() Benchmark {
	return Benchmark{
		SectorCode:         "",
		Name:               "Geral",
		GrossMarginPct:     decimal.NewFromInt(35),
		OperatingMarginPct: decimal.NewFromInt(12),
		NetMarginPct:       decimal.NewFromInt(8),
		EBITDAMarginPct:    decimal.NewFromInt(15),
		PayrollCostPct:     decimal.NewFromInt(25),
		RentCostPct:        decimal.NewFromInt(8),
	}
}
