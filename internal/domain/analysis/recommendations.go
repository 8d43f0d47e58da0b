package analysis

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
)

// Recommendation is one prioritized action. Lower priority means more urgent.
type Recommendation struct {
	Priority int            `json:"priority"`
	Action   string         `json:"action"`
	Impact   string         `json:"impact"`
	Area     DiagnosticArea `json:"area"`
}

// Recommendations is a JSON-persistable ranked action list.
type Recommendations []Recommendation

// Value implements driver.Valuer so the list persists as a JSON column.
func (r Recommendations) Value() (driver.Value, error) {
	if r == nil {
		r = Recommendations{}
	}
	return json.Marshal(r)
}

// Scan implements sql.Scanner for reading the JSON column back.
func (r *Recommendations) Scan(value interface{}) error {
	return scanJSON(value, r)
}

// maxRecommendations caps the returned list.
const maxRecommendations = 5

// BuildRecommendations assembles the ranked action list: one entry per
// critical finding (priority 1), one per warning (priority 2), then the
// generic pricing-gap and break-even safety-margin rules. The result is
// stable-sorted by priority and truncated to five, so ties keep the order
// the rules were evaluated in.
func BuildRecommendations(diags Diagnostics, st Statement, bm Benchmark) Recommendations {
	recs := make(Recommendations, 0, len(diags)+2)

	for _, d := range diags {
		if d.Status == StatusCritical {
			recs = append(recs, Recommendation{
				Priority: 1,
				Action:   d.Recommendation,
				Impact:   "Alto impacto na saúde financeira",
				Area:     d.Area,
			})
		}
	}
	for _, d := range diags {
		if d.Status == StatusWarning {
			recs = append(recs, Recommendation{
				Priority: 2,
				Action:   d.Recommendation,
				Impact:   "Impacto moderado na saúde financeira",
				Area:     d.Area,
			})
		}
	}

	if st.GrossMarginPct.LessThan(bm.GrossMarginPct) {
		gap := bm.GrossMarginPct.Sub(st.GrossMarginPct)
		recs = append(recs, Recommendation{
			Priority: 2,
			Action:   "Reavalie sua precificação para aproximar a margem bruta da média do setor",
			Impact:   fmt.Sprintf("Potencial de recuperar %s pontos percentuais de margem", gap.StringFixed(1)),
			Area:     AreaProfitability,
		})
	}

	if st.BreakEvenRevenue.IsPositive() &&
		st.NetRevenue.LessThan(st.BreakEvenRevenue.Mul(breakEvenSafetyFactor)) {
		recs = append(recs, Recommendation{
			Priority: 1,
			Action:   "Construa uma margem de segurança de caixa: sua receita está muito próxima do ponto de equilíbrio",
			Impact:   fmt.Sprintf("Ponto de equilíbrio em %s de receita líquida", st.BreakEvenRevenue.StringFixed(2)),
			Area:     AreaFinancial,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority < recs[j].Priority
	})
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}
