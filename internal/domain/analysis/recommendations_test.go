package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRecommendations(t *testing.T) {
	bm := DefaultBenchmark()
	healthy := Statement{NetRevenue: d(100000), GrossMarginPct: d(40), BreakEvenRevenue: d(50000)}

	t.Run("critical findings rank before warnings", func(t *testing.T) {
		diags := Diagnostics{
			{Status: StatusWarning, Recommendation: "warn-1", Area: AreaCosts},
			{Status: StatusCritical, Recommendation: "crit-1", Area: AreaProfitability},
		}
		recs := BuildRecommendations(diags, healthy, bm)
		require.Len(t, recs, 2)
		assert.Equal(t, 1, recs[0].Priority)
		assert.Equal(t, "crit-1", recs[0].Action)
		assert.Equal(t, 2, recs[1].Priority)
		assert.Equal(t, "warn-1", recs[1].Action)
	})

	t.Run("pricing recommendation states the margin gap", func(t *testing.T) {
		st := Statement{NetRevenue: d(100000), GrossMarginPct: d(25), BreakEvenRevenue: d(50000)}
		recs := BuildRecommendations(nil, st, bm)
		require.NotEmpty(t, recs)
		found := false
		for _, r := range recs {
			if r.Area == AreaProfitability {
				assert.Contains(t, r.Impact, "10.0")
				assert.Equal(t, 2, r.Priority)
				found = true
			}
		}
		assert.True(t, found, "expected a pricing recommendation")
	})

	t.Run("liquidity recommendation fires inside the safety margin", func(t *testing.T) {
		// net revenue below 1.2x break-even
		st := Statement{NetRevenue: d(110000), GrossMarginPct: d(40), BreakEvenRevenue: d(100000)}
		recs := BuildRecommendations(nil, st, bm)
		require.NotEmpty(t, recs)
		assert.Equal(t, 1, recs[0].Priority)
		assert.Equal(t, AreaFinancial, recs[0].Area)
	})

	t.Run("liquidity recommendation needs a positive break-even", func(t *testing.T) {
		st := Statement{NetRevenue: d(0), GrossMarginPct: d(40), BreakEvenRevenue: d(0)}
		recs := BuildRecommendations(nil, st, bm)
		for _, r := range recs {
			assert.NotEqual(t, AreaFinancial, r.Area)
		}
	})

	t.Run("list is capped at five", func(t *testing.T) {
		diags := Diagnostics{
			{Status: StatusCritical, Recommendation: "c1", Area: AreaProfitability},
			{Status: StatusCritical, Recommendation: "c2", Area: AreaCosts},
			{Status: StatusCritical, Recommendation: "c3", Area: AreaFinancial},
			{Status: StatusWarning, Recommendation: "w1", Area: AreaResult},
			{Status: StatusWarning, Recommendation: "w2", Area: AreaStructure},
		}
		st := Statement{NetRevenue: d(50000), GrossMarginPct: d(10), BreakEvenRevenue: d(100000)}
		recs := BuildRecommendations(diags, st, bm)
		assert.Len(t, recs, maxRecommendations)
	})

	t.Run("sorted by non-decreasing priority", func(t *testing.T) {
		diags := Diagnostics{
			{Status: StatusWarning, Recommendation: "w1", Area: AreaCosts},
			{Status: StatusCritical, Recommendation: "c1", Area: AreaResult},
		}
		st := Statement{NetRevenue: d(110000), GrossMarginPct: d(20), BreakEvenRevenue: d(100000)}
		recs := BuildRecommendations(diags, st, bm)
		for i := 1; i < len(recs); i++ {
			assert.LessOrEqual(t, recs[i-1].Priority, recs[i].Priority)
		}
	})

	t.Run("ties preserve rule evaluation order", func(t *testing.T) {
		diags := Diagnostics{
			{Status: StatusCritical, Recommendation: "first critical", Area: AreaProfitability},
			{Status: StatusCritical, Recommendation: "second critical", Area: AreaResult},
		}
		recs := BuildRecommendations(diags, healthy, bm)
		require.GreaterOrEqual(t, len(recs), 2)
		assert.Equal(t, "first critical", recs[0].Action)
		assert.Equal(t, "second critical", recs[1].Action)
	})
}
