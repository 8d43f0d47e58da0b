package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateReforma(t *testing.T) {
	t.Run("zero current burden yields zero impact percentage", func(t *testing.T) {
		in := FinancialInputs{Regime: RegimeSimples}
		st := DeriveStatement(in)
		impact := SimulateReforma(in, st)

		assert.True(t, impact.CurrentTaxBurden.IsZero())
		assert.True(t, impact.ImpactPct.IsZero())
		assert.False(t, impact.Beneficial)
	})

	t.Run("credits offset both burdens", func(t *testing.T) {
		in := FinancialInputs{
			ProductSales:        d(100000),
			MerchandiseCost:     d(40000),
			Regime:              RegimePresumido,
			AutoComputeSalesTax: true,
		}
		st := DeriveStatement(in)
		impact := SimulateReforma(in, st)

		// current: 9250 - 40000*9.25% = 9250 - 3700 = 5550
		assert.True(t, impact.CurrentTaxBurden.Equal(d(5550)), "current burden: %s", impact.CurrentTaxBurden)
		// new: 100000*26.5% - 40000*26.5% = 26500 - 10600 = 15900
		assert.True(t, impact.NewTaxBurden.Equal(d(15900)), "new burden: %s", impact.NewTaxBurden)
		assert.True(t, impact.Impact.Equal(d(-10350)), "impact: %s", impact.Impact)
		assert.False(t, impact.Beneficial)
	})

	t.Run("burdens never go below zero", func(t *testing.T) {
		in := FinancialInputs{
			ProductSales:    d(10000),
			MerchandiseCost: d(50000),
			Regime:          RegimeReal,
			SalesTax:        d(100),
		}
		st := DeriveStatement(in)
		impact := SimulateReforma(in, st)

		assert.True(t, impact.CurrentTaxBurden.IsZero())
		assert.True(t, impact.NewTaxBurden.IsZero())
	})

	t.Run("beneficial when the new regime is cheaper", func(t *testing.T) {
		// Other revenue is taxed today but stays outside the unified base
		in := FinancialInputs{
			ProductSales:        d(10000),
			OtherRevenue:        d(90000),
			Regime:              RegimePresumido,
			AutoComputeSalesTax: true,
		}
		st := DeriveStatement(in)
		impact := SimulateReforma(in, st)

		// current: 100000*9.25% = 9250; new: 10000*26.5% = 2650
		require.True(t, impact.CurrentTaxBurden.Equal(d(9250)), "current burden: %s", impact.CurrentTaxBurden)
		require.True(t, impact.NewTaxBurden.Equal(d(2650)), "new burden: %s", impact.NewTaxBurden)
		assert.True(t, impact.Impact.Equal(d(6600)), "impact: %s", impact.Impact)
		assert.True(t, impact.Beneficial)
	})

	t.Run("breakdown exposes nominal rates per regime", func(t *testing.T) {
		st := Statement{}
		simples := SimulateReforma(FinancialInputs{Regime: RegimeSimples}, st)
		assert.True(t, simples.Breakdown.CurrentRatePct.Equal(d(6)))
		assert.True(t, simples.Breakdown.NewRatePct.Equal(d(26.5)))

		real := SimulateReforma(FinancialInputs{Regime: RegimeReal}, st)
		assert.True(t, real.Breakdown.CurrentRatePct.Equal(d(9.25)))
	})

	t.Run("breakdown carries both credit amounts", func(t *testing.T) {
		in := FinancialInputs{ProductSales: d(100000), MerchandiseCost: d(20000), Regime: RegimeReal}
		st := DeriveStatement(in)
		impact := SimulateReforma(in, st)

		assert.True(t, impact.Breakdown.CurrentCredits.Equal(d(1850)), "current credits: %s", impact.Breakdown.CurrentCredits)
		assert.True(t, impact.Breakdown.NewCredits.Equal(d(5300)), "new credits: %s", impact.Breakdown.NewCredits)
	})
}
