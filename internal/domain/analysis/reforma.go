package analysis

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Reform simulation rates.
var (
	// inputCreditRate approximates the PIS/COFINS credits a business
	// recovers over its direct costs under the current system.
	inputCreditRate = decimal.New(925, -4) // 9.25%
	// unifiedTaxRate is the projected flat CBS/IBS rate with full input
	// credits under the consumption-tax reform.
	unifiedTaxRate = decimal.New(265, -3) // 26.5%
)

// ReformaBreakdown exposes the nominal rates and credit amounts behind the
// comparison.
type ReformaBreakdown struct {
	CurrentRatePct decimal.Decimal `json:"current_rate_pct"`
	NewRatePct     decimal.Decimal `json:"new_rate_pct"`
	CurrentCredits decimal.Decimal `json:"current_credits"`
	NewCredits     decimal.Decimal `json:"new_credits"`
}

// ReformaImpact estimates the tax-burden shift from the current cumulative
// system to the unified consumption tax. A positive Impact means the new
// regime is cheaper.
type ReformaImpact struct {
	CurrentTaxBurden decimal.Decimal  `json:"current_tax_burden"`
	NewTaxBurden     decimal.Decimal  `json:"new_tax_burden"`
	Impact           decimal.Decimal  `json:"impact"`
	ImpactPct        decimal.Decimal  `json:"impact_pct"`
	Beneficial       bool             `json:"beneficial"`
	Breakdown        ReformaBreakdown `json:"breakdown"`
}

// Value implements driver.Valuer so the estimate persists as a JSON column.
func (r ReformaImpact) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements sql.Scanner for reading the JSON column back.
func (r *ReformaImpact) Scan(value interface{}) error {
	return scanJSON(value, r)
}

// SimulateReforma compares the current net tax burden against the unified
// consumption-tax model. Pure function over inputs and the derived statement.
func SimulateReforma(in FinancialInputs, st Statement) ReformaImpact {
	currentCredits := st.CostOfGoods.Mul(inputCreditRate)
	currentBurden := nonNegative(st.SalesTax.Sub(currentCredits))

	taxableRevenue := in.ProductSales.Add(in.ServiceSales)
	newGross := taxableRevenue.Mul(unifiedTaxRate)
	newCredits := st.CostOfGoods.Mul(unifiedTaxRate)
	newBurden := nonNegative(newGross.Sub(newCredits))

	impact := currentBurden.Sub(newBurden)

	impactPct := decimal.Zero
	if currentBurden.IsPositive() {
		impactPct = impact.Div(currentBurden).Mul(oneHundred)
	}

	currentRate := salesTaxRate(in.Regime).Mul(oneHundred)

	return ReformaImpact{
		CurrentTaxBurden: currentBurden,
		NewTaxBurden:     newBurden,
		Impact:           impact,
		ImpactPct:        impactPct,
		Beneficial:       impact.IsPositive(),
		Breakdown: ReformaBreakdown{
			CurrentRatePct: currentRate,
			NewRatePct:     unifiedTaxRate.Mul(oneHundred),
			CurrentCredits: currentCredits,
			NewCredits:     newCredits,
		},
	}
}

func nonNegative(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
