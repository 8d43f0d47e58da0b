package analysis

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// DiagnosticStatus is the severity tier of a finding, ordered
// CRITICAL < WARNING < OK < EXCELLENT.
type DiagnosticStatus string

const (
	StatusCritical  DiagnosticStatus = "CRITICAL"
	StatusWarning   DiagnosticStatus = "WARNING"
	StatusOK        DiagnosticStatus = "OK"
	StatusExcellent DiagnosticStatus = "EXCELLENT"
)

// IsValid checks if the status is a known tier.
func (s DiagnosticStatus) IsValid() bool {
	switch s {
	case StatusCritical, StatusWarning, StatusOK, StatusExcellent:
		return true
	}
	return false
}

// String returns the string representation of the status.
func (s DiagnosticStatus) String() string { return string(s) }

// DiagnosticArea tags the aspect of the business a finding refers to.
type DiagnosticArea string

const (
	AreaProfitability DiagnosticArea = "profitability"
	AreaCosts         DiagnosticArea = "costs"
	AreaFinancial     DiagnosticArea = "financial"
	AreaResult        DiagnosticArea = "result"
	AreaStructure     DiagnosticArea = "structure"
)

// Diagnostic is one finding produced by the rule battery. Findings carry no
// persisted identity; the whole list is rebuilt on every computation.
type Diagnostic struct {
	Area           DiagnosticArea   `json:"area"`
	Status         DiagnosticStatus `json:"status"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Recommendation string           `json:"recommendation"`
	Icon           string           `json:"icon,omitempty"`
}

// Diagnostics is a JSON-persistable list of findings.
type Diagnostics []Diagnostic

// Value implements driver.Valuer so findings persist as a JSON column.
func (d Diagnostics) Value() (driver.Value, error) {
	if d == nil {
		d = Diagnostics{}
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner for reading the JSON column back.
func (d *Diagnostics) Scan(value interface{}) error {
	return scanJSON(value, d)
}

// Threshold gaps in percentage points.
var (
	gapCritical       = decimal.NewFromInt(10)
	gapWarning        = decimal.NewFromInt(5)
	gapExcellent      = decimal.NewFromInt(5)
	payrollCritical   = decimal.NewFromInt(50)
	payrollWarning    = decimal.NewFromInt(40)
	financialCritical = decimal.NewFromInt(5)
	financialWarning  = decimal.NewFromInt(3)
	rentWarning       = decimal.NewFromInt(15)
)

// RunDiagnostics evaluates the fixed, non-short-circuiting rule battery:
// profitability, costs, financial, result, structure — in that order. Within
// one area at most one tier fires; the output preserves evaluation order.
func RunDiagnostics(st Statement, in FinancialInputs, bm Benchmark) Diagnostics {
	diags := make(Diagnostics, 0, 5)

	diags = append(diags, profitabilityDiagnostic(st, bm))
	if d, ok := costsDiagnostic(st, in); ok {
		diags = append(diags, d)
	}
	if d, ok := financialDiagnostic(st, in); ok {
		diags = append(diags, d)
	}
	if d, ok := resultDiagnostic(st, bm); ok {
		diags = append(diags, d)
	}
	if d, ok := structureDiagnostic(st, in); ok {
		diags = append(diags, d)
	}

	return diags
}

// profitabilityDiagnostic grades gross margin against the sector average.
// It always yields a finding: one of the four tiers applies.
func profitabilityDiagnostic(st Statement, bm Benchmark) Diagnostic {
	gap := bm.GrossMarginPct.Sub(st.GrossMarginPct)
	actual := pct(st.GrossMarginPct)
	sector := pct(bm.GrossMarginPct)

	switch {
	case gap.GreaterThan(gapCritical):
		return Diagnostic{
			Area:           AreaProfitability,
			Status:         StatusCritical,
			Title:          "Margem bruta muito abaixo do setor",
			Description:    fmt.Sprintf("Sua margem bruta é de %s, enquanto a média do setor é %s.", actual, sector),
			Recommendation: "Revise sua política de preços e renegocie custos diretos com fornecedores.",
			Icon:           "trending-down",
		}
	case gap.GreaterThan(gapWarning):
		return Diagnostic{
			Area:           AreaProfitability,
			Status:         StatusWarning,
			Title:          "Margem bruta abaixo do setor",
			Description:    fmt.Sprintf("Sua margem bruta é de %s, abaixo da média do setor de %s.", actual, sector),
			Recommendation: "Avalie pequenos reajustes de preço e reduções de custo direto.",
			Icon:           "trending-down",
		}
	case st.GrossMarginPct.Sub(bm.GrossMarginPct).GreaterThanOrEqual(gapExcellent):
		return Diagnostic{
			Area:           AreaProfitability,
			Status:         StatusExcellent,
			Title:          "Margem bruta excelente",
			Description:    fmt.Sprintf("Sua margem bruta de %s supera a média do setor de %s.", actual, sector),
			Recommendation: "Mantenha a disciplina de preços e custos que sustenta essa margem.",
			Icon:           "trending-up",
		}
	default:
		return Diagnostic{
			Area:           AreaProfitability,
			Status:         StatusOK,
			Title:          "Margem bruta adequada",
			Description:    fmt.Sprintf("Sua margem bruta de %s está em linha com a média do setor de %s.", actual, sector),
			Recommendation: "Acompanhe a margem mensalmente para detectar desvios cedo.",
			Icon:           "check-circle",
		}
	}
}

// costsDiagnostic grades the people-cost weight over net revenue. Direct
// labor stays out of this ratio: it is a production cost already subtracted
// in the cost of goods.
func costsDiagnostic(st Statement, in FinancialInputs) (Diagnostic, bool) {
	if !st.NetRevenue.IsPositive() {
		return Diagnostic{}, false
	}
	ratio := marginPct(in.PayrollAndCharges.Add(in.OwnerCompensation), st.NetRevenue)

	switch {
	case ratio.GreaterThan(payrollCritical):
		return Diagnostic{
			Area:           AreaCosts,
			Status:         StatusCritical,
			Title:          "Folha de pagamento comprometendo o caixa",
			Description:    fmt.Sprintf("Folha e pró-labore consomem %s da receita líquida, acima do limite saudável de 50%%.", pct(ratio)),
			Recommendation: "Reavalie o quadro de pessoal e a retirada dos sócios em relação ao faturamento.",
			Icon:           "users",
		}, true
	case ratio.GreaterThan(payrollWarning):
		return Diagnostic{
			Area:           AreaCosts,
			Status:         StatusWarning,
			Title:          "Folha de pagamento elevada",
			Description:    fmt.Sprintf("Folha e pró-labore consomem %s da receita líquida, acima dos 40%% recomendados.", pct(ratio)),
			Recommendation: "Monitore a produtividade da equipe antes de novas contratações.",
			Icon:           "users",
		}, true
	}
	return Diagnostic{}, false
}

// financialDiagnostic grades financial expenses, only when the net financial
// result is negative.
func financialDiagnostic(st Statement, in FinancialInputs) (Diagnostic, bool) {
	if !st.NetRevenue.IsPositive() || !st.NetFinancialResult.IsNegative() {
		return Diagnostic{}, false
	}
	ratio := marginPct(in.InterestPaid.Add(in.BankFees).Add(in.Fines), st.NetRevenue)

	switch {
	case ratio.GreaterThan(financialCritical):
		return Diagnostic{
			Area:           AreaFinancial,
			Status:         StatusCritical,
			Title:          "Despesas financeiras críticas",
			Description:    fmt.Sprintf("Juros, tarifas e multas consomem %s da receita líquida.", pct(ratio)),
			Recommendation: "Renegocie dívidas e tarifas bancárias com urgência; busque linhas mais baratas.",
			Icon:           "alert-triangle",
		}, true
	case ratio.GreaterThan(financialWarning):
		return Diagnostic{
			Area:           AreaFinancial,
			Status:         StatusWarning,
			Title:          "Despesas financeiras elevadas",
			Description:    fmt.Sprintf("Juros, tarifas e multas consomem %s da receita líquida.", pct(ratio)),
			Recommendation: "Compare tarifas entre bancos e evite o uso recorrente de crédito rotativo.",
			Icon:           "alert-triangle",
		}, true
	}
	return Diagnostic{}, false
}

// resultDiagnostic grades the bottom line: loss is always critical; otherwise
// the net margin is compared against the sector average.
func resultDiagnostic(st Statement, bm Benchmark) (Diagnostic, bool) {
	if st.NetProfit.IsNegative() {
		return Diagnostic{
			Area:           AreaResult,
			Status:         StatusCritical,
			Title:          "Prejuízo no período",
			Description:    fmt.Sprintf("O resultado líquido foi negativo, com margem de %s.", pct(st.NetMarginPct)),
			Recommendation: "Corte despesas não essenciais e revise preços para voltar ao lucro.",
			Icon:           "x-circle",
		}, true
	}

	gap := bm.NetMarginPct.Sub(st.NetMarginPct)
	switch {
	case gap.GreaterThan(gapWarning):
		return Diagnostic{
			Area:           AreaResult,
			Status:         StatusWarning,
			Title:          "Lucro abaixo do setor",
			Description:    fmt.Sprintf("Sua margem líquida é de %s, abaixo da média do setor de %s.", pct(st.NetMarginPct), pct(bm.NetMarginPct)),
			Recommendation: "Investigue onde o lucro está sendo consumido entre a margem bruta e a linha final.",
			Icon:           "dollar-sign",
		}, true
	case st.NetMarginPct.Sub(bm.NetMarginPct).GreaterThanOrEqual(gapExcellent):
		return Diagnostic{
			Area:           AreaResult,
			Status:         StatusExcellent,
			Title:          "Lucratividade excelente",
			Description:    fmt.Sprintf("Sua margem líquida de %s supera a média do setor de %s.", pct(st.NetMarginPct), pct(bm.NetMarginPct)),
			Recommendation: "Considere reinvestir parte do lucro em crescimento ou reserva de caixa.",
			Icon:           "award",
		}, true
	}
	return Diagnostic{}, false
}

// structureDiagnostic flags a rent burden above 15% of net revenue.
func structureDiagnostic(st Statement, in FinancialInputs) (Diagnostic, bool) {
	if !st.NetRevenue.IsPositive() {
		return Diagnostic{}, false
	}
	ratio := marginPct(in.Rent, st.NetRevenue)
	if ratio.GreaterThan(rentWarning) {
		return Diagnostic{
			Area:           AreaStructure,
			Status:         StatusWarning,
			Title:          "Aluguel pesado para a operação",
			Description:    fmt.Sprintf("O aluguel consome %s da receita líquida, acima dos 15%% recomendados.", pct(ratio)),
			Recommendation: "Renegocie o contrato de aluguel ou avalie um ponto mais adequado ao faturamento.",
			Icon:           "home",
		}, true
	}
	return Diagnostic{}, false
}

// pct formats a percentage with one decimal place, e.g. "20.0%".
func pct(v decimal.Decimal) string {
	return v.StringFixed(1) + "%"
}
