package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDiagnosticsProfitability(t *testing.T) {
	bm := DefaultBenchmark() // gross 35

	statementWithGrossMargin := func(pct float64) Statement {
		return Statement{NetRevenue: d(100000), GrossMarginPct: d(pct), NetMarginPct: d(8)}
	}

	cases := []struct {
		name     string
		margin   float64
		expected DiagnosticStatus
	}{
		{"more than 10pp below benchmark is critical", 20, StatusCritical},
		{"more than 5pp below benchmark is warning", 28, StatusWarning},
		{"5pp or more above benchmark is excellent", 40, StatusExcellent},
		{"close to benchmark is ok", 33, StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			diags := RunDiagnostics(statementWithGrossMargin(tc.margin), FinancialInputs{}, bm)
			require.NotEmpty(t, diags)
			assert.Equal(t, AreaProfitability, diags[0].Area)
			assert.Equal(t, tc.expected, diags[0].Status)
		})
	}

	t.Run("description embeds actual and benchmark percentages", func(t *testing.T) {
		diags := RunDiagnostics(statementWithGrossMargin(20), FinancialInputs{}, bm)
		assert.Contains(t, diags[0].Description, "20.0%")
		assert.Contains(t, diags[0].Description, "35.0%")
	})
}

func TestRunDiagnosticsCosts(t *testing.T) {
	bm := DefaultBenchmark()
	st := Statement{NetRevenue: d(100000), GrossMarginPct: d(35), NetMarginPct: d(8)}

	t.Run("payroll above 50 percent is critical", func(t *testing.T) {
		in := FinancialInputs{PayrollAndCharges: d(45000), OwnerCompensation: d(10000)}
		diags := RunDiagnostics(st, in, bm)
		found := findByArea(diags, AreaCosts)
		require.NotNil(t, found)
		assert.Equal(t, StatusCritical, found.Status)
		assert.Contains(t, found.Description, "55.0%")
	})

	t.Run("payroll above 40 percent is warning", func(t *testing.T) {
		in := FinancialInputs{PayrollAndCharges: d(42000)}
		diags := RunDiagnostics(st, in, bm)
		found := findByArea(diags, AreaCosts)
		require.NotNil(t, found)
		assert.Equal(t, StatusWarning, found.Status)
	})

	t.Run("direct labor is excluded from the ratio", func(t *testing.T) {
		in := FinancialInputs{PayrollAndCharges: d(30000), DirectLabor: d(30000)}
		diags := RunDiagnostics(st, in, bm)
		assert.Nil(t, findByArea(diags, AreaCosts))
	})

	t.Run("no finding below 40 percent", func(t *testing.T) {
		in := FinancialInputs{PayrollAndCharges: d(30000)}
		diags := RunDiagnostics(st, in, bm)
		assert.Nil(t, findByArea(diags, AreaCosts))
	})
}

func TestRunDiagnosticsFinancial(t *testing.T) {
	bm := DefaultBenchmark()

	t.Run("fires only when the net financial result is negative", func(t *testing.T) {
		st := Statement{NetRevenue: d(100000), GrossMarginPct: d(35), NetMarginPct: d(8), NetFinancialResult: d(100)}
		in := FinancialInputs{InterestPaid: d(6000)}
		diags := RunDiagnostics(st, in, bm)
		assert.Nil(t, findByArea(diags, AreaFinancial))
	})

	t.Run("above 5 percent is critical", func(t *testing.T) {
		st := Statement{NetRevenue: d(100000), GrossMarginPct: d(35), NetMarginPct: d(8), NetFinancialResult: d(-6000)}
		in := FinancialInputs{InterestPaid: d(4000), BankFees: d(1500), Fines: d(600)}
		diags := RunDiagnostics(st, in, bm)
		found := findByArea(diags, AreaFinancial)
		require.NotNil(t, found)
		assert.Equal(t, StatusCritical, found.Status)
	})

	t.Run("above 3 percent is warning", func(t *testing.T) {
		st := Statement{NetRevenue: d(100000), GrossMarginPct: d(35), NetMarginPct: d(8), NetFinancialResult: d(-3500)}
		in := FinancialInputs{InterestPaid: d(3500)}
		diags := RunDiagnostics(st, in, bm)
		found := findByArea(diags, AreaFinancial)
		require.NotNil(t, found)
		assert.Equal(t, StatusWarning, found.Status)
	})
}

func TestRunDiagnosticsResult(t *testing.T) {
	bm := DefaultBenchmark() // net 8

	t.Run("loss is critical", func(t *testing.T) {
		st := Statement{NetRevenue: d(100000), GrossMarginPct: d(35), NetProfit: d(-5000), NetMarginPct: d(-5)}
		diags := RunDiagnostics(st, FinancialInputs{}, bm)
		found := findByArea(diags, AreaResult)
		require.NotNil(t, found)
		assert.Equal(t, StatusCritical, found.Status)
	})

	t.Run("net margin more than 5pp below benchmark is warning", func(t *testing.T) {
		st := Statement{NetRevenue: d(100000), GrossMarginPct: d(35), NetProfit: d(2000), NetMarginPct: d(2)}
		diags := RunDiagnostics(st, FinancialInputs{}, bm)
		found := findByArea(diags, AreaResult)
		require.NotNil(t, found)
		assert.Equal(t, StatusWarning, found.Status)
	})

	t.Run("net margin 5pp or more above benchmark is excellent", func(t *testing.T) {
		st := Statement{NetRevenue: d(100000), GrossMarginPct: d(35), NetProfit: d(13000), NetMarginPct: d(13)}
		diags := RunDiagnostics(st, FinancialInputs{}, bm)
		found := findByArea(diags, AreaResult)
		require.NotNil(t, found)
		assert.Equal(t, StatusExcellent, found.Status)
	})

	t.Run("margin near benchmark yields no result finding", func(t *testing.T) {
		st := Statement{NetRevenue: d(100000), GrossMarginPct: d(35), NetProfit: d(8000), NetMarginPct: d(8)}
		diags := RunDiagnostics(st, FinancialInputs{}, bm)
		assert.Nil(t, findByArea(diags, AreaResult))
	})
}

func TestRunDiagnosticsStructure(t *testing.T) {
	bm := DefaultBenchmark()

	t.Run("rent above 15 percent of net revenue is warning", func(t *testing.T) {
		st := Statement{NetRevenue: d(100000), GrossMarginPct: d(35), NetMarginPct: d(8)}
		in := FinancialInputs{Rent: d(20000)}
		diags := RunDiagnostics(st, in, bm)
		found := findByArea(diags, AreaStructure)
		require.NotNil(t, found)
		assert.Equal(t, StatusWarning, found.Status)
		assert.Contains(t, found.Description, "20.0%")
	})

	t.Run("no finding at or below 15 percent", func(t *testing.T) {
		st := Statement{NetRevenue: d(100000), GrossMarginPct: d(35), NetMarginPct: d(8)}
		in := FinancialInputs{Rent: d(15000)}
		diags := RunDiagnostics(st, in, bm)
		assert.Nil(t, findByArea(diags, AreaStructure))
	})
}

func TestRunDiagnosticsZeroNetRevenue(t *testing.T) {
	bm := DefaultBenchmark()
	in := FinancialInputs{Rent: d(20000), PayrollAndCharges: d(50000), InterestPaid: d(9000)}
	st := DeriveStatement(in)
	require.True(t, st.NetRevenue.IsZero())

	diags := RunDiagnostics(st, in, bm)

	t.Run("revenue-ratio rules do not fire", func(t *testing.T) {
		assert.Nil(t, findByArea(diags, AreaCosts))
		assert.Nil(t, findByArea(diags, AreaFinancial))
		assert.Nil(t, findByArea(diags, AreaStructure))
	})

	t.Run("margin comparisons still fire without dividing", func(t *testing.T) {
		assert.NotNil(t, findByArea(diags, AreaProfitability))
		assert.NotNil(t, findByArea(diags, AreaResult))
	})
}

func TestRunDiagnosticsOrdering(t *testing.T) {
	bm := DefaultBenchmark()
	in := FinancialInputs{
		PayrollAndCharges: d(55000),
		Rent:              d(20000),
		InterestPaid:      d(9000),
	}
	st := Statement{
		NetRevenue:         d(100000),
		GrossMarginPct:     d(10),
		NetMarginPct:       d(-10),
		NetProfit:          d(-10000),
		NetFinancialResult: d(-9000),
	}
	diags := RunDiagnostics(st, in, bm)

	require.Len(t, diags, 5)
	expected := []DiagnosticArea{AreaProfitability, AreaCosts, AreaFinancial, AreaResult, AreaStructure}
	for i, area := range expected {
		assert.Equal(t, area, diags[i].Area, "position %d", i)
	}
}

func findByArea(diags Diagnostics, area DiagnosticArea) *Diagnostic {
	for i := range diags {
		if diags[i].Area == area {
			return &diags[i]
		}
	}
	return nil
}
