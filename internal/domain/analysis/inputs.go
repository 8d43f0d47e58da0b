package analysis

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RegimeTributario identifies the tax regime a business operates under.
type RegimeTributario string

const (
	// RegimeSimples is the Simples Nacional bundled-rate regime.
	RegimeSimples RegimeTributario = "SIMPLES"
	// RegimePresumido is the Lucro Presumido (presumed profit) regime.
	RegimePresumido RegimeTributario = "PRESUMIDO"
	// RegimeReal is the Lucro Real (actual profit) regime.
	RegimeReal RegimeTributario = "REAL"
)

// IsValid checks if the regime code is one of the known regimes.
func (r RegimeTributario) IsValid() bool {
	switch r {
	case RegimeSimples, RegimePresumido, RegimeReal:
		return true
	}
	return false
}

// String returns the string representation of the regime.
func (r RegimeTributario) String() string {
	return string(r)
}

// PeriodType distinguishes monthly from annual analysis periods.
type PeriodType string

const (
	PeriodMonthly PeriodType = "MONTHLY"
	PeriodAnnual  PeriodType = "ANNUAL"
)

// IsValid checks if the period type is known.
func (p PeriodType) IsValid() bool {
	return p == PeriodMonthly || p == PeriodAnnual
}

// Period identifies the time window an analysis covers.
// Annual periods store Month as zero.
type Period struct {
	Type  PeriodType `json:"type"`
	Year  int        `json:"year"`
	Month int        `json:"month"`
}

// CurrentMonthPeriod builds the default period for a request that omits one.
func CurrentMonthPeriod(now time.Time) Period {
	return Period{
		Type:  PeriodMonthly,
		Year:  now.Year(),
		Month: int(now.Month()),
	}
}

// Validate checks period type, year and month consistency.
func (p Period) Validate() error {
	if !p.Type.IsValid() {
		return fmt.Errorf("invalid period type %q", p.Type)
	}
	if p.Year < 2000 || p.Year > 2100 {
		return fmt.Errorf("period year %d out of range", p.Year)
	}
	switch p.Type {
	case PeriodMonthly:
		if p.Month < 1 || p.Month > 12 {
			return fmt.Errorf("period month %d out of range", p.Month)
		}
	case PeriodAnnual:
		if p.Month != 0 {
			return fmt.Errorf("annual period must not carry a month")
		}
	}
	return nil
}

// FinancialInputs holds the raw monetary values submitted for one period.
// All monetary fields default to zero when absent. Negative values are not
// rejected at this layer; derived ratios guard their denominators instead.
type FinancialInputs struct {
	// Revenues
	ProductSales   decimal.Decimal `json:"product_sales"`
	ServiceSales   decimal.Decimal `json:"service_sales"`
	OtherRevenue   decimal.Decimal `json:"other_revenue"`
	SalesReturns   decimal.Decimal `json:"sales_returns"`
	SalesDiscounts decimal.Decimal `json:"sales_discounts"`

	// Direct (production) costs
	MerchandiseCost    decimal.Decimal `json:"merchandise_cost"`
	MaterialsCost      decimal.Decimal `json:"materials_cost"`
	DirectLabor        decimal.Decimal `json:"direct_labor"`
	ThirdPartyServices decimal.Decimal `json:"third_party_services"`

	// Operating expenses (non-production)
	PayrollAndCharges decimal.Decimal `json:"payroll_and_charges"`
	OwnerCompensation decimal.Decimal `json:"owner_compensation"`
	Rent              decimal.Decimal `json:"rent"`
	Utilities         decimal.Decimal `json:"utilities"`
	Marketing         decimal.Decimal `json:"marketing"`
	Software          decimal.Decimal `json:"software"`
	ProfessionalFees  decimal.Decimal `json:"professional_fees"`
	Travel            decimal.Decimal `json:"travel"`
	Maintenance       decimal.Decimal `json:"maintenance"`
	Freight           decimal.Decimal `json:"freight"`
	OtherExpenses     decimal.Decimal `json:"other_expenses"`

	// Financial items
	InterestPaid     decimal.Decimal `json:"interest_paid"`
	InterestReceived decimal.Decimal `json:"interest_received"`
	BankFees         decimal.Decimal `json:"bank_fees"`
	Fines            decimal.Decimal `json:"fines"`

	// Sales tax over revenue: either supplied explicitly or derived from
	// the regime rate table when AutoComputeSalesTax is set.
	SalesTax            decimal.Decimal  `json:"sales_tax"`
	Regime              RegimeTributario `json:"regime"`
	AutoComputeSalesTax bool             `json:"auto_compute_sales_tax"`
}

// Value implements driver.Valuer so inputs persist as a JSON column.
func (i FinancialInputs) Value() (driver.Value, error) {
	return json.Marshal(i)
}

// Scan implements sql.Scanner for reading the JSON column back.
func (i *FinancialInputs) Scan(value interface{}) error {
	return scanJSON(value, i)
}

// scanJSON decodes a JSON database value into dst, accepting both the
// []byte and string representations drivers produce.
func scanJSON(value interface{}, dst interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported JSON column type %T", value)
	}
}
