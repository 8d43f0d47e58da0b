package analysis

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisResult is the full computed and persisted outcome for one
// (user, period) key. Recomputing the same key overwrites the entire row;
// there is no partial-field merge.
type AnalysisResult struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Period       Period
	SectorCode   string
	Inputs       FinancialInputs
	Statement    Statement
	HealthScore  int
	HealthStatus HealthStatus

	Diagnostics     Diagnostics
	Recommendations Recommendations
	Reforma         ReformaImpact

	CreatedAt time.Time
	UpdatedAt time.Time
}
