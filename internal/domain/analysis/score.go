package analysis

import "math"

// HealthStatus labels the aggregate score band.
type HealthStatus string

const (
	HealthCritical  HealthStatus = "CRITICAL"
	HealthWarning   HealthStatus = "WARNING"
	HealthHealthy   HealthStatus = "HEALTHY"
	HealthExcellent HealthStatus = "EXCELLENT"
)

// String returns the string representation of the status.
func (h HealthStatus) String() string { return string(h) }

// neutralScore applies when no diagnostic fired at all.
const neutralScore = 75

// tierPoints maps a finding's severity to score points.
func tierPoints(s DiagnosticStatus) int {
	switch s {
	case StatusCritical:
		return 10
	case StatusWarning:
		return 40
	case StatusExcellent:
		return 100
	default:
		return 75
	}
}

// ScoreHealth aggregates findings into a 0-100 score and its status band.
// An empty list yields the neutral 75 / HEALTHY default.
func ScoreHealth(diags Diagnostics) (int, HealthStatus) {
	if len(diags) == 0 {
		return neutralScore, HealthHealthy
	}

	total := 0
	for _, d := range diags {
		total += tierPoints(d.Status)
	}
	score := int(math.Round(float64(total) / float64(len(diags))))

	return score, healthStatusForScore(score)
}

func healthStatusForScore(score int) HealthStatus {
	switch {
	case score < 30:
		return HealthCritical
	case score < 50:
		return HealthWarning
	case score >= 80:
		return HealthExcellent
	default:
		return HealthHealthy
	}
}
