package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreHealth(t *testing.T) {
	t.Run("empty diagnostics yield the neutral default", func(t *testing.T) {
		score, status := ScoreHealth(nil)
		assert.Equal(t, 75, score)
		assert.Equal(t, HealthHealthy, status)
	})

	t.Run("single critical scores 10 and is critical", func(t *testing.T) {
		score, status := ScoreHealth(Diagnostics{{Status: StatusCritical}})
		assert.Equal(t, 10, score)
		assert.Equal(t, HealthCritical, status)
	})

	t.Run("mean is rounded", func(t *testing.T) {
		// (10 + 75) / 2 = 42.5 -> 43
		score, status := ScoreHealth(Diagnostics{{Status: StatusCritical}, {Status: StatusOK}})
		assert.Equal(t, 43, score)
		assert.Equal(t, HealthWarning, status)
	})

	t.Run("all excellent is excellent", func(t *testing.T) {
		score, status := ScoreHealth(Diagnostics{{Status: StatusExcellent}, {Status: StatusExcellent}})
		assert.Equal(t, 100, score)
		assert.Equal(t, HealthExcellent, status)
	})

	t.Run("score stays within bounds", func(t *testing.T) {
		combos := []Diagnostics{
			{{Status: StatusCritical}, {Status: StatusCritical}, {Status: StatusCritical}},
			{{Status: StatusWarning}, {Status: StatusExcellent}},
			{{Status: StatusOK}},
			{{Status: StatusCritical}, {Status: StatusExcellent}},
		}
		for _, diags := range combos {
			score, _ := ScoreHealth(diags)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		}
	})

	t.Run("status bands", func(t *testing.T) {
		cases := []struct {
			score    int
			expected HealthStatus
		}{
			{0, HealthCritical},
			{29, HealthCritical},
			{30, HealthWarning},
			{49, HealthWarning},
			{50, HealthHealthy},
			{79, HealthHealthy},
			{80, HealthExcellent},
			{100, HealthExcellent},
		}
		for _, tc := range cases {
			assert.Equal(t, tc.expected, healthStatusForScore(tc.score), "score %d", tc.score)
		}
	})
}
