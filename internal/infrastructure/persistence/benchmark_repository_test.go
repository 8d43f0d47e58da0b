package persistence

import (
	"context"
	"testing"

	"github.com/rebechilabs/tributalks/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormBenchmarkRepository_FindBySector(t *testing.T) {
	db := setupAnalysisTestDB(t)
	repo := NewGormBenchmarkRepository(db)
	ctx := context.Background()

	seed := models.SectorBenchmarkModel{
		SectorCode:         "comercio",
		Name:               "Comércio",
		GrossMarginPct:     decimal.NewFromInt(30),
		OperatingMarginPct: decimal.NewFromInt(10),
		NetMarginPct:       decimal.NewFromInt(6),
		EBITDAMarginPct:    decimal.NewFromInt(12),
		PayrollCostPct:     decimal.NewFromInt(20),
		RentCostPct:        decimal.NewFromInt(10),
	}
	require.NoError(t, db.Create(&seed).Error)

	t.Run("returns the stored benchmark", func(t *testing.T) {
		bm, err := repo.FindBySector(ctx, "comercio")
		require.NoError(t, err)
		require.NotNil(t, bm)

		assert.Equal(t, "Comércio", bm.Name)
		assert.True(t, bm.GrossMarginPct.Equal(decimal.NewFromInt(30)))
		assert.True(t, bm.RentCostPct.Equal(decimal.NewFromInt(10)))
	})

	t.Run("returns nil without error for an unknown sector", func(t *testing.T) {
		bm, err := repo.FindBySector(ctx, "mineracao")
		require.NoError(t, err)
		assert.Nil(t, bm)
	})
}
