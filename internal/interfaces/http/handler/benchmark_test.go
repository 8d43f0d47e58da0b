package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analysisdomain "github.com/rebechilabs/tributalks/internal/domain/analysis"
)

func TestBenchmarkHandler_Get(t *testing.T) {
	userID := uuid.New()

	t.Run("returns the sector benchmark", func(t *testing.T) {
		benchmarks := &fakeBenchmarkRepo{benchmark: &analysisdomain.Benchmark{
			SectorCode:     "comercio",
			Name:           "Comércio",
			GrossMarginPct: decimal.NewFromInt(30),
		}}
		router, _ := newAnalysisRouter(userID, nil, benchmarks)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/benchmarks/comercio", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data analysisdomain.Benchmark `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "comercio", resp.Data.SectorCode)
		assert.True(t, resp.Data.GrossMarginPct.Equal(decimal.NewFromInt(30)))
	})

	t.Run("falls back to the default benchmark for unknown sectors", func(t *testing.T) {
		router, _ := newAnalysisRouter(userID, nil, &fakeBenchmarkRepo{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/benchmarks/mineracao", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data analysisdomain.Benchmark `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		fallback := analysisdomain.DefaultBenchmark()
		assert.Equal(t, fallback.SectorCode, resp.Data.SectorCode)
		assert.True(t, resp.Data.GrossMarginPct.Equal(fallback.GrossMarginPct))
	})
}
