package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping() error { return f.err }

func newSystemRouter(db Pinger) *gin.Engine {
	router := gin.New()
	api := router.Group("/api/v1")
	NewSystemHandler(db, "1.2.3").RegisterRoutes(api)
	return router
}

func TestSystemHandler_Health(t *testing.T) {
	t.Run("reports ok when the database answers", func(t *testing.T) {
		router := newSystemRouter(&fakePinger{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data HealthResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Data.Status)
		assert.Equal(t, "ok", resp.Data.Database)
		assert.Equal(t, "1.2.3", resp.Data.Version)
		assert.NotEmpty(t, resp.Data.GoVersion)
	})

	t.Run("degrades when the database is unreachable", func(t *testing.T) {
		router := newSystemRouter(&fakePinger{err: errors.New("connection refused")})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		var resp struct {
			Data HealthResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "degraded", resp.Data.Status)
		assert.Equal(t, "unreachable", resp.Data.Database)
	})

	t.Run("tolerates a nil database", func(t *testing.T) {
		router := newSystemRouter(nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
