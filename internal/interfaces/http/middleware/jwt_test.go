package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rebechilabs/tributalks/internal/infrastructure/auth"
	"github.com/rebechilabs/tributalks/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret: "middleware-test-secret-keep-it-long",
		Issuer: "tributalks",
	})
}

func newProtectedRouter(cfg JWTMiddlewareConfig) *gin.Engine {
	router := gin.New()
	router.Use(JWTAuthWithConfig(cfg))
	router.GET("/api/v1/analysis", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetJWTUserID(c)})
	})
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func TestJWTAuth(t *testing.T) {
	svc := newAuthService()
	userID := uuid.New()

	t.Run("accepts a valid bearer token", func(t *testing.T) {
		token, err := svc.GenerateToken(userID, "dev@rebechi.com.br", time.Hour)
		require.NoError(t, err)

		router := newProtectedRouter(DefaultJWTConfig(svc))
		req := httptest.NewRequest(http.MethodGet, "/api/v1/analysis", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID.String())
	})

	t.Run("rejects a missing header", func(t *testing.T) {
		router := newProtectedRouter(DefaultJWTConfig(svc))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/analysis", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects a malformed header", func(t *testing.T) {
		router := newProtectedRouter(DefaultJWTConfig(svc))
		req := httptest.NewRequest(http.MethodGet, "/api/v1/analysis", nil)
		req.Header.Set(AuthHeaderKey, "Token abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects an expired token with the expired code", func(t *testing.T) {
		token, err := svc.GenerateToken(userID, "", -time.Minute)
		require.NoError(t, err)

		router := newProtectedRouter(DefaultJWTConfig(svc))
		req := httptest.NewRequest(http.MethodGet, "/api/v1/analysis", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_TOKEN_EXPIRED")
	})

	t.Run("skips configured paths", func(t *testing.T) {
		router := newProtectedRouter(DefaultJWTConfig(svc))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("X-User-ID header works only when enabled", func(t *testing.T) {
		cfg := DefaultJWTConfig(svc)
		cfg.AllowUserIDHeader = true
		router := newProtectedRouter(cfg)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/analysis", nil)
		req.Header.Set("X-User-ID", userID.String())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		strict := newProtectedRouter(DefaultJWTConfig(svc))
		w = httptest.NewRecorder()
		strict.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
