package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workshop-registration/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCORS_Preflight(t *testing.T) {
	router := gin.New()
	router.Use(CORS("https://register.example.com"))
	router.PATCH("/api/form", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/form", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://register.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}

func TestCORS_Wildcard(t *testing.T) {
	router := gin.New()
	router.Use(CORS(""))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := logger.New(&buf, slog.LevelInfo)

	var scoped *slog.Logger
	router := gin.New()
	router.Use(RequestLogger(base))
	router.GET("/health", func(c *gin.Context) {
		scoped = logger.FromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
	require.NotNil(t, scoped)
	assert.NotSame(t, slog.Default(), scoped)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "request completed", entry["msg"])
	assert.Equal(t, "req-123", entry["request_id"])
	assert.Equal(t, "/health", entry["path"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])
}

func TestRequestLogger_GeneratesID(t *testing.T) {
	router := gin.New()
	router.Use(RequestLogger(logger.New(&bytes.Buffer{}, slog.LevelInfo)))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
}
