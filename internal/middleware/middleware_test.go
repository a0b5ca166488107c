package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"todo/internal/logger"
	"todo/internal/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestID(t *testing.T) {
	t.Run("generated when absent", func(t *testing.T) {
		var seen string
		h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = middleware.GetRequestID(r.Context())
		}))

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest("GET", "/tasks/1", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
	})

	t.Run("propagated when present", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/tasks/1", nil)
		req.Header.Set("X-Request-ID", "abc-123")

		w := httptest.NewRecorder()
		middleware.RequestID(okHandler()).ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	})
}

func TestLogging_LevelByStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	previous := logger.Logger
	logger.Logger = zap.New(core)
	t.Cleanup(func() { logger.Logger = previous })

	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"NOT_FOUND"}`))
	})

	w := httptest.NewRecorder()
	middleware.Logging(notFound).ServeHTTP(w, httptest.NewRequest("GET", "/tasks/9", nil))

	out := logs.FilterMessage("HTTP_OUT: Завершение запроса").All()
	require.Len(t, out, 1)
	assert.Equal(t, zapcore.WarnLevel, out[0].Level)
	assert.Equal(t, int64(http.StatusNotFound), out[0].ContextMap()["status"])
	assert.Equal(t, int64(len(`{"error":"NOT_FOUND"}`)), out[0].ContextMap()["bytes_written"])
}

func TestRateLimit(t *testing.T) {
	h := middleware.RateLimit(1, 2)(okHandler())

	codes := []int{}
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/tasks/1", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// другой клиент считается отдельно
	req := httptest.NewRequest("GET", "/tasks/1", nil)
	req.RemoteAddr = "10.0.0.2:5555"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
