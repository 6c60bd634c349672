package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func observedGinRouter(level zapcore.Level) (*gin.Engine, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	log := zap.New(core)

	router := gin.New()
	router.Use(Recovery(log))
	router.Use(GinMiddleware(log))
	return router, logs
}

func TestGinMiddleware_LogsRequest(t *testing.T) {
	router, logs := observedGinRouter(zapcore.InfoLevel)
	router.GET("/areas", func(c *gin.Context) {
		c.Set(ginRequestIDKey, "req-areas-1")
		c.JSON(http.StatusOK, gin.H{"data": []string{}})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/areas?page=2", nil)
	req.Header.Set("User-Agent", "parkly-app/1.0")
	router.ServeHTTP(w, req)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	assert.Equal(t, "request completed", entry.Message)

	fields := entry.ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/areas", fields["path"])
	assert.Equal(t, "page=2", fields["query"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.Equal(t, "parkly-app/1.0", fields["user_agent"])
	assert.Contains(t, fields, "latency")
}

func TestGinMiddleware_StatusLevels(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  zapcore.Level
	}{
		{"success logs info", http.StatusOK, zapcore.InfoLevel},
		{"client error logs warn", http.StatusNotFound, zapcore.WarnLevel},
		{"server error logs error", http.StatusBadGateway, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, logs := observedGinRouter(zapcore.InfoLevel)
			router.GET("/bookings", func(c *gin.Context) {
				c.Status(tt.status)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bookings", nil))

			require.Equal(t, 1, logs.Len())
			assert.Equal(t, tt.level, logs.All()[0].Level)
		})
	}
}

func TestGinMiddleware_CollectsGinErrors(t *testing.T) {
	router, logs := observedGinRouter(zapcore.InfoLevel)
	router.POST("/bookings", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
		c.Status(http.StatusBadRequest)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bookings", nil))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	errs, ok := fields["errors"].([]string)
	require.True(t, ok)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], assert.AnError.Error())
}

func TestRecovery_PanicBecomes500(t *testing.T) {
	router, logs := observedGinRouter(zapcore.ErrorLevel)
	router.GET("/slots", func(c *gin.Context) {
		panic("slot index out of range")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slots", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	entries := logs.FilterMessage("panic recovered").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "slot index out of range", fields["error"])
	assert.Equal(t, "/slots", fields["path"])
}

func TestGetGinLogger(t *testing.T) {
	t.Run("returns logger set by middleware", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(ginLoggerKey, zap.New(core))

		GetGinLogger(c).Info("slot freed")
		assert.Equal(t, 1, logs.Len())
	})

	t.Run("falls back to no-op", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		log := GetGinLogger(c)
		require.NotNil(t, log)
		log.Info("discarded")
	})
}
