package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fatflowers/bankgate/pkg/logctx"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTracedRouter(base *zap.SugaredLogger, seen *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceMiddleware(), RequestLoggerMiddleware(base), AccessLogMiddleware(base))
	r.GET("/ping", func(c *gin.Context) {
		*seen = logctx.TraceID(c.Request.Context())
		logctx.FromCtx(c.Request.Context(), base).Infow("ping")
		c.String(http.StatusOK, "pong")
	})
	return r
}

func TestTraceMiddleware_ReusesRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	var seen string
	r := newTracedRouter(zap.New(core).Sugar(), &seen)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "req-123", seen)
	require.Equal(t, "req-123", w.Header().Get("X-Request-ID"))

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, "ping", entries[0].Message)
	require.Equal(t, "req-123", entries[0].ContextMap()["trace_id"])
	require.Equal(t, "http_access", entries[1].Message)
	require.Equal(t, "/ping", entries[1].ContextMap()["path"])
	require.EqualValues(t, http.StatusOK, entries[1].ContextMap()["status"])
}

func TestTraceMiddleware_GeneratesID(t *testing.T) {
	var seen string
	r := newTracedRouter(zap.NewNop().Sugar(), &seen)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Len(t, seen, 36)
	require.Equal(t, seen, w.Header().Get("X-Request-ID"))
}
