package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fatflowers/mollie-ideal/pkg/logctx"
)

func TestTraceAndRequestLogger_PropagateTraceID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core).Sugar()

	r := gin.New()
	r.Use(TraceMiddleware())
	r.GET("/objects/:object_id", RequestLoggerMiddleware(base), AccessLogMiddleware(), func(c *gin.Context) {
		logctx.FromCtx(c.Request.Context(), base).Infow("inside")
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/objects/doc-1", nil)
	req.Header.Set("X-Request-ID", "trace-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "trace-123", w.Header().Get("X-Request-ID"))

	inside := logs.FilterMessage("inside").All()
	require.Len(t, inside, 1)
	require.Equal(t, "trace-123", inside[0].ContextMap()["trace_id"])
	require.Equal(t, "doc-1", inside[0].ContextMap()["object_id"])
	require.Len(t, logs.FilterMessage("http_access").All(), 1)
}

func TestTraceMiddleware_GeneratesID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceMiddleware())
	var got string
	r.GET("/", func(c *gin.Context) {
		got = c.GetString(logctx.TraceIDKey)
		c.Status(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, got)
}
