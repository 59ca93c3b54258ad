package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestStartSpanInheritsTrace(t *testing.T) {
	tracer := New("navfs", zap.NewNop())

	parent, ctx := tracer.StartSpan(context.Background(), "outer")
	child, _ := tracer.StartSpan(ctx, "inner")

	assert.Equal(t, parent.TraceID, child.TraceID)
	assert.Equal(t, parent.SpanID, child.ParentID)
	assert.NotEqual(t, parent.SpanID, child.SpanID)
	assert.Equal(t, parent.TraceID, GetTraceID(ctx))
}

func TestSpanErrorKeepsExplicitStatus(t *testing.T) {
	tracer := New("navfs", zap.NewNop())
	span, _ := tracer.StartSpan(context.Background(), "op")

	span.SetError(errors.New("boom"))
	assert.Equal(t, 500, span.Status)

	span2, _ := tracer.StartSpan(context.Background(), "op")
	span2.SetStatus(http.StatusNotFound)
	span2.SetError(errors.New("boom"))
	assert.Equal(t, http.StatusNotFound, span2.Status)
}

func TestHTTPMiddlewareEchoesTraceHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tracer := New("navfs", zap.NewNop())

	router := gin.New()
	router.Use(HTTPMiddleware(tracer))
	router.GET("/ok", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("X-Trace-ID", "req_caller")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req_caller", w.Header().Get("X-Trace-ID"))
	assert.NotEmpty(t, w.Header().Get("X-Span-ID"))
}
