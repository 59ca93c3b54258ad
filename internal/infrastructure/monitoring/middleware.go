package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware for metrics collection. The route
// template labels the series so path parameters cannot explode cardinality.
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		reqSize := c.Request.ContentLength
		if reqSize < 0 {
			reqSize = 0
		}

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		metrics.RecordHTTPRequest(method, route, status, time.Since(start), reqSize, int64(c.Writer.Size()))
	}
}

// Timer measures command duration
type Timer struct {
	start   time.Time
	metrics *Metrics
	command string
}

// NewTimer creates a new timer
func NewTimer(metrics *Metrics, command string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		command: command,
	}
}

// Stop stops the timer and records the duration
func (t *Timer) Stop(status string) {
	if t.metrics == nil {
		return
	}
	t.metrics.RecordCommand(t.command, status, time.Since(t.start))
}
