package tracing

import (
	"context"
	"time"

	"github.com/GriffinCanCode/NavFS/internal/shared/id"
	"go.uber.org/zap"
)

// TraceID identifies one request flow end to end.
type TraceID string

// SpanID identifies a single operation within a trace.
type SpanID string

// Span is one traced operation. Spans are logged on completion rather
// than exported to a collector.
type Span struct {
	TraceID   TraceID
	SpanID    SpanID
	ParentID  SpanID
	Name      string
	Service   string
	StartTime time.Time
	Duration  time.Duration
	Tags      map[string]string
	Err       error
	Status    int
}

// Finish stamps the span's duration.
func (s *Span) Finish() {
	s.Duration = time.Since(s.StartTime)
}

// SetTag attaches one key/value annotation.
func (s *Span) SetTag(key, value string) {
	s.Tags[key] = value
}

// SetError records a failure on the span.
func (s *Span) SetError(err error) {
	s.Err = err
	if s.Status == 0 {
		s.Status = 500
	}
}

// SetStatus records the HTTP status code.
func (s *Span) SetStatus(code int) {
	s.Status = code
}

// Tracer assigns request-scoped IDs and logs completed spans.
type Tracer struct {
	service string
	logger  *zap.Logger
	spans   chan *Span
}

// New creates a tracer and starts its span drain.
func New(service string, logger *zap.Logger) *Tracer {
	t := &Tracer{
		service: service,
		logger:  logger,
		spans:   make(chan *Span, 256),
	}
	go t.drain()
	return t
}

// StartSpan opens a span, inheriting the trace from ctx or starting a
// fresh one. The returned context carries the new span as parent.
func (t *Tracer) StartSpan(ctx context.Context, name string) (*Span, context.Context) {
	traceID, _ := ctx.Value(traceIDKey).(TraceID)
	if traceID == "" {
		traceID = TraceID(id.NewRequestID())
	}
	parentID, _ := ctx.Value(spanIDKey).(SpanID)

	span := &Span{
		TraceID:   traceID,
		SpanID:    SpanID(id.NewRequestID()),
		ParentID:  parentID,
		Name:      name,
		Service:   t.service,
		StartTime: time.Now(),
		Tags:      make(map[string]string),
	}

	ctx = context.WithValue(ctx, traceIDKey, traceID)
	ctx = context.WithValue(ctx, spanIDKey, span.SpanID)
	return span, ctx
}

// Submit queues a finished span. A full buffer drops the span instead of
// blocking the request path.
func (t *Tracer) Submit(span *Span) {
	select {
	case t.spans <- span:
	default:
		t.logger.Warn("span buffer full, dropping span",
			zap.String("trace_id", string(span.TraceID)),
			zap.String("span_id", string(span.SpanID)),
		)
	}
}

func (t *Tracer) drain() {
	for span := range t.spans {
		t.emit(span)
	}
}

// emit logs one span. Successful commands land at debug so steady-state
// traffic does not flood the info log; failures surface as errors.
func (t *Tracer) emit(span *Span) {
	fields := []zap.Field{
		zap.String("trace_id", string(span.TraceID)),
		zap.String("span_id", string(span.SpanID)),
		zap.String("operation", span.Name),
		zap.Duration("duration", span.Duration),
		zap.Int("status", span.Status),
	}
	if span.ParentID != "" {
		fields = append(fields, zap.String("parent_id", string(span.ParentID)))
	}

	if span.Err != nil {
		fields = append(fields, zap.Error(span.Err))
		t.logger.Error("span completed with error", fields...)
		return
	}
	t.logger.Debug("span completed", fields...)
}

type contextKey string

const (
	traceIDKey contextKey = "trace_id"
	spanIDKey  contextKey = "span_id"
)

// GetTraceID retrieves the trace ID from context, empty when untraced.
func GetTraceID(ctx context.Context) TraceID {
	traceID, _ := ctx.Value(traceIDKey).(TraceID)
	return traceID
}
