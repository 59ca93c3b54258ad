/*
Package tracing provides request tracing for debugging production issues.

# Overview

This package implements lightweight tracing to follow a command from the
HTTP surface down through the dispatcher. It follows OpenTelemetry
concepts with a minimal implementation tailored to the service's needs.

# Usage

	// Create tracer
	tracer := tracing.New("navfs", logger)

	// HTTP middleware
	router.Use(tracing.HTTPMiddleware(tracer))

	// Manual span creation
	span, ctx := tracer.StartSpan(ctx, "operation")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()

	span.SetTag("key", "value")

# Trace Format

Traces use HTTP headers for propagation:
  - X-Trace-ID: unique identifier for the entire request flow
  - X-Span-ID: identifier for the current operation

Both are prefixed ULIDs from the shared id package.

# Performance

Completed spans drain through a buffered channel (256 spans) off the
request path; when the buffer is full the span is dropped, never the
request. Successful spans log at debug, failed ones at error.
*/
package tracing
