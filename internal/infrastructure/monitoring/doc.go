/*
Package monitoring provides performance monitoring and metrics collection.

# Overview

This package implements Prometheus-based metrics collection for the
navigator service, tracking HTTP requests, dispatched commands, backend
primitive calls, directory watches, and system metrics.

# Features

- HTTP request metrics (latency, throughput, size)
- Command metrics (duration, failures by error code)
- Backend call metrics by implementation (native vs dynlib)
- Directory watch metrics (active watches, events by action)
- Batch operation per-item outcomes
- WebSocket connection metrics
- System metrics (uptime)

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Record command outcomes
	metrics.RecordCommand("navigator.list", "success", elapsed)
	metrics.RecordCommandError("navigator.copy", "not_found")

# Metrics Endpoint

Expose metrics via the standard Prometheus endpoint:

	import "github.com/prometheus/client_golang/prometheus/promhttp"
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
*/
package monitoring
