// Package main is the entry point for the NavFS server and CLI.
//
// NavFS is an automation-facing filesystem navigator: it exposes a fixed
// command vocabulary (list, cd, search, copy, watch, ...) over two wire
// surfaces that share one dispatcher.
//
// The server provides:
//   - REST API for command dispatch and service discovery
//   - WebSocket streaming of directory change events
//   - Optional dynamic backend library with native fallback
//   - Rate limiting and Prometheus metrics
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//
// Usage:
//
//	# Service mode
//	./navfs -port 8090
//
//	# One-shot mode: dispatch a single command and print the envelope
//	./navfs -exec '{"command":"list","params":{"path":"/tmp"}}'
//
// In one-shot mode the exit code reports dispatch health only: malformed
// requests and unknown commands exit non-zero, while a command that ran
// and failed exits 0 with its failure envelope on stdout.
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
