// Package middleware provides HTTP middleware for the NavFS server.
//
// Included middleware:
//   - CORS: cross-origin resource sharing with configurable origins
//   - RateLimit: token bucket rate limiting per client IP
//   - GlobalRateLimit: shared token bucket across all clients
package middleware
