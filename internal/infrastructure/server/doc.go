// Package server provides HTTP server setup and initialization for NavFS.
//
// This package orchestrates all components:
//   - HTTP routing with Gin framework
//   - Middleware stack (CORS, rate limiting, recovery, tracing)
//   - Backend loading (native engine, optional dynamic library)
//   - Navigator provider registration
//   - Manager initialization (session, watch)
//
// Server Lifecycle:
//  1. Load configuration from environment/flags
//  2. Initialize logger (production or development)
//  3. Bind the filesystem backend, falling back to native on load failure
//  4. Create session and watch managers
//  5. Register the navigator provider
//  6. Setup HTTP routes and middleware
//  7. Start HTTP server
//  8. Graceful shutdown on signal
package server
