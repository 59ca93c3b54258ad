// Package service provides the command registry for the NavFS dispatcher.
//
// The registry maintains a catalog of service providers and an index from
// every tool ID to its owning provider, so dispatch is one lookup.
//
// Components:
//   - Registry: central command catalog, one owned instance per dispatcher
//   - Provider: interface for command implementations
//
// Features:
//   - Thread-safe service registration
//   - Tool ID indexing for direct dispatch
//   - Category-based filtering
//   - Panic recovery at the dispatch boundary, degrading to a generic
//     error envelope; partial or corrupt output never leaves the registry
//   - Service statistics
//
// Example Usage:
//
//	registry := service.NewRegistry()
//	registry.Register(navigatorProvider)
//	result, err := registry.Execute(ctx, "navigator.list", params, appCtx)
package service
