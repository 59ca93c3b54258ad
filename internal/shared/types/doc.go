// Package types provides shared data structures for the NavFS service.
//
// This package defines core types used across all components, ensuring
// type safety and consistent data structures.
//
// Core Types:
//   - FileEntry: One filesystem node's metadata snapshot
//   - DiskUsage: Live filesystem capacity snapshot
//   - ListOptions, CopyOptions: Operation option sets
//   - Service: Service provider definition
//   - Tool: Command specification
//   - Result: Standard operation result envelope
//
// Request Types:
//   - ExecuteRequest: Command dispatch
//   - WSMessage: WebSocket communication
//
// Error Codes:
//   - ErrorCode: The fixed failure taxonomy attached to result envelopes
//
// Example Usage:
//
//	entry := types.FileEntry{
//	    Name: "notes.txt",
//	    Path: "/storage/user/notes.txt",
//	    Kind: types.KindFile,
//	}
package types
