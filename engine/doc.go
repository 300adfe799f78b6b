// Package engine defines the boundary to the native Waku engine.
//
// The engine is the collaborator that owns all networking, relay
// propagation, encryption and store-query execution. Every call into it
// answers with a UTF-8 JSON payload tagged as either {"result": ...} or
// {"error": "..."}; Decode collapses that tagged union into a plain Go
// value and error. This package performs no retries and no
// interpretation of error messages.
package engine
