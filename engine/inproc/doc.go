// Package inproc provides an in-process implementation of the engine
// boundary, standing in for the cgo-bound production engine.
//
// It keeps a node's whole state in memory: the peer store, relay
// subscriptions, a bounded message history serving paginated store
// queries, and the version-1 payload encryption used by the encrypted
// publish variants. Every method answers with the same tagged JSON
// payloads the native engine produces, so the client layer round-trips
// real payloads in tests and local development.
package inproc
