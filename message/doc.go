// Package message defines the data model exchanged with the native Waku
// engine: the transmitted message envelope, the decrypted-payload
// counterpart returned for encrypted traffic, and the historical-query
// envelopes used by the store sub-protocol.
//
// All wire shapes use the fixed camelCase field names of the engine's
// JSON boundary. Values are plain data: once constructed they are not
// mutated and may be shared across goroutines without synchronization.
package message
