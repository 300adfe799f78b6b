// Package main provides C API bindings for the waku client surface,
// enabling cross-language interoperability with C applications and
// other language bindings.
//
// # Build Instructions
//
// To build as a C shared library:
//
//	go build -buildmode=c-shared -o libwaku.so ./capi/
//
// # Handle Model
//
// waku_new constructs a node and returns an opaque handle; waku_start
// promotes it to the running state. All other functions take the handle
// and return 0 on success or -1 on failure. String results are written
// into caller-supplied buffers; functions writing strings return the
// number of bytes written, or -1.
//
// The process-wide single-node rule of the Go API applies unchanged: a
// second waku_new before waku_stop fails.
package main
