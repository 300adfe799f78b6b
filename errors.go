package waku

import "errors"

var (
	// ErrAlreadyRunning is returned by New while another node holds the
	// process-wide claim. Stop the existing node first.
	ErrAlreadyRunning = errors.New("a waku node is already initialized in this process")

	// ErrNodeConsumed is returned when an operation reaches a handle
	// that was already consumed by Start or Stop. The engine is never
	// called for a consumed handle.
	ErrNodeConsumed = errors.New("waku node handle has been consumed")
)
