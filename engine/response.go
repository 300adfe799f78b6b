package engine

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDecodeFailed marks an engine payload that matched neither the
// result nor the error tag shape. It signals a protocol-level bug, never
// a recoverable condition.
var ErrDecodeFailed = errors.New("engine response matches neither result nor error shape")

// NativeError is an error tag returned by the engine. The message is the
// engine's own text, passed through verbatim.
type NativeError struct {
	Message string
}

func (e *NativeError) Error() string {
	return "native call failed: " + e.Message
}

// DecodeError reports a payload that could not be decoded into the
// tagged union, or whose result did not decode into the expected type.
type DecodeError struct {
	Payload string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to decode engine response %q: %v", e.Payload, e.Cause)
	}
	return fmt.Sprintf("failed to decode engine response %q", e.Payload)
}

// Is reports ErrDecodeFailed so callers can classify with errors.Is
// without inspecting the payload.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecodeFailed
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// Decode interprets a tagged engine payload as a value of type T. An
// error tag becomes a *NativeError; a payload carrying neither tag, or a
// result that does not decode as T, becomes a *DecodeError. A zero value
// is never returned silently for an undecodable payload.
func Decode[T any](payload string) (T, error) {
	var zero T

	var tagged map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &tagged); err != nil {
		return zero, &DecodeError{Payload: payload, Cause: err}
	}

	if raw, ok := tagged["error"]; ok {
		var msg string
		if err := json.Unmarshal(raw, &msg); err != nil {
			return zero, &DecodeError{Payload: payload, Cause: err}
		}
		return zero, &NativeError{Message: msg}
	}

	raw, ok := tagged["result"]
	if !ok {
		return zero, &DecodeError{Payload: payload}
	}

	var result T
	if err := json.Unmarshal(raw, &result); err != nil {
		return zero, &DecodeError{Payload: payload, Cause: err}
	}
	return result, nil
}

// DecodeVoid interprets a tagged payload whose result carries no
// information, keeping only the success/failure outcome.
func DecodeVoid(payload string) error {
	_, err := Decode[json.RawMessage](payload)
	return err
}
