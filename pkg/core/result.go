package core

import (
	"encoding/json"
	"fmt"

	"github.com/bytedance/sonic"
)

// Result is the outcome of one API call: either a success payload unwrapped
// from the generation's result field, or an *Error. It is produced per call
// and never retained by the client.
type Result struct {
	// Payload is the raw JSON value of the result field. It is "null" when the
	// exchange answered without one.
	Payload json.RawMessage
	// Err is non-nil for failures.
	Err *Error
}

// Success wraps a payload.
func Success(payload json.RawMessage) Result {
	if len(payload) == 0 {
		payload = json.RawMessage("null")
	}
	return Result{Payload: payload}
}

// Failure wraps an error.
func Failure(err *Error) Result {
	return Result{Err: err}
}

// OK reports whether the call succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Unwrap splits the result into the conventional (payload, error) pair.
func (r Result) Unwrap() (json.RawMessage, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Payload, nil
}

// Decode unmarshals the success payload into v.
func (r Result) Decode(v any) error {
	if r.Err != nil {
		return r.Err
	}
	if err := sonic.Unmarshal(r.Payload, v); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}
