package core

import (
	"context"
	"time"
)

// Protocol defines the generation-specific half of the request pipeline:
// endpoint lookup, request building, signing and response normalization.
// Implementations are stateless and safe for concurrent use.
type Protocol interface {
	// Generation returns the API generation this protocol speaks.
	Generation() Generation

	// BaseURL returns the API root every endpoint path is appended to.
	BaseURL() string

	// Endpoint looks up the table row for op. The boolean is false when the
	// generation does not offer the operation.
	Endpoint(op Operation) (Endpoint, bool)

	// SupportedOperations returns the operations present in the endpoint table.
	SupportedOperations() []Operation

	// BuildPublic constructs an unsigned GET request. The params map uses
	// logical parameter names.
	BuildPublic(op Operation, params Params) (*Request, error)

	// BuildSigned constructs a signed POST request carrying the generation's
	// envelope. nonce is milliseconds since epoch; id is the v2 request id.
	BuildSigned(op Operation, params Params, creds Credentials, nonce, id int64) (*Request, error)

	// Normalize maps a raw HTTP outcome to a Result. It never panics.
	Normalize(statusCode int, body []byte) Result
}

// Transport issues HTTP requests. Any HTTP stack can back it; a non-nil error
// means the exchange could not be completed at all.
type Transport interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// Clock supplies the current time; signing and throttling read it.
type Clock func() time.Time

// SystemClock is the wall clock.
func SystemClock() time.Time {
	return time.Now()
}

// Millis returns the clock's current time in milliseconds since epoch.
func (c Clock) Millis() int64 {
	if c == nil {
		return time.Now().UnixMilli()
	}
	return c().UnixMilli()
}
