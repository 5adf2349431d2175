package core

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind represents the category of a failed call.
type ErrorKind int

// Error kind constants categorize failures so callers can branch on them.
const (
	// KindUnknown indicates an unclassified error.
	KindUnknown ErrorKind = iota
	// KindTransport indicates the HTTP exchange could not be completed.
	KindTransport
	// KindHTTP indicates a non-200 HTTP status.
	KindHTTP
	// KindExchange indicates HTTP 200 with a non-zero exchange status code.
	KindExchange
	// KindDecode indicates the response body was not the expected JSON.
	KindDecode
	// KindPublicOnly indicates a signed call on a client without credentials.
	KindPublicOnly
	// KindUnsupported indicates the generation does not offer the operation.
	KindUnsupported
	// KindInvalidRequest indicates the request could not be built.
	KindInvalidRequest
	// KindCircuitOpen indicates the circuit breaker rejected the call.
	KindCircuitOpen
	// KindCanceled indicates the context ended while waiting to send.
	KindCanceled
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	return [...]string{
		"UNKNOWN",
		"TRANSPORT",
		"HTTP",
		"EXCHANGE",
		"DECODE",
		"PUBLIC_ONLY",
		"UNSUPPORTED",
		"INVALID_REQUEST",
		"CIRCUIT_OPEN",
		"CANCELED",
	}[k]
}

// Error is the failure half of a Result. Every error returned by the client
// facade is an *Error.
type Error struct {
	// Kind categorizes the error for programmatic handling.
	Kind ErrorKind `json:"kind"`
	// Generation is the API generation the call was made against.
	Generation Generation `json:"generation"`
	// HTTPStatus is the HTTP status code, zero when no response was received.
	HTTPStatus int `json:"http_status,omitempty"`
	// Code is the exchange status code, or a local ErrorCode.
	Code string `json:"code,omitempty"`
	// Message is the human-readable error description.
	Message string `json:"message,omitempty"`
	// Fields holds the decoded JSON object of an error response.
	Fields map[string]any `json:"fields,omitempty"`
	// Raw is the response body when it could not be decoded.
	Raw string `json:"raw,omitempty"`
	// Timestamp is when the error occurred.
	Timestamp time.Time `json:"timestamp"`

	cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.cause != nil {
		msg = e.cause.Error()
	}
	switch {
	case e.Code != "" && e.HTTPStatus != 0:
		return fmt.Sprintf("[%s] %s (%d/%s): %s", e.Generation, e.Kind, e.HTTPStatus, e.Code, msg)
	case e.Code != "":
		return fmt.Sprintf("[%s] %s (%s): %s", e.Generation, e.Kind, e.Code, msg)
	case e.HTTPStatus != 0:
		return fmt.Sprintf("[%s] %s (%d): %s", e.Generation, e.Kind, e.HTTPStatus, msg)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Generation, e.Kind, msg)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// NewError creates an Error of the given kind. The timestamp is set to now.
func NewError(gen Generation, kind ErrorKind, message string) *Error {
	return &Error{
		Kind:       kind,
		Generation: gen,
		Message:    message,
		Timestamp:  time.Now(),
	}
}

// WithStatus sets the HTTP status code.
func (e *Error) WithStatus(status int) *Error {
	e.HTTPStatus = status
	return e
}

// WithCode sets the exchange or local error code.
func (e *Error) WithCode(code string) *Error {
	e.Code = code
	return e
}

// WithFields attaches the decoded error body.
func (e *Error) WithFields(fields map[string]any) *Error {
	e.Fields = fields
	return e
}

// WithRaw attaches the undecodable response text.
func (e *Error) WithRaw(raw string) *Error {
	e.Raw = raw
	return e
}

// WithCause records the underlying error.
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

// AsError extracts an *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	e, ok := AsError(err)
	return ok && e.Kind == kind
}

// IsPublicOnly reports whether err is a public-only rejection.
// No network request was attempted for such calls.
func IsPublicOnly(err error) bool {
	return IsKind(err, KindPublicOnly)
}

// IsExchangeError reports whether the exchange answered with a non-zero status code.
func IsExchangeError(err error) bool {
	return IsKind(err, KindExchange)
}

// IsTransportError reports whether the HTTP exchange itself failed.
func IsTransportError(err error) bool {
	return IsKind(err, KindTransport)
}

// IsRateLimitError reports whether the exchange rejected the call for
// exceeding its rate limit (HTTP 429 or status code 10006).
func IsRateLimitError(err error) bool {
	e, ok := AsError(err)
	if !ok {
		return false
	}
	return e.HTTPStatus == 429 || e.Code == ExchangeCodeTooManyRequests
}
