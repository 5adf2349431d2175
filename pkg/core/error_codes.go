package core

// ErrorCode is a stable, machine-readable identifier for failures produced
// locally, before or instead of an exchange answer.
type ErrorCode string

// Local error codes.
const (
	ErrCodeTransport      ErrorCode = "TRANSPORT_ERROR"
	ErrCodeDecode         ErrorCode = "DECODE_ERROR"
	ErrCodePublicOnly     ErrorCode = "PUBLIC_ONLY"
	ErrCodeUnsupported    ErrorCode = "UNSUPPORTED_OPERATION"
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	ErrCodeCircuitBreaker ErrorCode = "CIRCUIT_BREAKER_OPEN"
	ErrCodeCanceled       ErrorCode = "CANCELED"
)

// ExchangeCodeTooManyRequests is the v2 status code for exchange-side throttling.
const ExchangeCodeTooManyRequests = "10006"

// IsErrorCode checks if the error carries the specified local error code.
func IsErrorCode(err error, code ErrorCode) bool {
	e, ok := AsError(err)
	return ok && ErrorCode(e.Code) == code
}
