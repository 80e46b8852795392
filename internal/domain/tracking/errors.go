package tracking

import "errors"

// Error codes distinguishing tracking failure kinds. The HTTP layer maps each
// code to a status; callers switch on the code, never on message text.
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeProviderAuth      = "PROVIDER_AUTH_ERROR"
	ErrCodeProviderRateLimit = "PROVIDER_RATE_LIMIT"
	ErrCodeProviderNotFound  = "PROVIDER_NOT_FOUND"
	ErrCodeProviderAPI       = "PROVIDER_API_ERROR"
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
)

// Error is a typed tracking failure. Code identifies the failure kind;
// Identifier carries the offending identifier where one exists (not-found
// errors need it for the user-facing message).
type Error struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Identifier string `json:"identifier,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// IsProviderError reports whether the failure originated at the upstream
// provider. Only provider-originated failures may be masked by the
// fallback-to-mock configuration; validation and inbound rate-limit errors
// are the caller's fault and are never masked.
func (e *Error) IsProviderError() bool {
	switch e.Code {
	case ErrCodeProviderAuth, ErrCodeProviderRateLimit, ErrCodeProviderNotFound, ErrCodeProviderAPI:
		return true
	}
	return false
}

// NewValidationError creates a validation failure for a malformed identifier
func NewValidationError(message string) *Error {
	return &Error{Code: ErrCodeValidation, Message: message}
}

// NewProviderAuthError creates a failure for an unauthorized/forbidden
// upstream response
func NewProviderAuthError(message string) *Error {
	return &Error{Code: ErrCodeProviderAuth, Message: message}
}

// NewProviderRateLimitError creates a failure for an upstream
// too-many-requests response
func NewProviderRateLimitError(message string) *Error {
	return &Error{Code: ErrCodeProviderRateLimit, Message: message}
}

// NewProviderNotFoundError creates a failure for an identifier the upstream
// does not know
func NewProviderNotFoundError(message, identifier string) *Error {
	return &Error{Code: ErrCodeProviderNotFound, Message: message, Identifier: identifier}
}

// NewProviderAPIError creates a failure for any other upstream problem:
// 5xx responses, malformed payloads, transport errors, timeouts
func NewProviderAPIError(message string) *Error {
	return &Error{Code: ErrCodeProviderAPI, Message: message}
}

// NewRateLimitExceededError creates the inbound limiter's rejection
func NewRateLimitExceededError(message string) *Error {
	return &Error{Code: ErrCodeRateLimitExceeded, Message: message}
}

// AsError unwraps err to a tracking *Error if it is one
func AsError(err error) (*Error, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}
