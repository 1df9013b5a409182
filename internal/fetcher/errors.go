package fetcher

import (
	"context"
	"errors"
	"fmt"
)

// ValidationError reports a malformed or missing call parameter. It is always returned
// before any network access
type ValidationError struct {
	Param string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("the %q parameter is invalid or missing", e.Param)
}

// NewValidationError creates a validation error for the named parameter
func NewValidationError(param string) *ValidationError {
	return &ValidationError{Param: param}
}

// IsValidation reports whether err is or wraps a *ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ErrorType is the category of a transport failure
type ErrorType string

const (
	ErrorTypeNetwork   ErrorType = "network"    // connection refused, DNS, reset
	ErrorTypeRateLimit ErrorType = "rate_limit" // HTTP 429
	ErrorTypeServer    ErrorType = "server"     // HTTP 5xx
	ErrorTypeClient    ErrorType = "client"     // HTTP 4xx other than 429
	ErrorTypeDecode    ErrorType = "decode"
	ErrorTypeTimeout   ErrorType = "timeout"
	ErrorTypeCanceled  ErrorType = "canceled"
	ErrorTypeUnknown   ErrorType = "unknown"
)

// retryable lists the categories a caller may sensibly try again later
var retryable = map[ErrorType]bool{
	ErrorTypeNetwork:   true,
	ErrorTypeRateLimit: true,
	ErrorTypeServer:    true,
	ErrorTypeTimeout:   true,
}

// TransportError is a failed market request. Nothing in this module retries;
// Retryable is a hint for callers
type TransportError struct {
	Type       ErrorType
	Retryable  bool
	StatusCode int
	Message    string
	Cause      error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode > 0:
		return fmt.Sprintf("%s error (status %d): %s", e.Type, e.StatusCode, e.Message)
	case e.Cause != nil:
		return fmt.Sprintf("%s error: %s: %v", e.Type, e.Message, e.Cause)
	default:
		return fmt.Sprintf("%s error: %s", e.Type, e.Message)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

func newTransportError(t ErrorType, status int, msg string, cause error) *TransportError {
	return &TransportError{
		Type:       t,
		Retryable:  retryable[t],
		StatusCode: status,
		Message:    msg,
		Cause:      cause,
	}
}

// NewNetworkError wraps a failure to reach the market host
func NewNetworkError(cause error) *TransportError {
	return newTransportError(ErrorTypeNetwork, 0, "market unreachable", cause)
}

// NewRateLimitError reports that Steam throttled the request
func NewRateLimitError(statusCode int) *TransportError {
	return newTransportError(ErrorTypeRateLimit, statusCode, "too many market requests", nil)
}

func NewServerError(statusCode int) *TransportError {
	return newTransportError(ErrorTypeServer, statusCode, "market unavailable", nil)
}

func NewClientError(statusCode int, message string) *TransportError {
	return newTransportError(ErrorTypeClient, statusCode, message, nil)
}

// NewDecodeError wraps a response body that did not match the expected payload
func NewDecodeError(cause error) *TransportError {
	return newTransportError(ErrorTypeDecode, 0, "unexpected market response", cause)
}

func NewTimeoutError(cause error) *TransportError {
	return newTransportError(ErrorTypeTimeout, 0, "market request timed out", cause)
}

// ClassifyHTTPError maps a non-2xx status to a TransportError. Steam answers 400 for
// unknown items and 403 for expired sessions, both reported as client errors
func ClassifyHTTPError(statusCode int) *TransportError {
	switch {
	case statusCode == 429:
		return NewRateLimitError(statusCode)
	case statusCode >= 500:
		return NewServerError(statusCode)
	case statusCode == 401 || statusCode == 403:
		return NewClientError(statusCode, "session rejected")
	case statusCode >= 400:
		return NewClientError(statusCode, "request rejected")
	default:
		return newTransportError(ErrorTypeUnknown, statusCode, "unexpected status", nil)
	}
}

// classifyRequestError maps an error returned while performing a request
func classifyRequestError(err error) *TransportError {
	var te *TransportError
	switch {
	case errors.As(err, &te):
		return te
	case errors.Is(err, context.DeadlineExceeded):
		return NewTimeoutError(err)
	case errors.Is(err, context.Canceled):
		return newTransportError(ErrorTypeCanceled, 0, "market request canceled", err)
	default:
		return NewNetworkError(err)
	}
}
