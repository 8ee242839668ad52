package provider

import (
	"context"
	"errors"
	"net/http"
)

// ErrorKind classifies every failure the SDK reports.
type ErrorKind string

const (
	ErrInvalidConfiguration ErrorKind = "invalid_configuration"
	ErrInvalidArgument      ErrorKind = "invalid_argument"
	ErrTransport            ErrorKind = "transport_error"
	ErrProtocol             ErrorKind = "protocol_error"
	ErrRemote               ErrorKind = "remote_error"
	ErrInvalidPayload       ErrorKind = "invalid_payload"
)

// Error is the single error type returned by the SDK.
type Error struct {
	Kind       ErrorKind `json:"kind"`
	Field      string    `json:"field,omitempty"`
	Message    string    `json:"message"`
	StatusCode int       `json:"status_code,omitempty"`
	Body       string    `json:"body,omitempty"`
	Err        error     `json:"-"`
}

func (e *Error) Error() string {
	switch {
	case e.Body != "":
		return e.Message + ": " + e.Body
	case e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Retryable reports whether repeating the same call may succeed.
// Transport failures are retryable unless the caller cancelled; remote
// failures only when the gateway answered 503 or 504.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case ErrTransport:
		return !errors.Is(e.Err, context.Canceled)
	case ErrRemote:
		return e.StatusCode == http.StatusServiceUnavailable || e.StatusCode == http.StatusGatewayTimeout
	}
	return false
}

func NewInvalidConfiguration(field, message string) *Error {
	return &Error{Kind: ErrInvalidConfiguration, Field: field, Message: message}
}

func NewInvalidArgument(field, message string) *Error {
	return &Error{Kind: ErrInvalidArgument, Field: field, Message: message}
}

func NewTransportError(message string, cause error) *Error {
	return &Error{Kind: ErrTransport, Message: message, Err: cause}
}

func NewProtocolError(message string, cause error) *Error {
	return &Error{Kind: ErrProtocol, Message: message, Err: cause}
}

// NewRemoteError keeps the response body for diagnostics.
func NewRemoteError(statusCode int, body string) *Error {
	return &Error{
		Kind:       ErrRemote,
		Message:    "API request failed with status " + http.StatusText(statusCode),
		StatusCode: statusCode,
		Body:       body,
	}
}

func NewInvalidPayload(message string) *Error {
	return &Error{Kind: ErrInvalidPayload, Message: message}
}

// KindOf extracts the kind of an SDK error anywhere in the chain.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// IsRetryable reports whether err is an SDK error worth retrying.
func IsRetryable(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Retryable()
	}
	return false
}
