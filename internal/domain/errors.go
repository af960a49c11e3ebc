package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies proxy failures. Its value is the wire "code".
type ErrorKind string

// Error kinds.
const (
	KindUnauthorized        ErrorKind = "unauthorized"
	KindForbidden           ErrorKind = "forbidden"
	KindConfiguration       ErrorKind = "no_api_key"
	KindInvalidRequest      ErrorKind = "invalid_request"
	KindUpstreamUnavailable ErrorKind = "upstream_unavailable"
	KindUpstreamError       ErrorKind = "upstream_error"
	KindParse               ErrorKind = "parse_error"
	KindInternal            ErrorKind = "internal_error"
)

// DefaultUpstreamMessage is used when the provider gives no readable message.
const DefaultUpstreamMessage = "An unknown error occurred with the generation provider."

// Error is a classified failure carried from the proxy to its callers.
type Error struct {
	Kind    ErrorKind
	Message string
	Status  int
	Err     error
}

// ErrorEnvelope is the JSON error body returned by the proxy.
type ErrorEnvelope struct {
	Code    ErrorKind `json:"code"`
	Message string    `json:"message"`
	Status  int       `json:"status"`
}

// Sentinel errors detected before any network call.
var (
	ErrUnauthorized = &Error{
		Kind:    KindUnauthorized,
		Message: "Authentication is required.",
		Status:  http.StatusUnauthorized,
	}
	ErrForbidden = &Error{
		Kind:    KindForbidden,
		Message: "Sorry, you are not allowed to do that.",
		Status:  http.StatusForbidden,
	}
	ErrAPIKeyNotConfigured = &Error{
		Kind:    KindConfiguration,
		Message: "API key not configured",
		Status:  http.StatusBadRequest,
	}
	ErrPromptRequired = &Error{
		Kind:    KindInvalidRequest,
		Message: "A prompt is required to generate content.",
		Status:  http.StatusBadRequest,
	}
)

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Envelope converts the error to its wire form.
func (e *Error) Envelope() ErrorEnvelope {
	return ErrorEnvelope{
		Code:    e.Kind,
		Message: e.Message,
		Status:  e.Status,
	}
}

// FromEnvelope rebuilds an error received over the wire.
func FromEnvelope(env ErrorEnvelope, status int) *Error {
	if env.Status != 0 {
		status = env.Status
	}
	kind := env.Code
	if kind == "" {
		kind = KindUpstreamError
	}
	return &Error{
		Kind:    kind,
		Message: env.Message,
		Status:  status,
	}
}

// NewInvalidRequest builds an InvalidRequest error with a specific message.
func NewInvalidRequest(message string) *Error {
	return &Error{
		Kind:    KindInvalidRequest,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// NewUpstreamUnavailable builds a transport-level failure reaching the provider.
func NewUpstreamUnavailable(err error) *Error {
	return &Error{
		Kind:    KindUpstreamUnavailable,
		Message: err.Error(),
		Status:  http.StatusBadGateway,
		Err:     err,
	}
}

// NewUpstreamError builds a failure reported by the provider, preserving its status.
func NewUpstreamError(status int, message string) *Error {
	if message == "" {
		message = DefaultUpstreamMessage
	}
	return &Error{
		Kind:    KindUpstreamError,
		Message: message,
		Status:  status,
	}
}

// NewInternal builds a server-side failure that is not the caller's fault.
func NewInternal(message string, err error) *Error {
	return &Error{
		Kind:    KindInternal,
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// AsError extracts a classified error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
