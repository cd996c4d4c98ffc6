package errors

import (
	"errors"
	"net/http"
)

// Kind classifies a domain error so the HTTP boundary can pick a status code
// without inspecting messages.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
	KindInternal
)

// Error is a domain error carrying a classification and a client-safe message.
type Error struct {
	Kind    Kind
	Message string
	Code    string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports malformed input (bad dates, missing fields). Maps to 400.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message, Code: "VALIDATION_ERROR"}
}

// Authentication reports a missing or invalid credential. Maps to 401.
func Authentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message, Code: "UNAUTHENTICATED"}
}

// Authorization reports an authenticated but unpermitted action. Maps to 403.
func Authorization(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message, Code: "FORBIDDEN"}
}

// NotFound reports an absent entity. Maps to 404.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message, Code: "NOT_FOUND"}
}

// Conflict reports a uniqueness violation. Maps to 409.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message, Code: "CONFLICT"}
}

// Internal wraps a store or infrastructure failure. The underlying error is
// kept for logs but never surfaced in the response body. Maps to 500.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Code: "INTERNAL_ERROR", Err: err}
}

// KindOf returns the classification of err, or KindInternal for unknown errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// MapToHTTP converts any error into a status code and response body.
func MapToHTTP(err error) (int, ErrorResponse) {
	var e *Error
	if !errors.As(err, &e) {
		e = Internal(err)
	}

	var status int
	switch e.Kind {
	case KindValidation:
		status = http.StatusBadRequest
	case KindAuthentication:
		status = http.StatusUnauthorized
	case KindAuthorization:
		status = http.StatusForbidden
	case KindNotFound:
		status = http.StatusNotFound
	case KindConflict:
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
	}

	return status, ErrorResponse{Error: e.Message, Code: e.Code}
}
