package apperror

import (
	"errors"
	"net/http"
)

// Sentinel error kinds carried through every layer. Services wrap these with
// fmt.Errorf("...: %w", ...); the kind is translated to a transport status
// only at the boundary (pkg/response).
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal server error")
)

// Machine-readable codes, stable across releases.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeInternal        = "INTERNAL"

	// Token-specific codes so clients can tell why a 401 happened.
	CodeTokenMissing = "TOKEN_MISSING"
	CodeTokenInvalid = "TOKEN_INVALID"
	CodeTokenExpired = "TOKEN_EXPIRED"
)

// AppError pairs an error kind with a human-readable message.
type AppError struct {
	Kind    error
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Kind
}

// New creates an AppError of the given kind.
func New(kind error, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// MapErrorToStatus maps an error kind to an HTTP status code.
func MapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf maps an error kind to its machine-readable code.
func CodeOf(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return CodeValidation
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthenticated
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrConflict):
		return CodeConflict
	default:
		return CodeInternal
	}
}
