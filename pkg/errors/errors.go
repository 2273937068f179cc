package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard error types
var (
	ErrNotFound         = errors.New("resource not found")
	ErrBadRequest       = errors.New("bad request")
	ErrValidation       = errors.New("validation error")
	ErrUnknownMarket    = errors.New("unknown market")
	ErrGenerationFailed = errors.New("label generation failed")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInternal         = errors.New("internal server error")
)

// AppError represents an application error with context
type AppError struct {
	Err        error             `json:"-"`
	Message    string            `json:"message"`
	Code       string            `json:"code"`
	StatusCode int               `json:"status_code"`
	Details    map[string]string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code string, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, code string, message string, statusCode int) *AppError {
	return &AppError{
		Err:        err,
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// WithDetails adds details to an AppError
func (e *AppError) WithDetails(details map[string]string) *AppError {
	e.Details = details
	return e
}

// Common error constructors

func NotFound(resource string) *AppError {
	return &AppError{
		Err:        ErrNotFound,
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		StatusCode: http.StatusNotFound,
	}
}

func BadRequest(message string) *AppError {
	return &AppError{
		Err:        ErrBadRequest,
		Code:       "BAD_REQUEST",
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// Validation creates a validation error carrying per-field violations
// (field path -> message). Surfaced as HTTP 400.
func Validation(details map[string]string) *AppError {
	return &AppError{
		Err:        ErrValidation,
		Code:       "VALIDATION_ERROR",
		Message:    "validation failed",
		StatusCode: http.StatusBadRequest,
		Details:    details,
	}
}

// UnknownMarket creates an error for a market code outside the registry.
func UnknownMarket(market string) *AppError {
	return &AppError{
		Err:        ErrUnknownMarket,
		Code:       "UNKNOWN_MARKET",
		Message:    fmt.Sprintf("unsupported market: %s", market),
		StatusCode: http.StatusBadRequest,
	}
}

// GenerationFailed creates an error for a failed external generation call.
// The generation client absorbs these via fallback synthesis; the constructor
// exists for logging and for the per-market error list in multi-market results.
func GenerationFailed(market string, err error) *AppError {
	return &AppError{
		Err:        errors.Join(ErrGenerationFailed, err),
		Code:       "GENERATION_FAILED",
		Message:    fmt.Sprintf("label generation failed for market %s", market),
		StatusCode: http.StatusInternalServerError,
	}
}

// StoreError creates an error for an unavailable or failing document store.
func StoreError(err error) *AppError {
	return &AppError{
		Err:        errors.Join(ErrStoreUnavailable, err),
		Code:       "STORE_ERROR",
		Message:    "document store request failed",
		StatusCode: http.StatusInternalServerError,
	}
}

func Internal(message string) *AppError {
	return &AppError{
		Err:        ErrInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
	}
}

// Is checks if the error matches a target error
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As attempts to convert an error to a specific type
func As(err error, target any) bool {
	return errors.As(err, target)
}
