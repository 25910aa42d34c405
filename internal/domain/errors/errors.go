package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidTransition  = errors.New("invalid state transition")
	ErrInsufficientTokens = errors.New("insufficient tokens")
	ErrCustodyConflict    = errors.New("token custody conflict")
	ErrDuplicateRequest   = errors.New("duplicate trust request")
)

// AppError represents application error with HTTP status
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

func InvalidArgument(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrInvalidArgument)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, ErrForbidden)
}

// InvalidTransition marks a state change that is not legal from the record's
// current state. Distinct from Forbidden so callers can map it separately.
func InvalidTransition(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrInvalidTransition)
}

func InsufficientTokens(message string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, message, ErrInsufficientTokens)
}

func CustodyConflict(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrCustodyConflict)
}

func DuplicateRequest(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrDuplicateRequest)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "internal server error", err)
}
