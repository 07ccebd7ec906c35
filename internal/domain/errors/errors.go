package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrAlreadyExists       = errors.New("resource already exists")
	ErrValidation          = errors.New("validation failed")
	ErrInvalidRole         = errors.New("invalid role")
	ErrInvalidHierarchy    = errors.New("invalid structure hierarchy")
	ErrInvalidTransition   = errors.New("invalid deployment status transition")
	ErrAuthorizationDenied = errors.New("authorization denied")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountDisabled     = errors.New("account disabled")
	ErrStorageFailure      = errors.New("storage failure")
)

// AppError represents an application error carrying an HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{Status: status, Code: code, Message: message, Err: err}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, "NOT_FOUND", message, ErrNotFound)
}

func AlreadyExists(message string) *AppError {
	return NewAppError(http.StatusConflict, "ALREADY_EXISTS", message, ErrAlreadyExists)
}

func Validation(message string) *AppError {
	return NewAppError(http.StatusBadRequest, "VALIDATION_ERROR", message, ErrValidation)
}

func InvalidHierarchy(message string) *AppError {
	return NewAppError(http.StatusBadRequest, "INVALID_HIERARCHY", message, ErrInvalidHierarchy)
}

func InvalidTransition(from, to string) *AppError {
	return NewAppError(http.StatusConflict, "INVALID_TRANSITION",
		fmt.Sprintf("cannot transition deployment status from %s to %s", from, to),
		ErrInvalidTransition)
}

// Denied wraps an evaluator reason into a 403 error
func Denied(reason string) *AppError {
	return NewAppError(http.StatusForbidden, "AUTHORIZATION_DENIED", reason, ErrAuthorizationDenied)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, "UNAUTHORIZED", message, ErrInvalidCredentials)
}

// AccountDisabled rejects a login against a deactivated account
func AccountDisabled() *AppError {
	return NewAppError(http.StatusForbidden, "ACCOUNT_DISABLED", "account is disabled", ErrAccountDisabled)
}

// StorageError wraps a collaborator failure; never retried by this layer
func StorageError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "STORAGE_FAILURE", "storage operation failed", fmt.Errorf("%w: %v", ErrStorageFailure, err))
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", err)
}
