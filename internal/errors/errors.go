// Package errors provides custom error types for the Spendwise API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrAccountLocked      = &AppError{Code: "ACCOUNT_LOCKED", Message: "Too many failed attempts. Try again later", StatusCode: http.StatusLocked}
	ErrEmailNotVerified   = &AppError{Code: "EMAIL_NOT_VERIFIED", Message: "Email address has not been verified", StatusCode: http.StatusForbidden}
	ErrInvalidToken       = &AppError{Code: "INVALID_TOKEN", Message: "Token is invalid or has expired", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Expense errors.
var (
	ErrExpenseNotFound  = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found", StatusCode: http.StatusNotFound}
	ErrValidationFailed = &AppError{Code: "VALIDATION_FAILED", Message: "Expense failed validation", StatusCode: http.StatusUnprocessableEntity}
	ErrUnknownDateRange = &AppError{Code: "UNKNOWN_DATE_RANGE", Message: "Unknown date range filter", StatusCode: http.StatusBadRequest}
)

// Settings errors.
var (
	ErrSettingsNotFound  = &AppError{Code: "SETTINGS_NOT_FOUND", Message: "User settings not found", StatusCode: http.StatusNotFound}
	ErrDuplicateCategory = &AppError{Code: "DUPLICATE_CATEGORY", Message: "Custom category already exists", StatusCode: http.StatusConflict}
	ErrUnknownCurrency   = &AppError{Code: "UNKNOWN_CURRENCY", Message: "Unsupported currency code", StatusCode: http.StatusBadRequest}
)

// Split group errors.
var (
	ErrGroupNotFound = &AppError{Code: "GROUP_NOT_FOUND", Message: "Split group not found", StatusCode: http.StatusNotFound}
	ErrEmptyGroup    = &AppError{Code: "EMPTY_GROUP", Message: "Split group has no members", StatusCode: http.StatusBadRequest}
)

// Storage errors. Provider-specific failures are translated into this closed
// vocabulary at the store boundary; unrecognized failures fall back to
// ErrStorageInternal.
var (
	ErrStoragePermissionDenied = &AppError{Code: "STORAGE_PERMISSION_DENIED", Message: "You do not have permission to perform this action", StatusCode: http.StatusForbidden}
	ErrStorageUnavailable      = &AppError{Code: "STORAGE_UNAVAILABLE", Message: "Storage is currently unavailable. Please try again later", StatusCode: http.StatusServiceUnavailable}
	ErrStorageUnauthenticated  = &AppError{Code: "STORAGE_UNAUTHENTICATED", Message: "You must be logged in to perform this action", StatusCode: http.StatusUnauthorized}
	ErrStorageMissingIndex     = &AppError{Code: "STORAGE_MISSING_INDEX", Message: "Storage configuration issue. Please contact support if this persists", StatusCode: http.StatusInternalServerError}
	ErrStorageInternal         = &AppError{Code: "STORAGE_INTERNAL", Message: "An unexpected storage error occurred", StatusCode: http.StatusInternalServerError}
)
