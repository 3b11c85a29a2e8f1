// Package apperror provides structured error handling for the provisioner and the API daemon.
// Every failure that reaches an operator or an HTTP client is an AppError.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	// Infrastructure errors (5xx)
	CodeInternal = "INTERNAL_ERROR"
	CodeRemote   = "REMOTE_ERROR"

	// Validation errors (400)
	CodeValidation = "VALIDATION_ERROR"

	// Credential and site errors
	CodeAuth           = "AUTH_ERROR"
	CodeSiteResolution = "SITE_RESOLUTION_ERROR"

	// Provisioning errors
	CodeUnresolvedLookup = "UNRESOLVED_LOOKUP"
	CodeListCreation     = "LIST_CREATION_ERROR"
	CodeColumnCreation   = "COLUMN_CREATION_ERROR"

	// Not found (404)
	CodeNotFound = "NOT_FOUND"
)

// AppError is the standard error type for the module.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (list, column, url...)
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is the suggested HTTP status code
	HTTPStatus int `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// --- Factory functions ---

// NewValidation creates a validation error (400)
func NewValidation(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFound creates a not found error (404)
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewInternal creates an internal server error (hides details from client)
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewAuth is returned when no elevated credential can be obtained.
// Fatal for a provisioning run; never retried.
func NewAuth(err error) *AppError {
	return &AppError{
		Code:       CodeAuth,
		Message:    "No valid admin credential available (run `az login` first)",
		HTTPStatus: http.StatusUnauthorized,
		Err:        err,
	}
}

// NewSiteResolution is returned when the configured site URL does not resolve to a site id.
func NewSiteResolution(siteURL string, err error) *AppError {
	return &AppError{
		Code:       CodeSiteResolution,
		Message:    fmt.Sprintf("Site %s could not be resolved", siteURL),
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"site_url": siteURL},
		Err:        err,
	}
}

// NewUnresolvedLookup signals a lookup column whose target list has not been synchronized yet.
// It is an ordering defect in the list registry, not a transient condition.
func NewUnresolvedLookup(list, column, target string) *AppError {
	return &AppError{
		Code:       CodeUnresolvedLookup,
		Message:    fmt.Sprintf("Lookup column %s.%s references list %q which has not been provisioned yet", list, column, target),
		HTTPStatus: http.StatusInternalServerError,
		Details:    map[string]any{"list": list, "column": column, "lookup_list": target},
	}
}

// NewListCreation wraps a remote rejection of a list-creation request.
func NewListCreation(list string, err error) *AppError {
	return &AppError{
		Code:       CodeListCreation,
		Message:    fmt.Sprintf("Failed to create list %s", list),
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"list": list},
		Err:        err,
	}
}

// NewColumnCreation wraps a remote rejection of a column-creation request.
func NewColumnCreation(list, column string, err error) *AppError {
	return &AppError{
		Code:       CodeColumnCreation,
		Message:    fmt.Sprintf("Failed to create column %s on list %s", column, list),
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"list": list, "column": column},
		Err:        err,
	}
}

// NewRemote wraps an unexpected failure of the remote list store.
func NewRemote(operation string, err error) *AppError {
	return &AppError{
		Code:       CodeRemote,
		Message:    fmt.Sprintf("Remote call %s failed", operation),
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"operation": operation},
		Err:        err,
	}
}

// --- Helper functions ---

// IsAppError checks if error is AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatus returns appropriate HTTP status for any error
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// IsCode reports whether the first AppError in err's chain carries code.
func IsCode(err error, code string) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}
