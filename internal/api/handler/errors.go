package handler

import (
	"net/http"

	"github.com/cinelog/cinelog/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest     = apierr.CodeInvalidRequest
	CodeValidationFailed   = apierr.CodeValidationFailed
	CodeUnauthenticated    = apierr.CodeUnauthenticated
	CodePermissionDenied   = apierr.CodePermissionDenied
	CodeAccountNotFound    = apierr.CodeAccountNotFound
	CodeReviewNotFound     = apierr.CodeReviewNotFound
	CodeUsernameExists     = apierr.CodeUsernameExists
	CodeInvalidCredentials = apierr.CodeInvalidCredentials
	CodeInternalError      = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewUnauthenticatedError creates an unauthenticated error
func NewUnauthenticatedError() error {
	return apierr.NewUnauthenticatedError()
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
