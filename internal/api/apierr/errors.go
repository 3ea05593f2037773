package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cinelog/cinelog/internal/model"
	"github.com/cinelog/cinelog/internal/services/auth"
)

// FieldError is one failing field in a validation error response
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// APIError represents an API error response. Fields is populated only
// for validation failures, one entry per failing field.
type APIError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodePermissionDenied   = "PERMISSION_DENIED"
	CodeAccountNotFound    = "ACCOUNT_NOT_FOUND"
	CodeReviewNotFound     = "REVIEW_NOT_FOUND"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Validation failures carry per-field detail
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		fields := make([]FieldError, len(verr.Fields))
		for i, f := range verr.Fields {
			fields[i] = FieldError{Field: f.Field, Reason: f.Reason}
		}
		return &httpError{http.StatusBadRequest, APIError{
			Code:    CodeValidationFailed,
			Message: "Validation failed",
			Fields:  fields,
		}}
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrAccountNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodeAccountNotFound, Message: "Account not found"}}
	case errors.Is(err, model.ErrReviewNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodeReviewNotFound, Message: "Review not found"}}
	case errors.Is(err, model.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{Code: CodeUsernameExists, Message: "Username already taken"}}
	case errors.Is(err, model.ErrUnauthenticated):
		return &httpError{http.StatusUnauthorized, APIError{Code: CodeUnauthenticated, Message: "Authentication required"}}
	case errors.Is(err, model.ErrPermissionDenied):
		return &httpError{http.StatusForbidden, APIError{Code: CodePermissionDenied, Message: "You do not have permission to do that"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{Code: CodeInvalidCredentials, Message: "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{Code: CodeUnauthenticated, Message: "Invalid or expired session"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: message}}
}

// NewUnauthenticatedError creates an unauthenticated error
func NewUnauthenticatedError() error {
	return &httpError{http.StatusUnauthorized, APIError{Code: CodeUnauthenticated, Message: "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
}
