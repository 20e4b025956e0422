package identsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lumahq/identity/pkg/httpx"
)

// ============================================================================
// APIError - typed error envelope
// ============================================================================

// APIError is the error envelope of the identity API. It implements the
// error interface and is used on both sides of the wire: handlers write
// it, the client decodes failed responses back into it.
type APIError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int `json:"statusCode"`

	// Status is the stable machine-readable status string.
	Status string `json:"status"`

	// Message is a human-readable description.
	Message string `json:"message"`

	// Errors carries field-keyed validation messages. Only present on
	// validation failures.
	Errors map[string][]string `json:"errors,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Status, e.StatusCode, e.Message)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(e)
}

// WithErrors returns a copy of the error carrying field-keyed messages.
func (e *APIError) WithErrors(fieldErrors map[string][]string) *APIError {
	cp := *e
	cp.Errors = fieldErrors
	return &cp
}

// ============================================================================
// Predefined errors
// ============================================================================

var (
	// ErrRegistrationFailed is the validation envelope of /auth/register.
	// Callers attach field errors with WithErrors.
	ErrRegistrationFailed = &APIError{
		StatusCode: http.StatusUnprocessableEntity,
		Status:     "Bad request",
		Message:    "Registration unsuccessful",
	}

	// ErrAuthenticationFailed is the single login failure envelope.
	// Unknown email and wrong password produce byte-identical responses.
	ErrAuthenticationFailed = &APIError{
		StatusCode: http.StatusUnauthorized,
		Status:     "Bad request",
		Message:    "Authentication failed",
	}

	// ErrValidation is the envelope for field errors outside registration.
	ErrValidation = &APIError{
		StatusCode: http.StatusUnprocessableEntity,
		Status:     "Bad request",
		Message:    "Validation failed",
	}

	// ErrBadRequest reports an unreadable request body.
	ErrBadRequest = &APIError{
		StatusCode: http.StatusBadRequest,
		Status:     "Bad request",
		Message:    "Invalid request payload",
	}

	// ErrUnauthorized reports a missing, malformed, or expired bearer
	// token, or an inactive account.
	ErrUnauthorized = &APIError{
		StatusCode: http.StatusUnauthorized,
		Status:     "error",
		Message:    "Authentication required",
	}

	// ErrUserNotFound reports a missing user.
	ErrUserNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Status:     "error",
		Message:    "User not found",
	}

	// ErrOrganisationNotFound covers both a genuinely missing
	// organisation and one the caller is not a member of.
	ErrOrganisationNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Status:     "error",
		Message:    "Organisation not found",
	}

	// ErrAlreadyMember reports a duplicate membership grant.
	ErrAlreadyMember = &APIError{
		StatusCode: http.StatusConflict,
		Status:     "error",
		Message:    "User is already a member of this organisation",
	}

	// ErrInternal is the catch-all for store and server failures.
	ErrInternal = &APIError{
		StatusCode: http.StatusInternalServerError,
		Status:     "error",
		Message:    "Internal server error",
	}
)

// parseErrorResponse turns a non-2xx response body into an *APIError.
// Bodies that do not decode as the envelope still yield a typed error
// carrying the status code.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Status:     "error",
			Message:    fmt.Sprintf("unexpected response (HTTP %d)", resp.StatusCode),
		}
	}
	if apiErr.StatusCode == 0 {
		apiErr.StatusCode = resp.StatusCode
	}
	return apiErr
}
