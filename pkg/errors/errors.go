package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation          ErrorType = "validation"
	ErrorTypeUnsupportedLanguage ErrorType = "unsupported_language"
	ErrorTypeDuplicateUsername   ErrorType = "duplicate_username"
	ErrorTypeInvalidCredentials  ErrorType = "invalid_credentials"
	ErrorTypeUnauthorized        ErrorType = "unauthorized"
	ErrorTypeForbidden           ErrorType = "forbidden"
	ErrorTypeNotFound            ErrorType = "not_found"
	ErrorTypeExtraction          ErrorType = "extraction"
	ErrorTypeGenerationFailed    ErrorType = "generation_failed"
	ErrorTypeProvider            ErrorType = "provider"
	ErrorTypeInvalidID           ErrorType = "invalid_id"
	ErrorTypeInternal            ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		Details:    detail,
		StatusCode: http.StatusBadRequest,
	}
}

// NewUnsupportedLanguageError reports a target language outside the supported table.
func NewUnsupportedLanguageError(code string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeUnsupportedLanguage,
		Message:    "Unsupported language",
		Details:    code,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewDuplicateUsernameError creates a registration conflict error
func NewDuplicateUsernameError(cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeDuplicateUsername,
		Message:    "Username already exists",
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewInvalidCredentialsError is returned for both unknown users and wrong passwords.
func NewInvalidCredentialsError(cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidCredentials,
		Message:    "Invalid username or password",
		StatusCode: http.StatusUnauthorized,
		Cause:      cause,
	}
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewExtractionError wraps a text extraction failure
func NewExtractionError(cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeExtraction,
		Message:    causeMessage(cause, "text extraction failed"),
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewGenerationFailedError creates an error for a failed AI task. The upstream
// error text, when present, becomes the message; an AppError cause contributes
// its Message only.
func NewGenerationFailedError(message string, cause error) *AppError {
	if appErr, ok := AsAppError(cause); ok {
		message = appErr.Message
	} else if cause != nil {
		message = cause.Error()
	}
	return &AppError{
		Type:       ErrorTypeGenerationFailed,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewProviderError wraps a transport or API failure of the generative provider
func NewProviderError(cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeProvider,
		Message:    "Gemini API Error: " + causeMessage(cause, "unknown error"),
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewInvalidIDError reports an identifier the store cannot parse
func NewInvalidIDError(id string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidID,
		Message:    fmt.Sprintf("'%s' is not a valid id", id),
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewInternalError creates a new internal server error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// AsAppError finds the first AppError in err's chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode returns the HTTP status code for an error
func GetStatusCode(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

func causeMessage(cause error, fallback string) string {
	if cause == nil {
		return fallback
	}
	return cause.Error()
}
