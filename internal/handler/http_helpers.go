package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"pdf-chatbot-api/internal/domain"
	apperrors "pdf-chatbot-api/pkg/errors"
)

type contextKey string

const (
	userIDContextKey    contextKey = "user_id"
	requestIDContextKey contextKey = "request_id"
)

// errorResponse is the body of every failed request
type errorResponse struct {
	Error string `json:"error"`
	Type  string `json:"type"`
}

// GetUserIDFromContext extracts the authenticated user id from request context
func GetUserIDFromContext(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value(userIDContextKey).(string)
	return userID, ok && userID != ""
}

// GetRequestID returns the request id set by RequestIDMiddleware
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey).(string)
	return id
}

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, errorType apperrors.ErrorType, message string) {
	writeJSON(w, statusCode, errorResponse{Error: message, Type: string(errorType)})
}

// writeAppError maps err to its status code and error body. Unclassified
// errors become a generic 500.
func writeAppError(w http.ResponseWriter, r *http.Request, logger domain.Logger, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		logger.Error("Unhandled error", err, "path", r.URL.Path, "request_id", GetRequestID(r.Context()))
		writeError(w, http.StatusInternalServerError, apperrors.ErrorTypeInternal, "Internal server error")
		return
	}

	if appErr.StatusCode >= http.StatusInternalServerError {
		logger.Error("Request failed", err, "path", r.URL.Path, "type", appErr.Type, "request_id", GetRequestID(r.Context()))
	} else {
		logger.Debug("Request rejected", "path", r.URL.Path, "type", appErr.Type, "message", appErr.Message)
	}
	writeError(w, appErr.StatusCode, appErr.Type, appErr.Message)
}

// decodeJSON reads a JSON body into v
func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return apperrors.NewValidationError("Request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.NewValidationError("Invalid request body", err.Error())
	}
	return nil
}
