package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pdf-chatbot-api/internal/domain"
	apperrors "pdf-chatbot-api/pkg/errors"

	"github.com/google/uuid"
)

// AuthMiddleware validates bearer session tokens
type AuthMiddleware struct {
	authService domain.AuthService
	logger      domain.Logger
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authService domain.AuthService, logger domain.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		logger:      logger,
	}
}

// Middleware rejects requests without a valid bearer token
func (m *AuthMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeAppError(w, r, m.logger, apperrors.NewUnauthorizedError("Authorization header required"))
			return
		}
		m.authenticate(w, r, authHeader, next)
	})
}

// Optional attaches the user when a bearer token is present and lets
// anonymous requests through. A present but invalid token is still rejected.
func (m *AuthMiddleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}
		m.authenticate(w, r, authHeader, next)
	})
}

func (m *AuthMiddleware) authenticate(w http.ResponseWriter, r *http.Request, authHeader string, next http.Handler) {
	// Extract token from "Bearer <token>" format
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		writeAppError(w, r, m.logger, apperrors.NewUnauthorizedError("Invalid authorization header format"))
		return
	}

	token := parts[1]
	if token == "" {
		writeAppError(w, r, m.logger, apperrors.NewUnauthorizedError("Token required"))
		return
	}

	userID, err := m.authService.ValidateToken(token)
	if err != nil {
		m.logger.Warn("Token validation failed", "error", err, "request_id", GetRequestID(r.Context()))
		writeAppError(w, r, m.logger, apperrors.NewUnauthorizedError("Invalid token"))
		return
	}

	ctx := context.WithValue(r.Context(), userIDContextKey, userID)
	next.ServeHTTP(w, r.WithContext(ctx))
}

// RequestIDMiddleware propagates X-Request-Id, generating one when absent
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		ctx := context.WithValue(r.Context(), requestIDContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

// LoggingMiddleware writes one access log line per request
func LoggingMiddleware(logger domain.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)
			if rec.status == 0 {
				rec.status = http.StatusOK
			}
			logger.Info("HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"bytes", rec.bytes,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", GetRequestID(r.Context()),
			)
		})
	}
}

// RecoveryMiddleware turns a handler panic into a 500 response
func RecoveryMiddleware(logger domain.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rv := recover(); rv != nil {
					logger.Error("Handler panic", fmt.Errorf("%v", rv), "path", r.URL.Path, "request_id", GetRequestID(r.Context()))
					writeError(w, http.StatusInternalServerError, apperrors.ErrorTypeInternal, "Internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
