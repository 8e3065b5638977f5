package handler

import (
	"net/http"

	"pdf-chatbot-api/internal/domain"
)

type AuthHandler struct {
	authService domain.AuthService
	logger      domain.Logger
}

func NewAuthHandler(authService domain.AuthService, logger domain.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register creates an account and returns it with a session token
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.Credentials
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	result, err := h.authService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	h.logger.Info("User registered", "user_id", result.ID)
	writeJSON(w, http.StatusOK, result)
}

// Login checks credentials and returns a fresh session token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.Credentials
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	result, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
