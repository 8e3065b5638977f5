package handler

import (
	"net/http"

	"pdf-chatbot-api/internal/domain"
	apperrors "pdf-chatbot-api/pkg/errors"

	"github.com/gorilla/mux"
)

type AIHandler struct {
	aiService domain.AIService
	logger    domain.Logger
}

func NewAIHandler(aiService domain.AIService, logger domain.Logger) *AIHandler {
	return &AIHandler{
		aiService: aiService,
		logger:    logger,
	}
}

// Summarize summarizes text. The summary is stored for the token's user, or
// for the user_id query parameter when no token is present.
func (h *AIHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req domain.SummarizeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	userID, ok := GetUserIDFromContext(r)
	if !ok {
		userID = r.URL.Query().Get("user_id")
	}

	result, err := h.aiService.Summarize(r.Context(), req.Text, userID)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *AIHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req domain.TranslateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	result, err := h.aiService.Translate(r.Context(), req.Text, req.TargetLang)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *AIHandler) AskQuestion(w http.ResponseWriter, r *http.Request) {
	var req domain.QuestionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	result, err := h.aiService.AskQuestion(r.Context(), req.Question, req.Context)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ListUserSummaries returns a user's summaries, newest first. An
// authenticated caller may only list its own.
func (h *AIHandler) ListUserSummaries(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	if tokenUser, ok := GetUserIDFromContext(r); ok && tokenUser != userID {
		writeAppError(w, r, h.logger, apperrors.NewForbiddenError("Cannot list another user's summaries"))
		return
	}

	records, err := h.aiService.ListUserSummaries(r.Context(), userID)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}
