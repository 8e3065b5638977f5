package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"pdf-chatbot-api/internal/domain"
	apperrors "pdf-chatbot-api/pkg/errors"
)

// TextModel is a single-turn text generation backend. It returns an empty
// string when the response carries no text.
type TextModel interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GenerationService implements domain.Generator on top of one model handle.
// It is safe for concurrent use as long as the model is.
type GenerationService struct {
	model   TextModel
	timeout time.Duration
	logger  domain.Logger
}

// NewGenerationService wraps a model with the per-call timeout
func NewGenerationService(model TextModel, timeout time.Duration, logger domain.Logger) *GenerationService {
	return &GenerationService{
		model:   model,
		timeout: timeout,
		logger:  logger,
	}
}

// Generate sends one prompt. Transport and API failures become provider
// errors; a response without text becomes domain.NoResponseReceived.
func (s *GenerationService) Generate(ctx context.Context, prompt string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.model.GenerateText(ctx, prompt)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.logger.Warn("Generation timed out", "timeout", s.timeout.String())
		}
		s.logger.Error("Generation request failed", err, "elapsed_ms", time.Since(start).Milliseconds())
		return "", apperrors.NewProviderError(err)
	}

	if strings.TrimSpace(text) == "" {
		s.logger.Warn("Generation returned no text")
		return domain.NoResponseReceived, nil
	}

	s.logger.Debug("Generation completed", "elapsed_ms", time.Since(start).Milliseconds(), "chars", len(text))
	return text, nil
}
