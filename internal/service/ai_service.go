package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"pdf-chatbot-api/internal/domain"
	apperrors "pdf-chatbot-api/pkg/errors"
)

const (
	summarizePrompt = "Summarize this text briefly:\n%s"
	translatePrompt = "Translate this text to %s:\n%s"
	questionPrompt  = "Context: %s\nQuestion: %s"
)

type AIService struct {
	generator    domain.Generator
	summaries    domain.SummaryRepository
	interactions domain.QARepository
	translations domain.TranslationRepository
	logger       domain.Logger
}

func NewAIService(
	generator domain.Generator,
	summaries domain.SummaryRepository,
	interactions domain.QARepository,
	translations domain.TranslationRepository,
	logger domain.Logger,
) *AIService {
	return &AIService{
		generator:    generator,
		summaries:    summaries,
		interactions: interactions,
		translations: translations,
		logger:       logger,
	}
}

// Summarize returns a brief summary of text. When userID is set a summary
// record is written for that user; a failed write does not fail the call.
func (s *AIService) Summarize(ctx context.Context, text string, userID string) (*domain.SummaryResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationError("Text is required")
	}
	if n := utf8.RuneCountInString(text); n > domain.MaxSummaryInputChars {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("Text exceeds %d characters", domain.MaxSummaryInputChars),
			fmt.Sprintf("got %d", n),
		)
	}

	summary, err := s.generate(ctx, "summarize", fmt.Sprintf(summarizePrompt, text))
	if err != nil {
		return nil, apperrors.NewGenerationFailedError("Failed to generate summary", err)
	}
	if strings.TrimSpace(summary) == "" {
		return nil, apperrors.NewGenerationFailedError("Failed to generate summary", domain.ErrEmptyGeneration)
	}

	result := &domain.SummaryResult{
		Summary:     summary,
		Persistence: domain.Persistence{Status: domain.PersistSkipped},
	}
	if userID != "" {
		record := &domain.SummaryRecord{
			UserID:       userID,
			OriginalText: text,
			Summary:      summary,
		}
		result.Persistence = s.persist("summary", func() error {
			return s.summaries.SaveSummary(ctx, record)
		}, "user_id", userID)
	}
	return result, nil
}

// Translate translates text into one of the supported languages
func (s *AIService) Translate(ctx context.Context, text string, targetLang string) (*domain.TranslationResult, error) {
	languageName, ok := domain.LanguageName(targetLang)
	if !ok {
		return nil, apperrors.NewUnsupportedLanguageError(targetLang, domain.ErrUnsupportedLanguage)
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationError("Text is required")
	}

	translated, err := s.generate(ctx, "translate", fmt.Sprintf(translatePrompt, languageName, text))
	if err != nil {
		return nil, apperrors.NewGenerationFailedError("Failed to translate text", err)
	}

	record := &domain.TranslationRecord{
		OriginalText:       text,
		TranslatedText:     translated,
		TargetLanguage:     targetLang,
		TargetLanguageName: languageName,
	}
	return &domain.TranslationResult{
		TranslatedText: translated,
		Persistence: s.persist("translation", func() error {
			return s.translations.SaveTranslation(ctx, record)
		}, "target_language", targetLang),
	}, nil
}

// AskQuestion answers a question about the supplied context
func (s *AIService) AskQuestion(ctx context.Context, question string, contextText string) (*domain.AnswerResult, error) {
	if strings.TrimSpace(question) == "" {
		return nil, apperrors.NewValidationError("Question is required")
	}

	answer, err := s.generate(ctx, "ask_question", fmt.Sprintf(questionPrompt, contextText, question))
	if err != nil {
		return nil, apperrors.NewGenerationFailedError("Failed to answer question", err)
	}

	interaction := &domain.QAInteraction{
		Question: question,
		Context:  contextText,
		Answer:   answer,
	}
	return &domain.AnswerResult{
		Answer: answer,
		Persistence: s.persist("qa_interaction", func() error {
			return s.interactions.SaveInteraction(ctx, interaction)
		}),
	}, nil
}

// ListUserSummaries returns the user's summaries, newest first
func (s *AIService) ListUserSummaries(ctx context.Context, userID string) ([]*domain.SummaryRecord, error) {
	records, err := s.summaries.ListByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidID) {
			return nil, apperrors.NewInvalidIDError(userID, err)
		}
		s.logger.Error("Failed to list summaries", err, "user_id", userID)
		return nil, apperrors.NewInternalError("Failed to list summaries", err)
	}
	if records == nil {
		records = []*domain.SummaryRecord{}
	}
	return records, nil
}

func (s *AIService) generate(ctx context.Context, task, prompt string) (string, error) {
	s.logger.Debug("Generation requested", "task", task, "prompt_chars", len(prompt))
	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error("Generation failed", err, "task", task)
		return "", err
	}
	return text, nil
}

// persist runs a best-effort write and reports its outcome.
func (s *AIService) persist(kind string, write func() error, fields ...interface{}) domain.Persistence {
	if err := write(); err != nil {
		s.logger.Warn("Failed to persist "+kind, append(fields, "error", err)...)
		return domain.Persistence{Status: domain.PersistFailed, Err: err}
	}
	return domain.Persistence{Status: domain.PersistSaved}
}
