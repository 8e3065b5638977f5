package domain

import (
	"context"
	"time"
)

// NoResponseReceived is returned when the provider answers without any text.
const NoResponseReceived = "No response received."

// MaxSummaryInputChars is the largest text accepted by summarize.
const MaxSummaryInputChars = 10000

// SummaryRecord is a stored summarization. UserID is empty for anonymous calls.
type SummaryRecord struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id,omitempty"`
	OriginalText string    `json:"original_text"`
	Summary      string    `json:"summary"`
	CreatedAt    time.Time `json:"created_at"`
}

// QAInteraction is a stored question/answer exchange.
type QAInteraction struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Context   string    `json:"context"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}

// TranslationRecord is a stored translation.
type TranslationRecord struct {
	ID                 string    `json:"id"`
	OriginalText       string    `json:"original_text"`
	TranslatedText     string    `json:"translated_text"`
	TargetLanguage     string    `json:"target_language"`
	TargetLanguageName string    `json:"target_language_name"`
	Timestamp          time.Time `json:"timestamp"`
}

// PersistStatus describes what happened to the side record of a task.
type PersistStatus string

const (
	PersistSkipped PersistStatus = "skipped"
	PersistSaved   PersistStatus = "saved"
	PersistFailed  PersistStatus = "failed"
)

// Persistence is the outcome of a best-effort write. Err is set only when
// Status is PersistFailed.
type Persistence struct {
	Status PersistStatus
	Err    error
}

// Saved reports whether the side record was written.
func (p Persistence) Saved() bool { return p.Status == PersistSaved }

// SummarizeRequest is the summarize request body.
type SummarizeRequest struct {
	Text string `json:"text"`
}

// TranslateRequest is the translate request body.
type TranslateRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"target_lang"`
}

// QuestionRequest is the ask_question request body.
type QuestionRequest struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

// SummaryResult is the outcome of summarize.
type SummaryResult struct {
	Summary     string      `json:"summary"`
	Persistence Persistence `json:"-"`
}

// TranslationResult is the outcome of translate.
type TranslationResult struct {
	TranslatedText string      `json:"translated_text"`
	Persistence    Persistence `json:"-"`
}

// AnswerResult is the outcome of ask_question.
type AnswerResult struct {
	Answer      string      `json:"answer"`
	Persistence Persistence `json:"-"`
}

// SummaryRepository persists summaries.
type SummaryRepository interface {
	SaveSummary(ctx context.Context, record *SummaryRecord) error
	ListByUserID(ctx context.Context, userID string) ([]*SummaryRecord, error)
}

// QARepository persists question/answer interactions.
type QARepository interface {
	SaveInteraction(ctx context.Context, interaction *QAInteraction) error
}

// TranslationRepository persists translations.
type TranslationRepository interface {
	SaveTranslation(ctx context.Context, record *TranslationRecord) error
}

// Generator sends one prompt to the generative provider. Implementations
// return the generated text, NoResponseReceived when the response carries no
// text, or an error for transport and API failures.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AIService runs the AI tasks over text.
type AIService interface {
	Summarize(ctx context.Context, text string, userID string) (*SummaryResult, error)
	Translate(ctx context.Context, text string, targetLang string) (*TranslationResult, error)
	AskQuestion(ctx context.Context, question string, context string) (*AnswerResult, error)
	ListUserSummaries(ctx context.Context, userID string) ([]*SummaryRecord, error)
}
