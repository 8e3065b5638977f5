package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"pdf-chatbot-api/internal/domain"
)

// MockLogger discards everything but remembers warnings.
type MockLogger struct {
	mu    sync.Mutex
	warns []string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (l *MockLogger) Info(msg string, fields ...interface{})             {}
func (l *MockLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *MockLogger) Debug(msg string, fields ...interface{})            {}
func (l *MockLogger) Warn(msg string, fields ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

// --- users ---

type mockUserRepo struct {
	users     map[string]*domain.User
	creates   int
	createErr error
	lookupErr error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*domain.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.users[user.Username]; ok {
		return domain.ErrDuplicateUsername
	}
	m.creates++
	user.ID = fmt.Sprintf("%024x", m.creates)
	m.users[user.Username] = user
	return nil
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	u, ok := m.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.lookupErr != nil {
		return false, m.lookupErr
	}
	_, ok := m.users[username]
	return ok, nil
}

// --- documents ---

type mockFileStore struct {
	files   map[string][]byte
	saveErr error
}

func newMockFileStore() *mockFileStore {
	return &mockFileStore{files: make(map[string][]byte)}
}

func (m *mockFileStore) Save(ctx context.Context, name string, data io.Reader) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	b, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	m.files[name] = b
	return nil
}

func (m *mockFileStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	b, ok := m.files[name]
	if !ok {
		return nil, domain.ErrFileNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

type mockExtractor struct {
	text  string
	err   error
	calls int
}

func (m *mockExtractor) ExtractText(data []byte) (string, error) {
	m.calls++
	return m.text, m.err
}

type mockDocumentRepo struct {
	stored []*domain.ExtractedDocument
	err    error
}

func (m *mockDocumentRepo) Store(ctx context.Context, document *domain.ExtractedDocument) error {
	if m.err != nil {
		return m.err
	}
	m.stored = append(m.stored, document)
	return nil
}

// --- AI ---

type mockGenerator struct {
	response string
	err      error
	prompts  []string
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.response, m.err
}

type mockAIRepo struct {
	summaries    []*domain.SummaryRecord
	interactions []*domain.QAInteraction
	translations []*domain.TranslationRecord
	listResult   []*domain.SummaryRecord
	saveErr      error
	listErr      error
}

func (m *mockAIRepo) SaveSummary(ctx context.Context, record *domain.SummaryRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.summaries = append(m.summaries, record)
	return nil
}

func (m *mockAIRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.SummaryRecord, error) {
	return m.listResult, m.listErr
}

func (m *mockAIRepo) SaveInteraction(ctx context.Context, interaction *domain.QAInteraction) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.interactions = append(m.interactions, interaction)
	return nil
}

func (m *mockAIRepo) SaveTranslation(ctx context.Context, record *domain.TranslationRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.translations = append(m.translations, record)
	return nil
}

// --- generation ---

type mockTextModel struct {
	text  string
	err   error
	block bool
}

func (m *mockTextModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	if m.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return m.text, m.err
}
