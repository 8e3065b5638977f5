package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"pdf-chatbot-api/internal/domain"
	apperrors "pdf-chatbot-api/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type documentFixture struct {
	files     *mockFileStore
	repo      *mockDocumentRepo
	extractor *mockExtractor
	svc       *DocumentService
}

func newDocumentFixture(maxSize int64) *documentFixture {
	f := &documentFixture{
		files:     newMockFileStore(),
		repo:      &mockDocumentRepo{},
		extractor: &mockExtractor{text: "Hello world"},
	}
	f.svc = NewDocumentService(f.repo, f.files, f.extractor, maxSize, NewMockLogger())
	return f
}

func TestDocumentService_Upload(t *testing.T) {
	f := newDocumentFixture(1024)

	result, err := f.svc.Upload(context.Background(), "report.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)

	assert.Equal(t, "report.pdf", result.Filename)
	assert.Equal(t, "Hello world", result.ExtractedText)
	assert.True(t, result.Persistence.Saved())
	assert.Equal(t, []byte("%PDF-1.4"), f.files.files["report.pdf"])

	require.Len(t, f.repo.stored, 1)
	assert.Equal(t, "report.pdf", f.repo.stored[0].Filename)
	assert.Equal(t, "Hello world", f.repo.stored[0].Text)
}

func TestDocumentService_UploadNoText(t *testing.T) {
	f := newDocumentFixture(1024)
	f.extractor.text = domain.NoTextFound

	result, err := f.svc.Upload(context.Background(), "scan.pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, domain.NoTextFound, result.ExtractedText)
}

func TestDocumentService_UploadStripsDirectories(t *testing.T) {
	f := newDocumentFixture(1024)

	result, err := f.svc.Upload(context.Background(), "../../etc/report.pdf", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", result.Filename)
	_, ok := f.files.files["report.pdf"]
	assert.True(t, ok)
}

func TestDocumentService_UploadPersistenceIsBestEffort(t *testing.T) {
	f := newDocumentFixture(1024)
	f.repo.err = errors.New("store unavailable")

	result, err := f.svc.Upload(context.Background(), "report.pdf", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "Hello world", result.ExtractedText)
	assert.Equal(t, domain.PersistFailed, result.Persistence.Status)
	assert.EqualError(t, result.Persistence.Err, "store unavailable")
}

func TestDocumentService_UploadExtractionFailure(t *testing.T) {
	f := newDocumentFixture(1024)
	f.extractor.err = errors.New("failed to open PDF: not a pdf")

	_, err := f.svc.Upload(context.Background(), "broken.pdf", strings.NewReader("garbage"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExtraction))
	assert.Equal(t, 500, apperrors.GetStatusCode(err))
	assert.Contains(t, err.Error(), "not a pdf")
	assert.Empty(t, f.repo.stored)
}

func TestDocumentService_UploadValidation(t *testing.T) {
	f := newDocumentFixture(4)

	_, err := f.svc.Upload(context.Background(), "", strings.NewReader("x"))
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = f.svc.Upload(context.Background(), "big.pdf", bytes.NewReader(make([]byte, 5)))
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.Zero(t, f.extractor.calls)

	_, err = f.svc.Upload(context.Background(), "fits.pdf", bytes.NewReader(make([]byte, 4)))
	assert.NoError(t, err)
}

func TestDocumentService_UploadStoreFailure(t *testing.T) {
	f := newDocumentFixture(1024)
	f.files.saveErr = errors.New("disk full")

	_, err := f.svc.Upload(context.Background(), "report.pdf", strings.NewReader("x"))
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
	assert.Zero(t, f.extractor.calls)
}

func TestDocumentService_OpenFile(t *testing.T) {
	f := newDocumentFixture(1024)
	f.files.files["speech.mp3"] = []byte("ID3")

	rc, err := f.svc.OpenFile(context.Background(), "speech.mp3")
	require.NoError(t, err)
	defer rc.Close()
	b, _ := io.ReadAll(rc)
	assert.Equal(t, "ID3", string(b))

	_, err = f.svc.OpenFile(context.Background(), "missing.mp3")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	assert.Equal(t, 404, apperrors.GetStatusCode(err))
}

func TestCleanFilename(t *testing.T) {
	tests := map[string]string{
		"a.pdf":         "a.pdf",
		"dir/a.pdf":     "a.pdf",
		`C:\docs\a.pdf`: "a.pdf",
		"../../a.pdf":   "a.pdf",
		"":              "",
		"  ":            "",
		"..":            "",
		"/":             "",
	}
	for in, want := range tests {
		assert.Equal(t, want, cleanFilename(in), "input %q", in)
	}
}
