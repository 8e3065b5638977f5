package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"pdf-chatbot-api/internal/domain"
	apperrors "pdf-chatbot-api/pkg/errors"
)

type DocumentService struct {
	files       domain.FileStore
	repo        domain.DocumentRepository
	extractor   domain.TextExtractor
	maxFileSize int64
	logger      domain.Logger
}

func NewDocumentService(
	repo domain.DocumentRepository,
	files domain.FileStore,
	extractor domain.TextExtractor,
	maxFileSize int64,
	logger domain.Logger,
) *DocumentService {
	return &DocumentService{
		files:       files,
		repo:        repo,
		extractor:   extractor,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// Upload stores the raw file, extracts its text and records the extraction.
// Recording is best-effort: a store failure is logged and reported through
// the result's Persistence, never as an error.
func (s *DocumentService) Upload(ctx context.Context, filename string, file io.Reader) (*domain.UploadResult, error) {
	name := cleanFilename(filename)
	if name == "" {
		return nil, apperrors.NewValidationError("A file with a name is required")
	}

	// read one byte past the limit to detect oversized uploads
	data, err := io.ReadAll(io.LimitReader(file, s.maxFileSize+1))
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to read upload", err)
	}
	if int64(len(data)) > s.maxFileSize {
		return nil, apperrors.NewValidationError("File too large", fmt.Sprintf("max %d bytes", s.maxFileSize))
	}

	if err := s.files.Save(ctx, name, bytes.NewReader(data)); err != nil {
		s.logger.Error("Failed to store upload", err, "filename", name)
		return nil, apperrors.NewInternalError("Failed to store file", err)
	}

	text, err := s.extractor.ExtractText(data)
	if err != nil {
		s.logger.Error("Text extraction failed", err, "filename", name, "size", len(data))
		return nil, apperrors.NewExtractionError(err)
	}

	result := &domain.UploadResult{
		Filename:      name,
		ExtractedText: text,
	}

	doc := &domain.ExtractedDocument{Filename: name, Text: text}
	if err := s.repo.Store(ctx, doc); err != nil {
		s.logger.Warn("Failed to persist extracted text", "filename", name, "error", err)
		result.Persistence = domain.Persistence{Status: domain.PersistFailed, Err: err}
	} else {
		result.Persistence = domain.Persistence{Status: domain.PersistSaved}
	}

	s.logger.Info("PDF processed", "filename", name, "size", len(data), "chars", len(text), "persisted", result.Persistence.Saved())
	return result, nil
}

// OpenFile returns a previously uploaded file
func (s *DocumentService) OpenFile(ctx context.Context, filename string) (io.ReadCloser, error) {
	name := cleanFilename(filename)
	if name == "" {
		return nil, apperrors.NewNotFoundError("File not found")
	}

	rc, err := s.files.Open(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrFileNotFound) {
			return nil, apperrors.NewNotFoundError("File not found")
		}
		return nil, apperrors.NewInternalError("Failed to open file", err)
	}
	return rc, nil
}

// cleanFilename reduces a client supplied name to its base name.
func cleanFilename(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	if name == "" {
		return ""
	}
	base := filepath.Base("/" + name)
	if base == "/" || base == "." || base == ".." {
		return ""
	}
	return base
}
