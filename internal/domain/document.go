package domain

import (
	"context"
	"io"
	"time"
)

// NoTextFound is returned in place of extracted text when no page yields any text.
const NoTextFound = "No text found."

// ExtractedDocument is the text extracted from one upload. Immutable once stored.
type ExtractedDocument struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// UploadResult is the response of the upload pipeline.
type UploadResult struct {
	Filename      string      `json:"filename"`
	ExtractedText string      `json:"extracted_text"`
	Persistence   Persistence `json:"-"`
}

// DocumentRepository stores extracted documents.
type DocumentRepository interface {
	Store(ctx context.Context, document *ExtractedDocument) error
}

// FileStore keeps raw uploaded files addressed by name. Saving an existing
// name overwrites it.
type FileStore interface {
	Save(ctx context.Context, name string, data io.Reader) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// TextExtractor turns a PDF into plain text.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// DocumentService runs the upload pipeline and serves stored files.
type DocumentService interface {
	Upload(ctx context.Context, filename string, file io.Reader) (*UploadResult, error)
	OpenFile(ctx context.Context, filename string) (io.ReadCloser, error)
}
