package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"pdf-chatbot-api/internal/domain"
)

// LocalStorage implements domain.FileStore on a local directory
type LocalStorage struct {
	root   string
	logger domain.Logger
}

// NewLocalStorage creates the upload directory if needed
func NewLocalStorage(root string, logger domain.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{root: root, logger: logger}, nil
}

// Save writes the file under its base name. An existing file is replaced.
func (s *LocalStorage) Save(ctx context.Context, name string, data io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := s.pathFor(name)
	tmp, err := os.CreateTemp(s.root, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("failed to store %s: %w", name, err)
	}

	s.logger.Debug("File stored", "path", target)
	return nil
}

// Open returns the stored file or domain.ErrFileNotFound
func (s *LocalStorage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.pathFor(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		f.Close()
		return nil, domain.ErrFileNotFound
	}
	return f, nil
}

// pathFor keeps every name inside root.
func (s *LocalStorage) pathFor(name string) string {
	return filepath.Join(s.root, filepath.Base(filepath.Clean("/"+name)))
}
