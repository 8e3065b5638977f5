package supabase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"pdf-chatbot-api/internal/domain"

	storage_go "github.com/supabase-community/storage-go"
	"github.com/supabase-community/supabase-go"
)

// objectStorage is the subset of the storage-go client used by FileStore
type objectStorage interface {
	UploadOrUpdateFile(bucketId string, relativePath string, data io.Reader, update bool, options ...storage_go.FileOptions) (storage_go.FileUploadResponse, error)
	DownloadFile(bucketId string, filePath string, urlOptions ...storage_go.UrlOptions) ([]byte, error)
}

// FileStore implements domain.FileStore on a Supabase Storage bucket
type FileStore struct {
	storage objectStorage
	bucket  string
	logger  domain.Logger
}

// NewFileStore creates a Supabase client from config and returns a file store
// over the configured bucket.
func NewFileStore(config domain.Config, logger domain.Logger) (*FileStore, error) {
	supabaseURL := config.GetSupabaseURL()
	supabaseKey := config.GetSupabaseKey()

	if supabaseURL == "" || supabaseKey == "" {
		return nil, fmt.Errorf("supabase URL and key must be provided")
	}

	client, err := supabase.NewClient(supabaseURL, supabaseKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create Supabase client: %w", err)
	}

	logger.Info("Supabase storage initialized successfully", "url", supabaseURL, "bucket", config.GetSupabaseBucket())
	return newFileStore(client.Storage, config.GetSupabaseBucket(), logger), nil
}

func newFileStore(storage objectStorage, bucket string, logger domain.Logger) *FileStore {
	return &FileStore{
		storage: storage,
		bucket:  bucket,
		logger:  logger,
	}
}

// Save uploads the file, overwriting any object with the same name
func (s *FileStore) Save(ctx context.Context, name string, data io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := path.Base(name)
	contentType := "application/pdf"
	upsert := true
	_, err := s.storage.UploadOrUpdateFile(s.bucket, key, data, false, storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		s.logger.Error("Failed to upload file to storage", err, "bucket", s.bucket, "key", key)
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

// Open downloads the named object
func (s *FileStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := path.Base(name)
	data, err := s.storage.DownloadFile(s.bucket, key)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to download %s: %w", key, err)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func isNotFound(err error) bool {
	var storageErr *storage_go.StorageError
	if errors.As(err, &storageErr) {
		if storageErr.Status == http.StatusNotFound {
			return true
		}
		return strings.Contains(strings.ToLower(storageErr.Message), "not found")
	}
	return false
}
