package supabase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"pdf-chatbot-api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	storage_go "github.com/supabase-community/storage-go"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})         {}
func (nopLogger) Error(string, error, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{})        {}
func (nopLogger) Warn(string, ...interface{})         {}

type fakeStorage struct {
	objects   map[string][]byte
	upsert    bool
	uploadErr error
}

func (f *fakeStorage) UploadOrUpdateFile(bucket, key string, data io.Reader, _ bool, opts ...storage_go.FileOptions) (storage_go.FileUploadResponse, error) {
	if f.uploadErr != nil {
		return storage_go.FileUploadResponse{}, f.uploadErr
	}
	if len(opts) > 0 && opts[0].Upsert != nil {
		f.upsert = *opts[0].Upsert
	}
	b, _ := io.ReadAll(data)
	f.objects[bucket+"/"+key] = b
	return storage_go.FileUploadResponse{Key: key}, nil
}

func (f *fakeStorage) DownloadFile(bucket, key string, _ ...storage_go.UrlOptions) ([]byte, error) {
	b, ok := f.objects[bucket+"/"+key]
	if !ok {
		return nil, &storage_go.StorageError{Status: 404, Message: "Object not found"}
	}
	return b, nil
}

func TestFileStore_SaveAndOpen(t *testing.T) {
	fake := &fakeStorage{objects: map[string][]byte{}}
	store := newFileStore(fake, "uploads", nopLogger{})
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "dir/report.pdf", bytes.NewReader([]byte("v1"))))
	require.NoError(t, store.Save(ctx, "report.pdf", bytes.NewReader([]byte("v2"))))
	assert.True(t, fake.upsert)

	rc, err := store.Open(ctx, "report.pdf")
	require.NoError(t, err)
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	assert.Equal(t, "v2", string(got))
}

func TestFileStore_OpenMissing(t *testing.T) {
	store := newFileStore(&fakeStorage{objects: map[string][]byte{}}, "uploads", nopLogger{})

	_, err := store.Open(context.Background(), "missing.mp3")
	assert.ErrorIs(t, err, domain.ErrFileNotFound)
}

func TestFileStore_SaveError(t *testing.T) {
	upstream := errors.New("bucket not writable")
	store := newFileStore(&fakeStorage{objects: map[string][]byte{}, uploadErr: upstream}, "uploads", nopLogger{})

	err := store.Save(context.Background(), "a.pdf", bytes.NewReader(nil))
	assert.ErrorIs(t, err, upstream)
}
