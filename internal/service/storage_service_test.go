package service

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pdf-chatbot-api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveOverwritesAndOpens(t *testing.T) {
	root := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocalStorage(root, NewMockLogger())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "doc.pdf", strings.NewReader("first")))
	require.NoError(t, store.Save(ctx, "doc.pdf", strings.NewReader("second")))

	rc, err := store.Open(ctx, "doc.pdf")
	require.NoError(t, err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestLocalStorage_OpenMissing(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), NewMockLogger())
	require.NoError(t, err)

	_, err = store.Open(context.Background(), "nope.mp3")
	assert.ErrorIs(t, err, domain.ErrFileNotFound)
}

func TestLocalStorage_StaysInsideRoot(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "uploads")
	store, err := NewLocalStorage(root, NewMockLogger())
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), "../../escape.pdf", strings.NewReader("x")))

	_, err = os.Stat(filepath.Join(root, "escape.pdf"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(parent, "escape.pdf"))
	assert.True(t, os.IsNotExist(err))
}
