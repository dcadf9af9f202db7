package storage

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalStorage(t *testing.T) *LocalStorage {
	t.Helper()
	store, err := NewLocalStorage(Config{
		BasePath: t.TempDir(),
		BaseURL:  "https://files.example.com",
	})
	require.NoError(t, err)
	return store
}

func TestLocalSaveGetDelete(t *testing.T) {
	store := newLocalStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "cvs/ana_1.pdf", strings.NewReader("%PDF-1.4"), "application/pdf"))

	exists, err := store.Exists(ctx, "cvs/ana_1.pdf")
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := store.Get(ctx, "cvs/ana_1.pdf")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "%PDF-1.4", string(data))

	require.NoError(t, store.Delete(ctx, "cvs/ana_1.pdf"))
	exists, err = store.Exists(ctx, "cvs/ana_1.pdf")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalDeleteMissingIsNoop(t *testing.T) {
	store := newLocalStorage(t)
	assert.NoError(t, store.Delete(context.Background(), "cvs/missing.pdf"))
}

func TestLocalURLs(t *testing.T) {
	store := newLocalStorage(t)
	ctx := context.Background()

	url, err := store.GetURL(ctx, "cvs/ana_1.pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://files.example.com/cvs/ana_1.pdf", url)

	// Local files cannot be signed; the public URL stands in.
	signed, err := store.GetSignedURL(ctx, "cvs/ana_1.pdf", 7*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, url, signed)
}

func TestNewStorageRejectsUnknownType(t *testing.T) {
	_, err := NewStorage(Config{Type: "ftp"})
	assert.Error(t, err)
}
