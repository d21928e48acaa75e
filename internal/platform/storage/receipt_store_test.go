package storage_test

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/apperrors"
	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/platform/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uploadedFile builds a *multipart.FileHeader the way gin would hand it to a
// handler, by round-tripping a multipart request body.
func uploadedFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("receipt", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	files := req.MultipartForm.File["receipt"]
	require.Len(t, files, 1)
	return files[0]
}

func TestReceiptStore_SaveAndRemove(t *testing.T) {
	store, err := storage.NewReceiptStore(t.TempDir(), 1<<20)
	require.NoError(t, err)

	file := uploadedFile(t, "receipt.pdf", []byte("%PDF-1.4 test"))
	path, err := store.Save(file)
	require.NoError(t, err)

	assert.Equal(t, ".pdf", filepath.Ext(path))
	assert.NotContains(t, filepath.Base(path), "receipt")
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 test"), written)

	require.NoError(t, store.Remove(path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestReceiptStore_RejectsDisallowedExtension(t *testing.T) {
	store, err := storage.NewReceiptStore(t.TempDir(), 1<<20)
	require.NoError(t, err)

	for _, filename := range []string{"receipt.exe", "receipt.svg", "receipt"} {
		file := uploadedFile(t, filename, []byte("data"))
		_, err := store.Save(file)
		assert.ErrorIs(t, err, apperrors.ErrValidation, "filename %q", filename)
	}
}

func TestReceiptStore_RejectsOversizedFile(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewReceiptStore(dir, 10)
	require.NoError(t, err)

	file := uploadedFile(t, "receipt.png", bytes.Repeat([]byte("x"), 11))
	_, err = store.Save(file)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Nothing may be written for a rejected upload.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReceiptStore_RemoveMissingFileIsNoop(t *testing.T) {
	store, err := storage.NewReceiptStore(t.TempDir(), 1<<20)
	require.NoError(t, err)

	assert.NoError(t, store.Remove(""))
	assert.NoError(t, store.Remove(filepath.Join(t.TempDir(), "never-existed.pdf")))
}
