package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/apperrors"
	"github.com/google/uuid"
)

// allowedExtensions is the receipt file allow-list.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

// ReceiptStore persists uploaded receipt files on disk under a fixed
// directory. Stored names are uuid + original extension, so the original
// filename never reaches the filesystem.
type ReceiptStore struct {
	dir     string
	maxSize int64
}

// NewReceiptStore creates the store, ensuring the upload directory exists.
func NewReceiptStore(dir string, maxSize int64) (*ReceiptStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &ReceiptStore{dir: dir, maxSize: maxSize}, nil
}

// Save validates and writes an uploaded receipt, returning the stored path.
// Validation failures surface as apperrors.ErrValidation before anything is
// written; a failed copy removes the partial file.
func (s *ReceiptStore) Save(file *multipart.FileHeader) (string, error) {
	if file.Size > s.maxSize {
		return "", fmt.Errorf("receipt exceeds maximum size of %d bytes: %w", s.maxSize, apperrors.ErrValidation)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("receipt file type %q not allowed: %w", ext, apperrors.ErrValidation)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded receipt: %w", err)
	}
	defer src.Close()

	path := filepath.Join(s.dir, uuid.NewString()+ext)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create receipt file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write receipt file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to close receipt file: %w", err)
	}

	return path, nil
}

// Remove deletes a stored receipt. A missing file is not an error: the row
// delete already happened and there is nothing left to clean up.
func (s *ReceiptStore) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove receipt file %s: %w", path, err)
	}
	return nil
}
