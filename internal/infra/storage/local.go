// Package storage holds uploaded payment screenshots on local disk and hands
// back stable relative paths for the payments table.
package storage

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"classroom-app/internal/apperr"
)

var baseDir string

// Init prepares the upload root. Called once from main before routes are
// served.
func Init(dir string) error {
	if err := os.MkdirAll(filepath.Join(dir, "payments"), 0o755); err != nil {
		return err
	}
	baseDir = dir
	return nil
}

// SaveScreenshot stores the upload under a random name and returns the
// relative path recorded on the payment request.
func SaveScreenshot(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", apperr.Wrap(err, "open screenshot upload")
	}
	defer src.Close()

	return save("payments", extOf(fh.Filename), src)
}

func save(subdir, ext string, src io.Reader) (string, error) {
	rel := filepath.Join(subdir, uuid.New().String()+ext)
	abs := filepath.Join(baseDir, rel)

	dst, err := os.Create(abs)
	if err != nil {
		return "", apperr.Wrap(err, "create upload file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(abs)
		return "", apperr.Wrap(err, "write upload file")
	}

	zap.L().Debug("stored upload", zap.String("path", rel))
	return rel, nil
}

// Remove deletes a stored upload, used to roll back after a refused submit.
func Remove(rel string) {
	if rel == "" {
		return
	}
	if err := os.Remove(filepath.Join(baseDir, rel)); err != nil && !os.IsNotExist(err) {
		zap.L().Warn("remove upload failed", zap.String("path", rel), zap.Error(err))
	}
}

// extOf keeps the client extension when it looks sane, defaulting otherwise.
// Content-type enforcement happens before saving, on the sniffed bytes.
func extOf(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return ext
	}
	return ".png"
}
