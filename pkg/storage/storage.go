// Package storage keeps uploaded media outside the database.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"aurora/internal/config"
)

type ObjectStore interface {
	// Put stores body under key and returns the URL clients fetch it from.
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// New picks the backend named by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig) (ObjectStore, error) {
	switch cfg.Driver {
	case "local":
		return NewLocalStore(cfg.MediaRoot, cfg.MediaURL)
	case "s3":
		return NewS3Store(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

// ObjectKey builds a date partitioned key such as images/2025/04/08/<uuid>.jpg.
func ObjectKey(prefix string, ext string, now time.Time) string {
	return path.Join(prefix,
		fmt.Sprintf("%04d", now.Year()),
		fmt.Sprintf("%02d", int(now.Month())),
		fmt.Sprintf("%02d", now.Day()),
		uuid.NewString()+ext)
}

// DetectImage sniffs the content type of data and rejects anything that is
// not an image. It returns the MIME type and its canonical file extension.
func DetectImage(data []byte) (string, string, error) {
	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", "", fmt.Errorf("unsupported content type %s", mime.String())
	}
	return mime.String(), mime.Extension(), nil
}
