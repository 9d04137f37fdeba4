package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	catalogapp "github.com/renztrending/backend/internal/application/catalog"
	infraconfig "github.com/renztrending/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// MediaRoute is the HTTP prefix local images are served from
const MediaRoute = "/media"

var _ catalogapp.ImageStorage = (*LocalImageStorage)(nil)

// LocalImageStorage writes images under a directory for development setups
// without a bucket. The HTTP router serves Dir at MediaRoute.
type LocalImageStorage struct {
	Dir     string
	BaseURL string
}

// NewLocalImageStorage creates the directory if needed
func NewLocalImageStorage(dir, baseURL string) (*LocalImageStorage, error) {
	if dir == "" {
		return nil, errors.New("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalImageStorage{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalImageStorage) path(storageKey string) (string, error) {
	if storageKey == "" {
		return "", ErrEmptyKey
	}
	clean := filepath.Clean("/" + storageKey)
	return filepath.Join(s.Dir, filepath.FromSlash(clean)), nil
}

// Upload writes body to disk, replacing an existing file
func (s *LocalImageStorage) Upload(ctx context.Context, storageKey string, body io.Reader, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(storageKey)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("failed to create image directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write image: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to store image: %w", err)
	}
	return nil
}

// DeleteObject removes the file. A missing file is not an error.
func (s *LocalImageStorage) DeleteObject(_ context.Context, storageKey string) error {
	p, err := s.path(storageKey)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// PublicURL points at the /media route
func (s *LocalImageStorage) PublicURL(storageKey string) string {
	return s.BaseURL + MediaRoute + "/" + strings.TrimLeft(storageKey, "/")
}

// NewImageStorage picks S3 when enabled and the local directory otherwise
func NewImageStorage(ctx context.Context, cfg *infraconfig.StorageConfig, logger *zap.Logger) (catalogapp.ImageStorage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil || !cfg.Enabled {
		dir := "./media"
		if cfg != nil && cfg.LocalDir != "" {
			dir = cfg.LocalDir
		}
		logger.Info("Object storage disabled, storing images on disk", zap.String("dir", dir))
		return NewLocalImageStorage(dir, "")
	}

	s3Storage, err := NewS3ImageStorage(cfg, WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if err := s3Storage.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	logger.Info("Object storage ready", zap.String("bucket", s3Storage.Bucket()))
	return s3Storage, nil
}
