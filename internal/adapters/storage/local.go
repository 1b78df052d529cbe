// Package storage keeps uploaded objects on the local filesystem and serves
// them under a public base URL.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/platform/config"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
)

// LocalStorage implements ports.ObjectStorage on a directory tree laid out
// as <root>/<bucket>/<path>.
type LocalStorage struct {
	root    string
	baseURL string
	logger  *slog.Logger
}

// NewLocalStorage creates the root directory if needed.
func NewLocalStorage(cfg config.StorageConfig, logger *slog.Logger) (*LocalStorage, error) {
	if logger == nil {
		logger = slog.Default()
	}

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving storage root: %w", err)
	}

	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("creating storage root: %w", err)
	}

	return &LocalStorage{
		root:    root,
		baseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		logger:  logger,
	}, nil
}

// Upload writes data atomically, replacing any existing object.
func (s *LocalStorage) Upload(ctx context.Context, bucket, objectPath string, data []byte, contentType string) error {
	target, err := s.resolve(bucket, objectPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return domain.NewUnavailableError("storage", err.Error())
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return domain.NewUnavailableError("storage", err.Error())
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // already renamed on success

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return domain.NewUnavailableError("storage", err.Error())
	}

	if err := tmp.Close(); err != nil {
		return domain.NewUnavailableError("storage", err.Error())
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		return domain.NewUnavailableError("storage", err.Error())
	}

	logging.FromContext(ctx).DebugContext(ctx, "object stored",
		slog.String("bucket", bucket),
		slog.String("path", objectPath),
		slog.String("content_type", contentType),
		slog.Int("bytes", len(data)),
	)

	return nil
}

// PublicURL returns the URL the object is served from.
func (s *LocalStorage) PublicURL(bucket, objectPath string) string {
	u, err := url.JoinPath(s.baseURL, bucket, objectPath)
	if err != nil {
		return s.baseURL + "/" + bucket + "/" + objectPath
	}

	return u
}

// Path returns the file backing bucket/objectPath, or domain.ErrNotFound.
func (s *LocalStorage) Path(bucket, objectPath string) (string, error) {
	target, err := s.resolve(bucket, objectPath)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(target)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		return "", domain.NewNotFoundError("Object", bucket+"/"+objectPath)
	}

	if err != nil {
		return "", domain.NewUnavailableError("storage", err.Error())
	}

	return target, nil
}

// Exists reports whether the object is present.
func (s *LocalStorage) Exists(bucket, objectPath string) bool {
	_, err := s.Path(bucket, objectPath)
	return err == nil
}

// resolve maps bucket/objectPath into the root, rejecting traversal.
func (s *LocalStorage) resolve(bucket, objectPath string) (string, error) {
	if bucket == "" || strings.ContainsAny(bucket, `/\`) || bucket == "." || bucket == ".." {
		return "", domain.NewValidationErrorWithValue("bucket", "invalid bucket name", bucket)
	}

	clean := path.Clean("/" + strings.ReplaceAll(objectPath, `\`, "/"))
	if clean == "/" || strings.Contains(objectPath, "..") {
		return "", domain.NewValidationErrorWithValue("path", "invalid object path", objectPath)
	}

	return filepath.Join(s.root, bucket, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

// Name implements ports.HealthChecker.
func (s *LocalStorage) Name() string {
	return "storage"
}

// Check verifies the root is a writable directory.
func (s *LocalStorage) Check(_ context.Context) error {
	f, err := os.CreateTemp(s.root, ".health-*")
	if err != nil {
		return fmt.Errorf("storage root not writable: %w", err)
	}

	name := f.Name()
	_ = f.Close()

	return os.Remove(name)
}
