package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MockStorage writes objects to a local directory. Used in development and
// tests in place of Supabase.
type MockStorage struct {
	baseURL string
	dir     string
}

func NewMockStorage(baseURL, dir string) (*MockStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &MockStorage{baseURL: baseURL, dir: dir}, nil
}

func (s *MockStorage) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return s.PublicURL(key), nil
}

func (s *MockStorage) PublicURL(key string) string {
	return fmt.Sprintf("%s/files/%s", s.baseURL, key)
}

func (s *MockStorage) Delete(ctx context.Context, key string) error {
	return os.Remove(s.path(key))
}

// Open serves a stored object to the local file handler.
func (s *MockStorage) Open(key string) (io.ReadCloser, error) {
	return os.Open(s.path(key))
}

func (s *MockStorage) path(key string) string {
	// Keys are caller-generated but keep path traversal out anyway.
	clean := filepath.Clean("/" + strings.ReplaceAll(key, "\\", "/"))
	return filepath.Join(s.dir, clean)
}
