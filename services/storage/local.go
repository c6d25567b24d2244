package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStore writes attachments below a directory served by the HTTP server.
type LocalStore struct {
	root    string
	baseURL string
	folder  string
}

func NewLocalStore(root, baseURL, folder string) (*LocalStore, error) {
	if root == "" {
		return nil, fmt.Errorf("local storage path must be set")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStore{root: root, baseURL: strings.TrimSuffix(baseURL, "/"), folder: folder}, nil
}

func (s *LocalStore) Put(ctx context.Context, name string, body io.Reader, contentType string) (string, error) {
	key := path.Clean("/" + objectKey(s.folder, name))[1:]
	if key == "" || strings.HasPrefix(key, "..") {
		return "", fmt.Errorf("invalid object name %q", name)
	}

	dst := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}
	return s.baseURL + "/" + key, nil
}
