package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalService writes uploads to a directory on disk; the HTTP layer serves
// that directory under /uploads.
type LocalService struct {
	dir string
}

func NewLocalService(dir string) (*LocalService, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalService{dir: dir}, nil
}

func (s *LocalService) SaveUpload(_ context.Context, originalName, _ string, r io.Reader) (string, error) {
	name := uploadKey(originalName)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close upload file: %w", err)
	}

	return "/uploads/" + name, nil
}
