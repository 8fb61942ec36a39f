package storage

import (
	"context"
	"io"
	"path/filepath"

	"github.com/google/uuid"
)

// Service persists uploaded media and returns the URL it will be served
// from.
type Service interface {
	SaveUpload(ctx context.Context, originalName, contentType string, r io.Reader) (string, error)
}

// uploadKey generates a collision-free object name preserving the original
// file extension.
func uploadKey(originalName string) string {
	return uuid.NewString() + filepath.Ext(originalName)
}
