package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalImageRepository writes uploaded images to a directory on disk and
// hands back the public path. Nothing about the blob is validated here.
type LocalImageRepository struct {
	dir     string
	baseURL string
}

func NewLocalImageRepository(dir, baseURL string) *LocalImageRepository {
	return &LocalImageRepository{
		dir:     dir,
		baseURL: baseURL,
	}
}

// Save stores the blob under a fresh uuid-based name and returns the opaque
// reference that gets persisted on the catalog entity.
func (r *LocalImageRepository) Save(file io.Reader, originalName string) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	ext := filepath.Ext(originalName)
	name := uuid.NewString() + ext
	path := filepath.Join(r.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	return r.baseURL + "/" + name, nil
}
