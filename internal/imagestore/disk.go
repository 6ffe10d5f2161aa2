package imagestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DiskStore writes images to a local directory served statically.
type DiskStore struct {
	Dir     string
	BaseURL string // URL prefix the directory is served under, e.g. /uploads
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{Dir: dir, BaseURL: baseURL}, nil
}

func (s *DiskStore) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, string, error) {
	name := objectName(filename)
	path := filepath.Join(s.Dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("create image file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", "", fmt.Errorf("write image file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", "", fmt.Errorf("close image file: %w", err)
	}
	return s.BaseURL + "/" + name, name, nil
}

func (s *DiskStore) Remove(ctx context.Context, ref string) error {
	return os.Remove(filepath.Join(s.Dir, filepath.Base(ref)))
}

var _ Store = (*DiskStore)(nil)
