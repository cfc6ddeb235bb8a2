package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FSClient archives artifacts under a directory on the local
// filesystem. Useful for development and for clusters where the log
// volume is a mounted share rather than object storage.
type FSClient struct {
	root string
}

// NewFSClient creates a filesystem-backed Client rooted at dir.
func NewFSClient(dir string) (*FSClient, error) {
	if dir == "" {
		return nil, fmt.Errorf("archive directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive root: %w", err)
	}
	return &FSClient{root: dir}, nil
}

func (c *FSClient) Put(_ context.Context, key string, r io.Reader) error {
	path := filepath.Join(c.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
