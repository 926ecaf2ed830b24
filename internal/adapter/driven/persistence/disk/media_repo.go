package disk

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// MediaStore writes uploads into a single directory.
type MediaStore struct {
	dir string
}

// NewMediaStore creates dir if needed.
func NewMediaStore(dir string) (*MediaStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &MediaStore{dir: dir}, nil
}

func (s *MediaStore) Dir() string {
	return s.dir
}

// Save writes to a temporary file first and renames it into place so a
// failed upload never leaves a truncated file under name.
func (s *MediaStore) Save(ctx context.Context, name string, r io.Reader) (int64, error) {
	if name != filepath.Base(name) || name == "." || name == ".." {
		return 0, fmt.Errorf("invalid file name %q", name)
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return n, err
	}
	if err := tmp.Close(); err != nil {
		return n, err
	}
	if err := ctx.Err(); err != nil {
		return n, err
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return n, err
	}
	return n, nil
}
