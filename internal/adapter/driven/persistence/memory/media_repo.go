package memory

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"
)

// MediaStore keeps uploads in memory. Used for tests and ephemeral runs.
type MediaStore struct {
	mu    sync.Mutex
	files map[string][]byte
}

func NewMediaStore() *MediaStore {
	return &MediaStore{
		files: make(map[string][]byte),
	}
}

func (s *MediaStore) Save(ctx context.Context, name string, r io.Reader) (int64, error) {
	var buf bytes.Buffer
	n, err := io.Copy(&buf, r)
	if err != nil {
		return n, err
	}
	if err := ctx.Err(); err != nil {
		return n, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = buf.Bytes()
	return n, nil
}

func (s *MediaStore) Get(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.files[name]
	return b, ok
}

func (s *MediaStore) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
