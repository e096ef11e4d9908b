package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"jobboard-backend/internal/domain"
)

// LocalStore serves resume binaries from a directory on disk
type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: filepath.Clean(root)}
}

// Root returns the configured storage directory
func (s *LocalStore) Root() string {
	return s.root
}

// Open returns the file named key directly under the root directory.
// Keys that would resolve outside the root are treated as missing.
func (s *LocalStore) Open(_ context.Context, key string) (io.ReadCloser, int64, error) {
	path, ok := s.resolve(key)
	if !ok {
		return nil, 0, domain.ErrFileNotFound
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, domain.ErrFileNotFound
		}
		return nil, 0, fmt.Errorf("open %s: %w", key, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("stat %s: %w", key, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, 0, domain.ErrFileNotFound
	}
	return f, info.Size(), nil
}

func (s *LocalStore) resolve(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	path := filepath.Join(s.root, key)
	rel, err := filepath.Rel(s.root, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return path, true
}
