package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// LocalStore keeps blobs as files in a single directory.
type LocalStore struct {
	fs  afero.Fs
	dir string
}

// NewLocalStore creates a store rooted at dir on fs, creating the directory if needed.
func NewLocalStore(fs afero.Fs, dir string) (*LocalStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory %s: %w", dir, err)
	}
	return &LocalStore{fs: fs, dir: dir}, nil
}

// NewOSStore creates a LocalStore on the real filesystem.
func NewOSStore(dir string) (*LocalStore, error) {
	return NewLocalStore(afero.NewOsFs(), dir)
}

func (s *LocalStore) Put(_ context.Context, data []byte, _ string) (string, error) {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	if err := afero.WriteFile(s.fs, s.path(id), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write blob %s: %w", id, err)
	}
	return id, nil
}

func (s *LocalStore) Get(_ context.Context, id string) ([]byte, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	data, err := afero.ReadFile(s.fs, s.path(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read blob %s: %w", id, err)
	}
	return data, nil
}

func (s *LocalStore) Delete(_ context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	if err := s.fs.Remove(s.path(id)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete blob %s: %w", id, err)
	}
	return nil
}

func (s *LocalStore) path(id string) string {
	return filepath.Join(s.dir, id)
}

// validID rejects ids that could escape the blob directory.
func validID(id string) bool {
	if id == "" || len(id) > 64 {
		return false
	}
	for _, r := range id {
		if !(r >= 'a' && r <= 'f' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}
