package draft

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const draftFileExtension = ".json"

// FileStore keeps each draft as a JSON file in a directory.
// Writes go to a temporary file first and are renamed into place.
type FileStore struct {
	directory string
	mu        sync.RWMutex
}

// NewFileStore creates the directory if needed.
func NewFileStore(directory string) (*FileStore, error) {
	if directory == "" {
		return nil, errors.New("draft directory cannot be empty")
	}
	if err := os.MkdirAll(directory, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create draft directory: %w", err)
	}
	return &FileStore{directory: directory}, nil
}

// Directory returns the directory drafts are written to.
func (s *FileStore) Directory() string { return s.directory }

// Save writes env under key, replacing any previous draft.
func (s *FileStore) Save(_ context.Context, key string, env *Envelope) error {
	if err := checkKey(key); err != nil {
		return err
	}
	data, err := Encode(env)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	filePath := s.keyToFilePath(key)
	tempPath := filePath + ".tmp"
	if writeErr := os.WriteFile(tempPath, data, 0o600); writeErr != nil {
		return fmt.Errorf("failed to write draft file: %w", writeErr)
	}
	if renameErr := os.Rename(tempPath, filePath); renameErr != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename draft file: %w", renameErr)
	}
	return nil
}

// Load reads the draft saved under key.
func (s *FileStore) Load(_ context.Context, key string) (*Envelope, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.keyToFilePath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read draft file: %w", err)
	}
	return Decode(data)
}

// Delete removes the draft. Deleting a missing draft is not an error.
func (s *FileStore) Delete(_ context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.keyToFilePath(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete draft file: %w", err)
	}
	return nil
}

// Close is a no-op.
func (s *FileStore) Close() error { return nil }

// keyToFilePath sanitizes key into a file name inside the store directory.
func (s *FileStore) keyToFilePath(key string) string {
	safeKey := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_").Replace(key)
	return filepath.Join(s.directory, safeKey+draftFileExtension)
}
