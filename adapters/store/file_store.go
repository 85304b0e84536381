package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/layer-3/inkgate/core"
	"github.com/layer-3/inkgate/ports"
)

// FileStore keeps the token in a single file readable only by the owner
type FileStore struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// DefaultFilePath returns ~/.inkgate/<key>.
func DefaultFilePath(key string) string {
	if key == "" {
		key = DefaultKey
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".inkgate", key)
}

// NewFileStore creates a file-backed store at path
func NewFileStore(path string, logger *slog.Logger) ports.TokenStore {
	if path == "" {
		path = DefaultFilePath(DefaultKey)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{path: path, logger: logger}
}

// Get reads the token file; a missing or unreadable file counts as absent
func (s *FileStore) Get(ctx context.Context) (core.Token, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Debug("token store read failed", "backend", "file", "path", s.path, "error", err)
		}
		return "", false
	}

	token := core.Token(data)
	return token, token.Present()
}

// Set writes the token through a temp file and rename so readers never see a partial value
func (s *FileStore) Set(ctx context.Context, token core.Token) error {
	if !token.Present() {
		return core.ErrEmptyToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("%w: create dir: %v", core.ErrStoreUnavailable, err)
	}

	tmp, err := os.CreateTemp(dir, ".token-*")
	if err != nil {
		return fmt.Errorf("%w: create temp: %v", core.ErrStoreUnavailable, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(string(token)); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write: %v", core.ErrStoreUnavailable, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: chmod: %v", core.ErrStoreUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close: %v", core.ErrStoreUnavailable, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("%w: rename: %v", core.ErrStoreUnavailable, err)
	}

	return nil
}

// Clear removes the token file
func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: remove: %v", core.ErrStoreUnavailable, err)
	}

	return nil
}
