package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/pocketvault/pocketvault/pkg/pocketvault/internal"
)

const (
	defaultFileName = "preferences.toml"
	corruptSuffix   = ".corrupt"
)

// FileStore keeps entries as a flat TOML table in a single file:
//
//	theme_mode = "light"
//
// Every Set rewrites the whole file through a temp file and rename, so a
// crash mid-write leaves the previous contents intact. Get reports a file
// that does not parse as ErrCorrupt; the next Set or Delete moves it to
// <path>.corrupt and starts over from an empty table.
type FileStore struct {
	path string
	mu   sync.Mutex
}

var _ Store = (*FileStore)(nil)

// NewFileStore returns a store backed by path. The file and its directory
// are created on the first write. An empty path uses preferences.toml in the
// user config directory.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultPath()
	}
	return &FileStore{path: path}
}

// DefaultPath returns $XDG_CONFIG_HOME/pocketvault/preferences.toml, or the
// platform equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "pocketvault", defaultFileName)
}

// Path returns the file backing the store.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if key == "" {
		return "", false, ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.readLocked()
	if err != nil {
		return "", false, err
	}
	v, ok := rows[key]
	return v, ok, nil
}

func (s *FileStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.readForWriteLocked()
	if err != nil {
		return err
	}
	rows[key] = value
	return s.writeLocked(rows)
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.readForWriteLocked()
	if err != nil {
		return err
	}
	if _, ok := rows[key]; !ok {
		return nil
	}
	delete(rows, key)
	return s.writeLocked(rows)
}

func (s *FileStore) readLocked() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", s.path, err)
	}
	rows := map[string]string{}
	if len(bytes.TrimSpace(data)) == 0 {
		return rows, nil
	}
	if err := toml.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("storage: parse %s: %w: %w", s.path, ErrCorrupt, err)
	}
	return rows, nil
}

// readForWriteLocked reads the table for an update. A corrupt file is moved
// aside so that writes keep working.
func (s *FileStore) readForWriteLocked() (map[string]string, error) {
	rows, err := s.readLocked()
	if !errors.Is(err, ErrCorrupt) {
		return rows, err
	}

	aside := s.path + corruptSuffix
	if rerr := os.Rename(s.path, aside); rerr != nil {
		return nil, fmt.Errorf("storage: move %s aside: %w", s.path, rerr)
	}
	internal.GetInternalLogger().Warn("replaced unreadable preferences file",
		"path", s.path, "moved_to", aside, "error", err)
	return map[string]string{}, nil
}

func (s *FileStore) writeLocked(rows map[string]string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(rows); err != nil {
		return fmt.Errorf("storage: encode %s: %w", s.path, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("storage: create %s: %w", dir, err)
	}
	tmpFile, err := os.CreateTemp(dir, ".preferences-*.tmp")
	if err != nil {
		return fmt.Errorf("storage: write %s: %w", s.path, err)
	}
	tmpPath := tmpFile.Name()
	if _, err := tmpFile.Write(buf.Bytes()); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage: write %s: %w", s.path, err)
	}
	if err := tmpFile.Chmod(0o600); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage: write %s: %w", s.path, err)
	}
	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage: write %s: %w", s.path, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage: write %s: %w", s.path, err)
	}
	return nil
}
