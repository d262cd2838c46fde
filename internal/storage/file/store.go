// Package file implements snapshot storage as a single JSON document on
// disk, written atomically via a temp file and rename.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/acarlini/wordled/internal/model"
	"github.com/acarlini/wordled/internal/storage"
)

// Store is a file-backed snapshot store.
type Store struct {
	path string
}

// New creates a Store writing to the given path. The directory is created
// if missing.
func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot directory: %w", err)
	}
	return &Store{path: path}, nil
}

// Ensure Store implements the interface
var _ storage.Store = (*Store)(nil)

func (s *Store) Load(ctx context.Context) (*model.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.ErrNoSnapshot
		}
		return nil, fmt.Errorf("reading snapshot %s: %w", s.path, err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot %s: %w", s.path, err)
	}
	return &snap, nil
}

func (s *Store) Save(ctx context.Context, snap *model.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	// Write-then-rename so a crash mid-write never corrupts the snapshot.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), "snapshot-*.json")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("closing snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replacing snapshot %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}
