// Package filestore keeps the memo history in a single JSON document on
// disk. It is the default driver: one device, one writer, one slot.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/t-cool/naturalist/internal/model"
	"github.com/t-cool/naturalist/internal/store"
)

type FileStore struct {
	path string
}

// New returns a store backed by the JSON document at path. The parent
// directory is created on first save.
func New(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load(ctx context.Context) (model.RecordCollection, error) {
	payload, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.RecordCollection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history document: %w", err)
	}
	return store.DecodeRecords(payload)
}

func (f *FileStore) Save(ctx context.Context, records model.RecordCollection) error {
	payload, err := store.EncodeRecords(records)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	// Write-then-rename keeps the slot last-write-wins even if the
	// process dies mid-save.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o600); err != nil {
		return fmt.Errorf("write history document: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace history document: %w", err)
	}
	return nil
}

func (f *FileStore) HealthCheck(ctx context.Context) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("history directory unavailable: %w", err)
	}
	return nil
}
