package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/t-cool/naturalist/internal/model"
	"github.com/t-cool/naturalist/internal/store"
	"github.com/t-cool/naturalist/internal/store/storetest"
)

func TestFileStore_Compliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.RecordStore {
		return New(filepath.Join(t.TempDir(), "history.json"))
	})
}

func TestFileStore_CorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"oops": true}`), 0o600))

	_, err := New(path).Load(context.Background())
	assert.ErrorIs(t, err, model.ErrCorruptData)
}

func TestFileStore_SaveCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.json")
	s := New(path)

	err := s.Save(context.Background(), model.RecordCollection{
		{Time: "2026/08/30 12:00:00", Address: "東京", Memo: "m"},
	})
	require.NoError(t, err)

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
