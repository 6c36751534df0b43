package pgstore

import (
	"context"
	"os"
	"testing"

	"github.com/t-cool/naturalist/internal/store"
	"github.com/t-cool/naturalist/internal/store/storetest"
)

func makePGStore(t *testing.T) store.RecordStore {
	t.Helper()
	dsn := os.Getenv("NATURALIST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("NATURALIST_POSTGRES_DSN not set; skipping postgres store integration test")
	}
	s, err := New(dsn)
	if err != nil {
		t.Fatalf("postgres open: %v", err)
	}
	t.Cleanup(func() {
		// the suite shares one slot; leave it empty for the next run
		_ = s.Save(context.Background(), nil)
		_ = s.Close()
	})
	return s
}

func TestPgStore_Compliance(t *testing.T) {
	storetest.Run(t, makePGStore)
}
