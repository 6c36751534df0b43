// Package storetest holds a compliance suite shared by RecordStore drivers.
package storetest

import (
	"context"
	"testing"

	"github.com/t-cool/naturalist/internal/model"
	"github.com/t-cool/naturalist/internal/store"
)

// Run exercises a minimal compliance suite against a RecordStore
// implementation. Implementations should provide a clean, isolated store
// and return it from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.RecordStore) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	if err := s.HealthCheck(ctx); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}

	// Absent slot loads as an empty collection.
	if got, err := s.Load(ctx); err != nil || len(got) != 0 {
		t.Fatalf("Load empty: n=%d err=%v", len(got), err)
	}

	// Full save, then load round-trips the persisted fields.
	recs := model.RecordCollection{
		{ID: "n1", Time: "2026/08/30 12:00:00", Lat: 35.681236, Lng: 139.767125, Address: "丸の内千代田区東京都", Memo: "first, with comma"},
		{ID: "n2", Time: "2026/08/29 08:00:00", Lat: 0, Lng: 0, Address: model.AddressOffline, Memo: "second"},
	}
	if err := s.Save(ctx, recs); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load after save: %v", err)
	}
	requireSameRecords(t, recs, got)

	// Save overwrites the whole slot, not appends.
	shorter := model.RecordCollection{recs[0]}
	if err := s.Save(ctx, shorter); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}
	got, err = s.Load(ctx)
	if err != nil {
		t.Fatalf("Load after overwrite: %v", err)
	}
	requireSameRecords(t, shorter, got)

	// Saving an empty collection empties the slot.
	if err := s.Save(ctx, model.RecordCollection{}); err != nil {
		t.Fatalf("Save empty: %v", err)
	}
	if got, err := s.Load(ctx); err != nil || len(got) != 0 {
		t.Fatalf("Load after empty save: n=%d err=%v", len(got), err)
	}
}

// requireSameRecords compares the persisted fields, ignoring in-memory IDs
// which are regenerated on load.
func requireSameRecords(t *testing.T, want, got model.RecordCollection) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("record count: want %d got %d", len(want), len(got))
	}
	for i := range want {
		w, g := want[i], got[i]
		if w.Time != g.Time || w.Lat != g.Lat || w.Lng != g.Lng || w.Address != g.Address || w.Memo != g.Memo {
			t.Fatalf("record %d mismatch: want %+v got %+v", i, w, g)
		}
		if g.ID == "" {
			t.Fatalf("record %d has empty id after load", i)
		}
	}
}
