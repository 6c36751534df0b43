package store

import (
	"context"

	"github.com/t-cool/naturalist/internal/model"
)

// SlotKey names the single slot that holds the serialized memo history.
// Kept stable so payloads written by earlier builds keep loading.
const SlotKey = "historyData"

// RecordStore persists the memo history as one opaque slot. Save always
// rewrites the full collection; the slot's own last-write-wins atomicity is
// the only transactional guarantee. Implementations live under
// internal/store/<driver>/ (file, sqlite, postgres).
type RecordStore interface {
	// Load reads the slot. An absent slot yields an empty collection and
	// nil error; a payload that is not a JSON array fails with
	// model.ErrCorruptData.
	Load(ctx context.Context) (model.RecordCollection, error)
	// Save serializes the full collection into the slot, overwriting
	// whatever was there.
	Save(ctx context.Context, records model.RecordCollection) error
	// HealthCheck verifies the backing slot is reachable.
	HealthCheck(ctx context.Context) error
}
