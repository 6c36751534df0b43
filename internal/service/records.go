// Package service orchestrates the memo record lifecycle: creation,
// address refresh, deletion and export, coordinating the sensor, the
// connectivity gate, the resolver and the record store.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/t-cool/naturalist/internal/connectivity"
	"github.com/t-cool/naturalist/internal/export"
	"github.com/t-cool/naturalist/internal/geocode"
	"github.com/t-cool/naturalist/internal/model"
	"github.com/t-cool/naturalist/internal/sensor"
	"github.com/t-cool/naturalist/internal/store"
)

// RecordService owns the in-memory collection. All mutations run under one
// mutex so each public operation is atomic with respect to the collection;
// snapshots handed out are clones. The full collection is persisted on
// every mutation.
type RecordService struct {
	mu       sync.Mutex
	records  model.RecordCollection
	store    store.RecordStore
	gate     connectivity.Gate
	resolver geocode.Resolver
	sensor   sensor.Sensor
	now      func() time.Time
	log      zerolog.Logger
}

func NewRecordService(st store.RecordStore, gate connectivity.Gate, resolver geocode.Resolver, sn sensor.Sensor, log zerolog.Logger) *RecordService {
	return &RecordService{
		store:    st,
		gate:     gate,
		resolver: resolver,
		sensor:   sn,
		now:      time.Now,
		log:      log,
	}
}

// Load reads the persisted history into memory. Called once at startup.
func (s *RecordService) Load(ctx context.Context) error {
	records, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.records = records
	s.mu.Unlock()
	s.log.Info().Int("records", len(records)).Msg("history loaded")
	return nil
}

// CreateRecord captures a position, resolves an address when possible and
// prepends the new record to the history. Sensor and network faults are
// absorbed: the memo is always recorded, degraded to sentinel coordinates
// or a placeholder address as needed. Only a failed save is an error.
func (s *RecordService) CreateRecord(ctx context.Context, memo string) (*model.MemoRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := &model.MemoRecord{
		ID:   uuid.NewString(),
		Time: s.now().Format(model.TimeLayout),
		Memo: memo,
	}

	pos, err := s.sensor.Current(ctx)
	switch {
	case err != nil:
		s.log.Warn().Err(err).Msg("location unavailable, recording memo with sentinel coordinates")
		rec.Address = model.AddressNoLocation
	case !s.gate.Online(ctx):
		rec.Lat, rec.Lng = pos.Lat, pos.Lng
		rec.Address = model.AddressOffline
	default:
		rec.Lat, rec.Lng = pos.Lat, pos.Lng
		rec.Address = s.resolver.Resolve(ctx, pos.Lat, pos.Lng)
	}

	next := append(model.RecordCollection{rec}, s.records...)
	if err := s.store.Save(ctx, next); err != nil {
		return nil, err
	}
	s.records = next

	cp := *rec
	return &cp, nil
}

// RefreshAddress re-resolves one record's address from its stored
// coordinates. Unlike create, the offline condition surfaces as
// model.ErrOffline and the address is left untouched: the user asked
// explicitly, so a silent placeholder would hide the reason. A resolution
// failure while online still degrades to the failed placeholder.
func (s *RecordService) RefreshAddress(ctx context.Context, id string) (*model.MemoRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.findLocked(id)
	if rec == nil {
		return nil, model.ErrNotFound
	}
	if !s.gate.Online(ctx) {
		return nil, model.ErrOffline
	}

	prev := rec.Address
	rec.Address = s.resolver.Resolve(ctx, rec.Lat, rec.Lng)
	if err := s.store.Save(ctx, s.records); err != nil {
		rec.Address = prev
		return nil, err
	}

	cp := *rec
	return &cp, nil
}

// DeleteRecord removes a record by id and persists the remainder.
// Removal is idempotent: an unknown id is a no-op and saves nothing.
func (s *RecordService) DeleteRecord(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, r := range s.records {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	next := make(model.RecordCollection, 0, len(s.records)-1)
	next = append(next, s.records[:idx]...)
	next = append(next, s.records[idx+1:]...)
	if err := s.store.Save(ctx, next); err != nil {
		return err
	}
	s.records = next
	return nil
}

// Records returns a read-only snapshot, newest first.
func (s *RecordService) Records() model.RecordCollection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records.Clone()
}

// ExportCSV renders the current history in export form.
func (s *RecordService) ExportCSV() (string, error) {
	return export.CSV(s.Records())
}

func (s *RecordService) findLocked(id string) *model.MemoRecord {
	for _, r := range s.records {
		if r.ID == id {
			return r
		}
	}
	return nil
}
