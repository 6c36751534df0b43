package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/t-cool/naturalist/internal/connectivity"
	"github.com/t-cool/naturalist/internal/model"
	"github.com/t-cool/naturalist/internal/sensor"
)

// --- Fakes ---

type fakeStore struct {
	saved     model.RecordCollection
	saveCalls int
	loadErr   error
	saveErr   error
}

func (f *fakeStore) Load(ctx context.Context) (model.RecordCollection, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.saved.Clone(), nil
}

func (f *fakeStore) Save(ctx context.Context, records model.RecordCollection) error {
	f.saveCalls++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = records.Clone()
	return nil
}

func (f *fakeStore) HealthCheck(ctx context.Context) error { return nil }

type fakeResolver struct {
	address string
	calls   int
}

func (f *fakeResolver) Resolve(ctx context.Context, lat, lng float64) string {
	f.calls++
	return f.address
}

type failingSensor struct{}

func (failingSensor) Current(context.Context) (sensor.Position, error) {
	return sensor.Position{}, model.ErrSensorUnavailable
}

func newTestService(st *fakeStore, gate connectivity.Gate, res *fakeResolver, sn sensor.Sensor) *RecordService {
	svc := NewRecordService(st, gate, res, sn, zerolog.Nop())
	stamp := time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local)
	svc.now = func() time.Time {
		stamp = stamp.Add(time.Second)
		return stamp
	}
	return svc
}

// --- Create ---

func TestCreateRecord_OnlineResolves(t *testing.T) {
	st := &fakeStore{}
	res := &fakeResolver{address: "東京都千代田区丸の内"}
	svc := newTestService(st, connectivity.Static(true), res, sensor.Fixed{Lat: 35.68, Lng: 139.76})

	rec, err := svc.CreateRecord(context.Background(), "散歩メモ")
	require.NoError(t, err)

	assert.Equal(t, "東京都千代田区丸の内", rec.Address)
	assert.Equal(t, 35.68, rec.Lat)
	assert.Equal(t, 139.76, rec.Lng)
	assert.Equal(t, "散歩メモ", rec.Memo)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, 1, res.calls)
	require.Len(t, st.saved, 1, "record persisted")
}

func TestCreateRecord_OfflineUsesPlaceholderWithoutResolving(t *testing.T) {
	st := &fakeStore{}
	res := &fakeResolver{address: "should not be used"}
	svc := newTestService(st, connectivity.Static(false), res, sensor.Fixed{Lat: 35.68, Lng: 139.76})

	rec, err := svc.CreateRecord(context.Background(), "圏外メモ")
	require.NoError(t, err)

	assert.Equal(t, model.AddressOffline, rec.Address)
	assert.Equal(t, 35.68, rec.Lat, "coordinates still captured while offline")
	assert.Zero(t, res.calls, "resolver must not be invoked while offline")
	require.Len(t, st.saved, 1)
}

func TestCreateRecord_NeverFailsOnSensorAndNetworkFault(t *testing.T) {
	st := &fakeStore{}
	res := &fakeResolver{address: "unused"}
	svc := newTestService(st, connectivity.Static(false), res, failingSensor{})

	rec, err := svc.CreateRecord(context.Background(), "メモ本文")
	require.NoError(t, err)

	assert.Equal(t, 0.0, rec.Lat)
	assert.Equal(t, 0.0, rec.Lng)
	assert.Equal(t, model.AddressNoLocation, rec.Address)
	assert.Equal(t, "メモ本文", rec.Memo)
	assert.Zero(t, res.calls, "no lookup without a position")
	require.Len(t, st.saved, 1, "memo text is saved despite degraded data")
}

func TestCreateRecord_PrependsNewestFirst(t *testing.T) {
	st := &fakeStore{}
	svc := newTestService(st, connectivity.Static(true), &fakeResolver{address: "addr"}, sensor.Fixed{Lat: 1, Lng: 2})

	for _, memo := range []string{"one", "two", "three"} {
		_, err := svc.CreateRecord(context.Background(), memo)
		require.NoError(t, err)
	}

	got := svc.Records()
	require.Len(t, got, 3)
	assert.Equal(t, "three", got[0].Memo)
	assert.Equal(t, "two", got[1].Memo)
	assert.Equal(t, "one", got[2].Memo)
}

func TestCreateRecord_SaveFailureKeepsCollectionUnchanged(t *testing.T) {
	st := &fakeStore{saveErr: errors.New("disk full")}
	svc := newTestService(st, connectivity.Static(true), &fakeResolver{address: "addr"}, sensor.Fixed{Lat: 1, Lng: 2})

	_, err := svc.CreateRecord(context.Background(), "memo")
	require.Error(t, err)
	assert.Empty(t, svc.Records())
}

// --- Refresh ---

func TestRefreshAddress_Online(t *testing.T) {
	st := &fakeStore{}
	res := &fakeResolver{address: model.AddressFailed}
	svc := newTestService(st, connectivity.Static(true), res, sensor.Fixed{Lat: 35.68, Lng: 139.76})

	rec, err := svc.CreateRecord(context.Background(), "memo")
	require.NoError(t, err)
	require.Equal(t, model.AddressFailed, rec.Address)

	// provider recovers, the user retries
	res.address = "東京都千代田区"
	got, err := svc.RefreshAddress(context.Background(), rec.ID)
	require.NoError(t, err)

	assert.Equal(t, "東京都千代田区", got.Address)
	assert.Equal(t, "東京都千代田区", st.saved[0].Address, "refreshed address persisted")
}

func TestRefreshAddress_OfflineSurfacesAndLeavesAddressUntouched(t *testing.T) {
	st := &fakeStore{}
	res := &fakeResolver{address: "resolved"}
	svc := newTestService(st, connectivity.Static(true), res, sensor.Fixed{Lat: 1, Lng: 2})

	rec, err := svc.CreateRecord(context.Background(), "memo")
	require.NoError(t, err)
	resolveCallsBefore := res.calls

	svc.gate = connectivity.Static(false)
	_, err = svc.RefreshAddress(context.Background(), rec.ID)
	assert.ErrorIs(t, err, model.ErrOffline)

	got := svc.Records()
	assert.Equal(t, "resolved", got[0].Address, "address unmodified by offline refresh")
	assert.Equal(t, resolveCallsBefore, res.calls)
}

func TestRefreshAddress_UnknownID(t *testing.T) {
	svc := newTestService(&fakeStore{}, connectivity.Static(true), &fakeResolver{}, sensor.Fixed{})

	_, err := svc.RefreshAddress(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestRefreshAddress_SaveFailureRestoresAddress(t *testing.T) {
	st := &fakeStore{}
	res := &fakeResolver{address: "before"}
	svc := newTestService(st, connectivity.Static(true), res, sensor.Fixed{Lat: 1, Lng: 2})

	rec, err := svc.CreateRecord(context.Background(), "memo")
	require.NoError(t, err)

	st.saveErr = errors.New("disk full")
	res.address = "after"
	_, err = svc.RefreshAddress(context.Background(), rec.ID)
	require.Error(t, err)
	assert.Equal(t, "before", svc.Records()[0].Address)
}

// --- Delete ---

func TestDeleteRecord_Idempotent(t *testing.T) {
	st := &fakeStore{}
	svc := newTestService(st, connectivity.Static(true), &fakeResolver{address: "a"}, sensor.Fixed{Lat: 1, Lng: 2})

	keep, err := svc.CreateRecord(context.Background(), "keep")
	require.NoError(t, err)
	drop, err := svc.CreateRecord(context.Background(), "drop")
	require.NoError(t, err)

	savesBefore := st.saveCalls
	require.NoError(t, svc.DeleteRecord(context.Background(), drop.ID))
	assert.Equal(t, savesBefore+1, st.saveCalls)

	// second delete and a non-member are no-ops that save nothing
	require.NoError(t, svc.DeleteRecord(context.Background(), drop.ID))
	require.NoError(t, svc.DeleteRecord(context.Background(), "never-existed"))
	assert.Equal(t, savesBefore+1, st.saveCalls)

	got := svc.Records()
	require.Len(t, got, 1)
	assert.Equal(t, keep.ID, got[0].ID)
}

// --- Snapshots / load ---

func TestRecords_SnapshotIsACopy(t *testing.T) {
	svc := newTestService(&fakeStore{}, connectivity.Static(true), &fakeResolver{address: "a"}, sensor.Fixed{Lat: 1, Lng: 2})

	_, err := svc.CreateRecord(context.Background(), "memo")
	require.NoError(t, err)

	snap := svc.Records()
	snap[0].Address = "tampered"
	assert.Equal(t, "a", svc.Records()[0].Address, "mutating a snapshot must not leak into the lifecycle")
}

func TestLoad_PopulatesCollection(t *testing.T) {
	st := &fakeStore{saved: model.RecordCollection{
		{ID: "x", Time: "2026/08/29 10:00:00", Address: "addr", Memo: "persisted"},
	}}
	svc := newTestService(st, connectivity.Static(true), &fakeResolver{}, sensor.Fixed{})

	require.NoError(t, svc.Load(context.Background()))
	got := svc.Records()
	require.Len(t, got, 1)
	assert.Equal(t, "persisted", got[0].Memo)
}

func TestLoad_PropagatesCorruptData(t *testing.T) {
	st := &fakeStore{loadErr: model.ErrCorruptData}
	svc := newTestService(st, connectivity.Static(true), &fakeResolver{}, sensor.Fixed{})

	assert.ErrorIs(t, svc.Load(context.Background()), model.ErrCorruptData)
}

// --- Export ---

func TestExportCSV_EmptyAndNonEmpty(t *testing.T) {
	svc := newTestService(&fakeStore{}, connectivity.Static(true), &fakeResolver{address: "a"}, sensor.Fixed{Lat: 1, Lng: 2})

	_, err := svc.ExportCSV()
	assert.ErrorIs(t, err, model.ErrEmptyExport)

	_, err = svc.CreateRecord(context.Background(), "memo")
	require.NoError(t, err)

	out, err := svc.ExportCSV()
	require.NoError(t, err)
	assert.Contains(t, out, "time,lat,lng,address,memo")
}
