// Package pgstore keeps the memo history slot in Postgres, for deployments
// where the device history is mirrored to a shared database.
package pgstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/t-cool/naturalist/internal/model"
	"github.com/t-cool/naturalist/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

type PgStore struct {
	db *sql.DB
}

// New connects to Postgres and ensures the slot table.
func New(dsn string) (*PgStore, error) {
	db, err := Open(dsn)
	if err != nil {
		return nil, err
	}
	return NewWithDB(db)
}

// NewWithDB wires an existing connection.
func NewWithDB(db *sql.DB) (*PgStore, error) {
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PgStore{db: db}, nil
}

func (s *PgStore) Close() error { return s.db.Close() }

func ensureSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS slots (
        slot_key TEXT PRIMARY KEY,
        payload TEXT NOT NULL,
        update_time TIMESTAMPTZ NOT NULL
    )`)
	return err
}

func (s *PgStore) Load(ctx context.Context) (model.RecordCollection, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM slots WHERE slot_key = $1`, store.SlotKey).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RecordCollection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history slot: %w", err)
	}
	return store.DecodeRecords([]byte(payload))
}

func (s *PgStore) Save(ctx context.Context, records model.RecordCollection) error {
	payload, err := store.EncodeRecords(records)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO slots (slot_key, payload, update_time) VALUES ($1, $2, $3)
         ON CONFLICT (slot_key) DO UPDATE SET payload = EXCLUDED.payload, update_time = EXCLUDED.update_time`,
		store.SlotKey, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("write history slot: %w", err)
	}
	return nil
}

func (s *PgStore) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
