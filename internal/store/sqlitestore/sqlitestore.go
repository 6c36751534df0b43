// Package sqlitestore keeps the memo history slot in a SQLite database.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/t-cool/naturalist/internal/model"
	"github.com/t-cool/naturalist/internal/store"
)

type SqliteStore struct {
	db *sql.DB
}

// New opens (or creates) the database at path and ensures the slot table.
func New(path string) (*SqliteStore, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewWithDB(db)
}

// NewWithDB wires an existing connection (used by tests and the factory).
func NewWithDB(db *sql.DB) (*SqliteStore, error) {
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SqliteStore{db: db}, nil
}

// DB exposes the underlying *sql.DB connection (local-only use case).
func (s *SqliteStore) DB() *sql.DB { return s.db }

func (s *SqliteStore) Close() error { return s.db.Close() }

func ensureSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS Slots (
        SlotKey TEXT PRIMARY KEY,
        Payload TEXT NOT NULL,
        UpdateTime TIMESTAMP NOT NULL
    );`)
	return err
}

func (s *SqliteStore) Load(ctx context.Context) (model.RecordCollection, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT Payload FROM Slots WHERE SlotKey = ?`, store.SlotKey).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RecordCollection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history slot: %w", err)
	}
	return store.DecodeRecords([]byte(payload))
}

func (s *SqliteStore) Save(ctx context.Context, records model.RecordCollection) error {
	payload, err := store.EncodeRecords(records)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO Slots (SlotKey, Payload, UpdateTime) VALUES (?,?,?)
         ON CONFLICT(SlotKey) DO UPDATE SET Payload = excluded.Payload, UpdateTime = excluded.UpdateTime`,
		store.SlotKey, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("write history slot: %w", err)
	}
	return nil
}

func (s *SqliteStore) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
