// Package factory builds the configured store driver.
package factory

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/t-cool/naturalist/internal/config"
	"github.com/t-cool/naturalist/internal/localstate"
	"github.com/t-cool/naturalist/internal/store"
	"github.com/t-cool/naturalist/internal/store/filestore"
	"github.com/t-cool/naturalist/internal/store/pgstore"
	"github.com/t-cool/naturalist/internal/store/sqlitestore"
)

// NewRecordStore constructs the RecordStore selected by cfg.StoreDriver.
func NewRecordStore(cfg *config.Config, log zerolog.Logger) (store.RecordStore, error) {
	switch cfg.StoreDriver {
	case "file":
		path, err := historyPath(cfg)
		if err != nil {
			return nil, err
		}
		log.Info().Str("driver", "file").Str("path", path).Msg("record store ready")
		return filestore.New(path), nil

	case "sqlite":
		path, err := dbPath(cfg)
		if err != nil {
			return nil, err
		}
		s, err := sqlitestore.New(path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		log.Info().Str("driver", "sqlite").Str("path", path).Msg("record store ready")
		return s, nil

	case "postgres":
		s, err := pgstore.New(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		log.Info().Str("driver", "postgres").Msg("record store ready")
		return s, nil

	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.StoreDriver)
	}
}

func historyPath(cfg *config.Config) (string, error) {
	if cfg.DataDir != "" {
		return filepath.Join(cfg.DataDir, "history.json"), nil
	}
	return localstate.HistoryPath()
}

func dbPath(cfg *config.Config) (string, error) {
	if cfg.DataDir != "" {
		return filepath.Join(cfg.DataDir, "naturalist.db"), nil
	}
	return localstate.DBPath()
}
