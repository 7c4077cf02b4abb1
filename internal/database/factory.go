package database

import (
	"fmt"
	"os"
	"path/filepath"

	"sbp-go/internal/config"
)

// clientsFile is the database file name inside data_dir.
const clientsFile = "clients.db"

// NewStoreFromConfig creates a client store based on the clients config type.
func NewStoreFromConfig(cfg config.ClientsConfig) (*SQLiteStore, error) {
	switch cfg.Type {
	case "sqlite", "":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite client store")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		return NewSQLiteStore(filepath.Join(cfg.DataDir, clientsFile))
	case "memory":
		return NewSQLiteStore(":memory:")
	default:
		return nil, fmt.Errorf("unknown client store type: %s", cfg.Type)
	}
}
