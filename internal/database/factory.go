package database

import (
	"fmt"

	"pv-go/internal/config"
)

// NewFromConfig creates a Store based on the database config type.
func NewFromConfig(cfg config.DatabaseConfig) (*Store, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite database")
		}
		return OpenInDir(cfg.DataDir)
	case "memory":
		return Open(":memory:")
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}
}
