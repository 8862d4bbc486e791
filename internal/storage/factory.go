package storage

import (
	"context"
	"fmt"

	"github.com/yourname/timebalance/internal"
	"github.com/yourname/timebalance/internal/config"
)

// New opens the document store selected by cfg.StorageBackend.
func New(ctx context.Context, cfg *config.Config, logger internal.Logger) (DocumentStore, error) {
	switch cfg.StorageBackend {
	case "file":
		return NewFileStorage(cfg.DataFile, logger)
	case "sqlite":
		return NewSQLiteStorage(cfg.SQLitePath, logger)
	case "postgres":
		return NewPostgresStorage(ctx, cfg.PostgresDSN, logger)
	case "memory":
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.StorageBackend)
	}
}
