// Package infrastructure assembles the shared subsystems every domain
// module depends on: lifecycle coordination, logging, database, and blob
// storage.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/wardenhq/warden/internal/config"
	"github.com/wardenhq/warden/pkg/database"
	"github.com/wardenhq/warden/pkg/lifecycle"
	"github.com/wardenhq/warden/pkg/storage"
)

// Infrastructure bundles the cross-cutting systems handed to domain
// modules at construction.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
}

// New builds the shared subsystems from the application configuration.
// Nothing connects yet; Start registers the lifecycle hooks that do.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
	}, nil
}

// Start registers database and storage startup/shutdown hooks with the
// lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}
