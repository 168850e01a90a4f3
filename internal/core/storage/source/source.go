// Package source opens the Directory selected by configuration.
package source

import (
	"fmt"
	"log/slog"

	"github.com/aevon-lab/xapi-connect/internal/core/config"
	"github.com/aevon-lab/xapi-connect/internal/core/storage"
	"github.com/aevon-lab/xapi-connect/internal/core/storage/filesystem"
	"github.com/aevon-lab/xapi-connect/internal/core/storage/postgres"
	"github.com/aevon-lab/xapi-connect/internal/migrations"
)

// Directory is an opened directory plus what the process needs to manage it.
type Directory struct {
	storage.Directory

	// Adapter is set for the postgres source; it doubles as the health checker.
	Adapter *postgres.Adapter
}

// Close releases the database, if any.
func (d *Directory) Close() error {
	if d.Adapter == nil {
		return nil
	}
	return d.Adapter.Close()
}

// Open opens the directory named by cfg.Directory.Source. For postgres the
// migrations run before the schema is validated.
func Open(cfg *config.Config) (*Directory, error) {
	switch cfg.Directory.Source {
	case config.DirectoryFilesystem:
		store, err := filesystem.Load(cfg.Directory.Path)
		if err != nil {
			return nil, err
		}
		return &Directory{Directory: store}, nil

	case config.DirectoryPostgres:
		db, err := postgres.Open(cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
		if err != nil {
			return nil, err
		}
		if err := migrations.RunMigrations(db, cfg.Database.AutoMigrate); err != nil {
			db.Close()
			return nil, err
		}
		adapter, err := postgres.NewAdapter(db)
		if err != nil {
			db.Close()
			return nil, err
		}
		slog.Info("[Directory] Using PostgreSQL directory")
		return &Directory{Directory: adapter, Adapter: adapter}, nil

	default:
		return nil, fmt.Errorf("unsupported directory.source %q", cfg.Directory.Source)
	}
}
