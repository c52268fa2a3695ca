// Package app wires configuration, storage and the conflict engine
// into one dependency container for the CLI.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite"

	"github.com/slatehq/slate/internal/scheduling/application/queries"
	"github.com/slatehq/slate/internal/scheduling/application/services"
	"github.com/slatehq/slate/internal/scheduling/domain"
	"github.com/slatehq/slate/internal/scheduling/infrastructure/importing"
	"github.com/slatehq/slate/internal/scheduling/infrastructure/persistence"
	"github.com/slatehq/slate/pkg/config"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	Events   domain.EventRepository
	Detector *services.ConflictDetector
	Resolver *services.ConflictResolver
	Importer *importing.Importer
	Overview *queries.ScheduleOverviewHandler

	sqliteDB *sql.DB
	pgPool   *pgxpool.Pool
}

// NewContainer builds the container. PostgreSQL is used when
// DATABASE_URL is configured, otherwise the local SQLite store.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{Config: cfg, Logger: logger}

	if cfg.UsesPostgres() {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		repo := persistence.NewPostgresEventRepository(pool)
		if err := repo.Migrate(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		c.pgPool = pool
		c.Events = repo
		logger.Debug("using postgres event store")
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
		dbConn, err := sql.Open("sqlite", cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		repo := persistence.NewSQLiteEventRepository(dbConn)
		if err := repo.Migrate(ctx); err != nil {
			dbConn.Close()
			return nil, err
		}
		c.sqliteDB = dbConn
		c.Events = repo
		logger.Debug("using sqlite event store", "path", cfg.SQLitePath)
	}

	c.Detector = services.NewConflictDetector(nil, logger)

	resolverCfg := services.DefaultResolverConfig()
	resolverCfg.SearchWindowDays = cfg.SearchWindowDays
	resolverCfg.MaxSlots = cfg.MaxSlots
	c.Resolver = services.NewConflictResolver(c.Detector, resolverCfg, logger)

	c.Importer = importing.NewImporter(c.Events, logger)
	c.Overview = queries.NewScheduleOverviewHandler(c.Events, c.Detector)

	return c, nil
}

// Close releases storage connections.
func (c *Container) Close() error {
	if c.pgPool != nil {
		c.pgPool.Close()
	}
	if c.sqliteDB != nil {
		return c.sqliteDB.Close()
	}
	return nil
}
