// Package app wires configuration, logging, storage, and the register
// services together.
package app

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"github.com/millbrookqa/docregister/internal/adapter/postgres"
	archiverepo "github.com/millbrookqa/docregister/internal/adapter/postgres/archive"
	auditrepo "github.com/millbrookqa/docregister/internal/adapter/postgres/audit"
	deletedrepo "github.com/millbrookqa/docregister/internal/adapter/postgres/deleted"
	documentrepo "github.com/millbrookqa/docregister/internal/adapter/postgres/document"
	historyrepo "github.com/millbrookqa/docregister/internal/adapter/postgres/history"
	structuredrepo "github.com/millbrookqa/docregister/internal/adapter/postgres/structured"
	"github.com/millbrookqa/docregister/internal/config"
	"github.com/millbrookqa/docregister/internal/service/approval"
	"github.com/millbrookqa/docregister/internal/service/lifecycle"
	"github.com/millbrookqa/docregister/internal/service/syncer"
)

// App holds the assembled services and their shared resources.
type App struct {
	Config *config.Config
	Log    *slog.Logger
	Pool   *pgxpool.Pool

	Approval  *approval.Service
	Syncer    *syncer.Service
	Lifecycle *lifecycle.Service
}

// New loads configuration, connects to PostgreSQL, and assembles the
// services. Close must be called when the app is no longer needed.
func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting document register",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	tx := postgres.NewTxManager(pool)
	clock := clockwork.NewRealClock()

	documents := documentrepo.New(pool)
	structured := structuredrepo.New(pool)
	histories := historyrepo.New(pool)
	audits := auditrepo.New(pool)
	deleted := deletedrepo.New(pool)
	archives := archiverepo.New(pool)

	return &App{
		Config:    cfg,
		Log:       logger,
		Pool:      pool,
		Approval:  approval.NewService(logger, documents, histories, audits, tx, clock),
		Syncer:    syncer.NewService(logger, structured, documents, histories, audits, tx, clock, cfg.Register.MaxStepsPerDocument),
		Lifecycle: lifecycle.NewService(logger, documents, deleted, archives, histories, audits, tx, clock, cfg.Register.ListDefaultLimit),
	}, nil
}

// Close releases the database pool.
func (a *App) Close() {
	a.Pool.Close()
}
