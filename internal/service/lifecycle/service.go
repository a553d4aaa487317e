// Package lifecycle implements the deletion-archival pipeline:
// deletion request → soft delete → restore or permanent purge, and the
// copy-on-supersede archival path. Soft delete and restore each run as one
// transaction so a half-applied delete can never become visible.
package lifecycle

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/millbrookqa/docregister/internal/domain"
)

type documentRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DocumentRecord, error)
	Create(ctx context.Context, doc *domain.DocumentRecord) error
	Update(ctx context.Context, doc *domain.DocumentRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type deletedRepo interface {
	Create(ctx context.Context, rec *domain.DeletedRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DeletedRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter domain.DeletedFilter) ([]domain.DeletedRecord, error)
}

type archiveRepo interface {
	Create(ctx context.Context, rec *domain.ArchiveRecord) error
	List(ctx context.Context, filter domain.ArchiveFilter) ([]domain.ArchiveRecord, error)
}

type historyRepo interface {
	Append(ctx context.Context, entries []domain.HistoryEntry) error
}

type auditRepo interface {
	Append(ctx context.Context, event *domain.AuditEvent) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides the deletion-archival operations.
type Service struct {
	documents documentRepo
	deleted   deletedRepo
	archive   archiveRepo
	history   historyRepo
	audit     auditRepo
	tx        txManager
	clock     clockwork.Clock
	log       *slog.Logger

	// defaultLimit applies to list queries whose filter carries no limit;
	// zero means unbounded.
	defaultLimit int
}

// NewService creates a new lifecycle service.
func NewService(
	log *slog.Logger,
	documents documentRepo,
	deleted deletedRepo,
	archive archiveRepo,
	historyRepo historyRepo,
	audit auditRepo,
	tx txManager,
	clock clockwork.Clock,
	defaultLimit int,
) *Service {
	return &Service{
		documents:    documents,
		deleted:      deleted,
		archive:      archive,
		history:      historyRepo,
		audit:        audit,
		tx:           tx,
		clock:        clock,
		log:          log.With("service", "lifecycle"),
		defaultLimit: defaultLimit,
	}
}
