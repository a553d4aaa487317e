// Package syncer keeps a structured SOP and its register entry consistent.
// Structured content is authoritative for SopNumber/Title/Revision/Status;
// approval fields live on the register side and are never overwritten here.
package syncer

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/millbrookqa/docregister/internal/domain"
)

type structuredRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StructuredDocument, error)
	Create(ctx context.Context, doc *domain.StructuredDocument) error
	Update(ctx context.Context, doc *domain.StructuredDocument) error
	AddStep(ctx context.Context, step *domain.Step) error
	UpdateStep(ctx context.Context, step *domain.Step) error
	RemoveStep(ctx context.Context, id uuid.UUID) error
}

type documentRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DocumentRecord, error)
	Create(ctx context.Context, doc *domain.DocumentRecord) error
	Update(ctx context.Context, doc *domain.DocumentRecord) error
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

// Service reconciles structured documents with their register entries.
type Service struct {
	structured structuredRepo
	documents  documentRepo
	history    historyRepo
	audit      auditRepo
	tx         txManager
	clock      clockwork.Clock
	log        *slog.Logger

	// maxSteps caps how many steps a structured document may carry;
	// zero means no cap.
	maxSteps int

	// locks serializes Sync per register entry (or per structured document
	// while no register entry exists yet).
	locks *keyedMutex
}

// NewService creates a new sync service.
func NewService(
	log *slog.Logger,
	structured structuredRepo,
	documents documentRepo,
	historyRepo historyRepo,
	audit auditRepo,
	tx txManager,
	clock clockwork.Clock,
	maxSteps int,
) *Service {
	return &Service{
		structured: structured,
		documents:  documents,
		history:    historyRepo,
		audit:      audit,
		tx:         tx,
		clock:      clock,
		log:        log.With("service", "syncer"),
		maxSteps:   maxSteps,
		locks:      newKeyedMutex(),
	}
}
