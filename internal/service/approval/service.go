// Package approval implements the dual-stage approval state machine for
// register entries. Every transition runs as one transaction: state update,
// field-level history, and audit event commit together or not at all.
package approval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/millbrookqa/docregister/internal/domain"
	"github.com/millbrookqa/docregister/internal/history"
	"github.com/millbrookqa/docregister/pkg/ctxutil"
)

type documentRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DocumentRecord, error)
	GetBySopNumber(ctx context.Context, sopNumber string) ([]*domain.DocumentRecord, error)
	Create(ctx context.Context, doc *domain.DocumentRecord) error
	Update(ctx context.Context, doc *domain.DocumentRecord) error
}

type historyRepo interface {
	Append(ctx context.Context, entries []domain.HistoryEntry) error
	ListByEntity(ctx context.Context, kind domain.EntityKind, entityID uuid.UUID) ([]domain.HistoryEntry, error)
}

type auditRepo interface {
	Append(ctx context.Context, event *domain.AuditEvent) error
	ListBySopNumber(ctx context.Context, sopNumber string) ([]domain.AuditEvent, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides the approval state machine operations.
type Service struct {
	documents documentRepo
	history   historyRepo
	audit     auditRepo
	tx        txManager
	clock     clockwork.Clock
	log       *slog.Logger
}

// NewService creates a new approval service.
func NewService(
	log *slog.Logger,
	documents documentRepo,
	historyRepo historyRepo,
	audit auditRepo,
	tx txManager,
	clock clockwork.Clock,
) *Service {
	return &Service{
		documents: documents,
		history:   historyRepo,
		audit:     audit,
		tx:        tx,
		clock:     clock,
		log:       log.With("service", "approval"),
	}
}

// transition loads the record, applies mutate, and persists the update
// together with its history entries and exactly one audit event, all inside
// one transaction. The record's row version guards against a concurrent
// transition winning the race: the loser fails with domain.ErrConflict.
func (s *Service) transition(ctx context.Context, id uuid.UUID, action domain.AuditAction, details *string, mutate func(doc *domain.DocumentRecord) error) (*domain.DocumentRecord, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.NewValidationError("actor", "required")
	}

	var updated *domain.DocumentRecord
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		doc, err := s.documents.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		before := doc.Clone()
		if err := mutate(doc); err != nil {
			return err
		}

		now := s.clock.Now().UTC()
		doc.UpdatedAt = now
		if err := doc.CheckInvariants(); err != nil {
			return err
		}

		if err := s.documents.Update(txCtx, doc); err != nil {
			return err
		}

		entries := history.DocumentChanges(before, doc, actor, now)
		if err := s.history.Append(txCtx, entries); err != nil {
			return fmt.Errorf("record history: %w", err)
		}

		event := domain.AuditEvent{
			ID:            uuid.New(),
			SopNumber:     doc.SopNumber,
			Action:        action,
			PerformedBy:   actor.Name,
			PerformedAt:   now,
			Details:       details,
			DocumentTitle: &doc.Title,
			DocRegisterID: &doc.ID,
		}
		if err := s.audit.Append(txCtx, &event); err != nil {
			return fmt.Errorf("append audit event: %w", err)
		}

		updated = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "document transition",
		slog.String("document_id", updated.ID.String()),
		slog.String("sop_number", updated.SopNumber),
		slog.String("action", action.String()),
		slog.String("status", updated.Status.String()),
		slog.String("performed_by", actor.Name),
	)

	return updated, nil
}
