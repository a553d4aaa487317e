package lifecycle

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/millbrookqa/docregister/internal/domain"
	"github.com/millbrookqa/docregister/internal/history"
	"github.com/millbrookqa/docregister/pkg/ctxutil"
)

// RequestDeletion marks a register entry for deletion. The entry stays fully
// visible until an administrator confirms with SoftDelete; Reject-style
// withdrawal is just another RequestDeletion with the record resubmitted.
func (s *Service) RequestDeletion(ctx context.Context, id uuid.UUID, reason string) (*domain.DocumentRecord, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.NewValidationError("actor", "required")
	}
	if reason == "" {
		return nil, domain.NewValidationError("reason", "required")
	}

	var updated *domain.DocumentRecord
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		doc, err := s.documents.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if doc.Status == domain.StatusDeletionRequested {
			return domain.NewTransitionError("request deletion", doc.Status)
		}

		before := doc.Clone()
		now := s.clock.Now().UTC()

		doc.Status = domain.StatusDeletionRequested
		doc.DeletionReason = &reason
		doc.DeletionRequestedBy = &actor.Name
		doc.DeletionRequestedOn = &now
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
			Action:        domain.ActionDeletionRequested,
			PerformedBy:   actor.Name,
			PerformedAt:   now,
			Details:       &reason,
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

	s.log.InfoContext(ctx, "deletion requested",
		slog.String("document_id", updated.ID.String()),
		slog.String("sop_number", updated.SopNumber),
		slog.String("requested_by", actor.Name),
	)

	return updated, nil
}
