package lifecycle

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/millbrookqa/docregister/internal/domain"
	"github.com/millbrookqa/docregister/pkg/ctxutil"
)

// PermanentlyDelete destroys a deletion snapshot. After this the document is
// unrecoverable; only the audit trail remembers it existed.
func (s *Service) PermanentlyDelete(ctx context.Context, snapshotID uuid.UUID) error {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return domain.NewValidationError("actor", "required")
	}

	var sopNumber string
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		rec, err := s.deleted.GetByID(txCtx, snapshotID)
		if err != nil {
			return err
		}

		if err := s.deleted.Delete(txCtx, rec.ID); err != nil {
			return err
		}

		now := s.clock.Now().UTC()
		event := domain.AuditEvent{
			ID:            uuid.New(),
			SopNumber:     rec.SopNumber,
			Action:        domain.ActionPermanentlyDeleted,
			PerformedBy:   actor.Name,
			PerformedAt:   now,
			DocumentTitle: &rec.Title,
		}
		if err := s.audit.Append(txCtx, &event); err != nil {
			return fmt.Errorf("append audit event: %w", err)
		}

		sopNumber = rec.SopNumber
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "document permanently deleted",
		slog.String("snapshot_id", snapshotID.String()),
		slog.String("sop_number", sopNumber),
		slog.String("purged_by", actor.Name),
	)

	return nil
}
