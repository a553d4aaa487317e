package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/millbrookqa/docregister/internal/domain"
	"github.com/millbrookqa/docregister/internal/history"
	"github.com/millbrookqa/docregister/pkg/ctxutil"
)

// Restore rebuilds a register entry from its deletion snapshot and consumes
// the snapshot. The restored entry gets a fresh identity and comes back
// ACTIVE with all approval state cleared; the old id stays in the audit trail
// only. A purged snapshot fails with domain.ErrNotFound.
func (s *Service) Restore(ctx context.Context, snapshotID uuid.UUID) (*domain.DocumentRecord, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.NewValidationError("actor", "required")
	}

	var restored *domain.DocumentRecord
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		rec, err := s.deleted.GetByID(txCtx, snapshotID)
		if err != nil {
			return err
		}

		now := s.clock.Now().UTC()
		doc := recordFromSnapshot(rec, now)

		if err := s.documents.Create(txCtx, doc); err != nil {
			return err
		}
		if err := s.deleted.Delete(txCtx, rec.ID); err != nil {
			return fmt.Errorf("consume deletion snapshot: %w", err)
		}

		entries := history.DocumentChanges(nil, doc, actor, now)
		if err := s.history.Append(txCtx, entries); err != nil {
			return fmt.Errorf("record history: %w", err)
		}

		details := fmt.Sprintf("restored from deletion of %s", rec.OriginalDocRegisterID)
		event := domain.AuditEvent{
			ID:            uuid.New(),
			SopNumber:     doc.SopNumber,
			Action:        domain.ActionRestored,
			PerformedBy:   actor.Name,
			PerformedAt:   now,
			Details:       &details,
			DocumentTitle: &doc.Title,
			DocRegisterID: &doc.ID,
		}
		if err := s.audit.Append(txCtx, &event); err != nil {
			return fmt.Errorf("append audit event: %w", err)
		}

		restored = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "document restored",
		slog.String("document_id", restored.ID.String()),
		slog.String("snapshot_id", snapshotID.String()),
		slog.String("sop_number", restored.SopNumber),
		slog.String("restored_by", actor.Name),
	)

	return restored, nil
}

// recordFromSnapshot rebuilds a live register entry from a deletion snapshot.
// Approval bookkeeping does not survive deletion, so the entry returns ACTIVE
// with a clean approval slate rather than in whatever state it died in.
func recordFromSnapshot(rec *domain.DeletedRecord, now time.Time) *domain.DocumentRecord {
	return &domain.DocumentRecord{
		ID:                   uuid.New(),
		SopNumber:            rec.SopNumber,
		UniqueNumber:         rec.UniqueNumber,
		Title:                rec.Title,
		DocType:              rec.DocType,
		Department:           rec.Department,
		Area:                 rec.Area,
		Revision:             rec.Revision,
		FileName:             rec.FileName,
		OriginalFile:         rec.OriginalFile,
		ContentType:          rec.ContentType,
		FileSize:             rec.FileSize,
		StoragePath:          rec.StoragePath,
		Author:               rec.Author,
		UserEmail:            rec.UserEmail,
		DepartmentSupervisor: rec.DepartmentSupervisor,
		SupervisorEmail:      rec.SupervisorEmail,
		Status:               domain.StatusActive,
		ReviewStatus:         "RESTORED",
		ApprovalStage:        domain.StageNone,
		EffectiveDate:        rec.EffectiveDate,
		LastReviewDate:       rec.LastReviewDate,
		UploadDate:           rec.UploadDate,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}
