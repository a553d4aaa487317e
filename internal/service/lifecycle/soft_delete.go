package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/millbrookqa/docregister/internal/domain"
	"github.com/millbrookqa/docregister/pkg/ctxutil"
)

// SoftDelete removes a register entry whose deletion was requested, taking a
// self-contained snapshot into the deleted store first. Snapshot insert, row
// removal, and the audit event run in one transaction; the register never
// shows a half-deleted entry.
//
// The audit event keeps the removed row's id so the trail stays traceable
// after the row is gone.
func (s *Service) SoftDelete(ctx context.Context, id uuid.UUID) (*domain.DeletedRecord, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.NewValidationError("actor", "required")
	}

	var snapshot *domain.DeletedRecord
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		doc, err := s.documents.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if doc.Status != domain.StatusDeletionRequested {
			return domain.NewTransitionError("delete", doc.Status)
		}

		now := s.clock.Now().UTC()
		rec := snapshotOf(doc, actor, now)

		if err := s.deleted.Create(txCtx, rec); err != nil {
			return fmt.Errorf("create deletion snapshot: %w", err)
		}
		if err := s.documents.Delete(txCtx, doc.ID); err != nil {
			return err
		}

		details := rec.Reason
		event := domain.AuditEvent{
			ID:            uuid.New(),
			SopNumber:     doc.SopNumber,
			Action:        domain.ActionDeleted,
			PerformedBy:   actor.Name,
			PerformedAt:   now,
			Details:       &details,
			DocumentTitle: &doc.Title,
			DocRegisterID: &doc.ID,
		}
		if err := s.audit.Append(txCtx, &event); err != nil {
			return fmt.Errorf("append audit event: %w", err)
		}

		snapshot = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "document deleted",
		slog.String("document_id", id.String()),
		slog.String("snapshot_id", snapshot.ID.String()),
		slog.String("sop_number", snapshot.SopNumber),
		slog.String("deleted_by", actor.Name),
	)

	return snapshot, nil
}

// snapshotOf copies every display field of the register entry into a
// DeletedRecord so the deleted listing works without the removed row.
func snapshotOf(doc *domain.DocumentRecord, actor domain.Actor, now time.Time) *domain.DeletedRecord {
	reason := ""
	if doc.DeletionReason != nil {
		reason = *doc.DeletionReason
	}

	return &domain.DeletedRecord{
		ID:                    uuid.New(),
		OriginalDocRegisterID: doc.ID,
		SopNumber:             doc.SopNumber,
		UniqueNumber:          doc.UniqueNumber,
		Title:                 doc.Title,
		DocType:               doc.DocType,
		Department:            doc.Department,
		Area:                  doc.Area,
		Revision:              doc.Revision,
		FileName:              doc.FileName,
		OriginalFile:          doc.OriginalFile,
		ContentType:           doc.ContentType,
		FileSize:              doc.FileSize,
		StoragePath:           doc.StoragePath,
		Author:                doc.Author,
		UserEmail:             doc.UserEmail,
		DepartmentSupervisor:  doc.DepartmentSupervisor,
		SupervisorEmail:       doc.SupervisorEmail,
		EffectiveDate:         doc.EffectiveDate,
		LastReviewDate:        doc.LastReviewDate,
		UploadDate:            doc.UploadDate,
		Reason:                reason,
		DeletedBy:             actor.Name,
		DeletedOn:             now,
	}
}
