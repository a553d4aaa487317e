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

// Archive copies a register entry into the archive store and marks the source
// row archived. The source row stays in place: archival is copy-on-supersede,
// never a move, so the live register keeps its full lineage.
func (s *Service) Archive(ctx context.Context, id uuid.UUID, reason string) (*domain.ArchiveRecord, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.NewValidationError("actor", "required")
	}
	if reason == "" {
		return nil, domain.NewValidationError("reason", "required")
	}

	var archived *domain.ArchiveRecord
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		doc, err := s.documents.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if doc.IsArchived {
			return domain.NewValidationError("is_archived", "already archived")
		}

		before := doc.Clone()
		now := s.clock.Now().UTC()
		rec := archiveOf(doc, reason, actor, now)

		if err := s.archive.Create(txCtx, rec); err != nil {
			return fmt.Errorf("create archive snapshot: %w", err)
		}

		doc.IsArchived = true
		doc.ArchivedOn = &now
		doc.UpdatedAt = now
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
			Action:        domain.ActionArchived,
			PerformedBy:   actor.Name,
			PerformedAt:   now,
			Details:       &reason,
			DocumentTitle: &doc.Title,
			DocRegisterID: &doc.ID,
		}
		if err := s.audit.Append(txCtx, &event); err != nil {
			return fmt.Errorf("append audit event: %w", err)
		}

		archived = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "document archived",
		slog.String("document_id", id.String()),
		slog.String("archive_id", archived.ID.String()),
		slog.String("sop_number", archived.SopNumber),
		slog.String("archived_by", actor.Name),
	)

	return archived, nil
}

// ArchiveDeleted copies a deletion snapshot into the archive store. The
// snapshot stays restorable: archiving a deleted document preserves it for
// the record without ending its restore window.
func (s *Service) ArchiveDeleted(ctx context.Context, deletedID uuid.UUID, reason string) (*domain.ArchiveRecord, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.NewValidationError("actor", "required")
	}
	if reason == "" {
		return nil, domain.NewValidationError("reason", "required")
	}

	var archived *domain.ArchiveRecord
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		rec, err := s.deleted.GetByID(txCtx, deletedID)
		if err != nil {
			return err
		}

		now := s.clock.Now().UTC()
		archived = archiveOfSnapshot(rec, reason, actor, now)
		if err := s.archive.Create(txCtx, archived); err != nil {
			return fmt.Errorf("create archive snapshot: %w", err)
		}

		// The register row is gone; the event keeps the original id so the
		// trail still lines up with the UPLOADED..DELETED events before it.
		event := domain.AuditEvent{
			ID:            uuid.New(),
			SopNumber:     rec.SopNumber,
			Action:        domain.ActionArchived,
			PerformedBy:   actor.Name,
			PerformedAt:   now,
			Details:       &reason,
			DocumentTitle: &rec.Title,
			DocRegisterID: &rec.OriginalDocRegisterID,
		}
		if err := s.audit.Append(txCtx, &event); err != nil {
			return fmt.Errorf("append audit event: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "deleted document archived",
		slog.String("deleted_id", deletedID.String()),
		slog.String("archive_id", archived.ID.String()),
		slog.String("sop_number", archived.SopNumber),
		slog.String("archived_by", actor.Name),
	)

	return archived, nil
}

func archiveOf(doc *domain.DocumentRecord, reason string, actor domain.Actor, now time.Time) *domain.ArchiveRecord {
	return &domain.ArchiveRecord{
		ID:            uuid.New(),
		SourceTable:   domain.SourceTableDocRegister,
		SourceID:      doc.ID,
		SopNumber:     doc.SopNumber,
		UniqueNumber:  doc.UniqueNumber,
		Title:         doc.Title,
		DocType:       doc.DocType,
		Department:    doc.Department,
		Area:          doc.Area,
		Revision:      doc.Revision,
		Status:        doc.Status,
		FileName:      doc.FileName,
		ContentType:   doc.ContentType,
		FileSize:      doc.FileSize,
		StoragePath:   doc.StoragePath,
		Author:        doc.Author,
		UserEmail:     doc.UserEmail,
		EffectiveDate: doc.EffectiveDate,
		UploadDate:    doc.UploadDate,
		ArchiveReason: reason,
		ArchivedBy:    actor.Name,
		ArchivedOn:    now,
	}
}

// archiveOfSnapshot builds an archive copy from a deletion snapshot. Only
// DELETION_REQUESTED rows are ever soft-deleted, so that is the status the
// snapshot was frozen in.
func archiveOfSnapshot(rec *domain.DeletedRecord, reason string, actor domain.Actor, now time.Time) *domain.ArchiveRecord {
	return &domain.ArchiveRecord{
		ID:            uuid.New(),
		SourceTable:   domain.SourceTableDeletedDocuments,
		SourceID:      rec.ID,
		SopNumber:     rec.SopNumber,
		UniqueNumber:  rec.UniqueNumber,
		Title:         rec.Title,
		DocType:       rec.DocType,
		Department:    rec.Department,
		Area:          rec.Area,
		Revision:      rec.Revision,
		Status:        domain.StatusDeletionRequested,
		FileName:      rec.FileName,
		ContentType:   rec.ContentType,
		FileSize:      rec.FileSize,
		StoragePath:   rec.StoragePath,
		Author:        rec.Author,
		UserEmail:     rec.UserEmail,
		EffectiveDate: rec.EffectiveDate,
		UploadDate:    rec.UploadDate,
		ArchiveReason: reason,
		ArchivedBy:    actor.Name,
		ArchivedOn:    now,
	}
}
