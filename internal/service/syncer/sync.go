package syncer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/millbrookqa/docregister/internal/domain"
	"github.com/millbrookqa/docregister/internal/history"
	"github.com/millbrookqa/docregister/pkg/ctxutil"
)

// Sync reconciles one structured document with its register entry.
//
// Unlinked documents get a fresh register entry mirroring their identity
// fields, linked both ways. Linked documents propagate
// SopNumber/Title/Revision/Status onto the register entry when they
// diverge; the register's approval fields are left untouched.
//
// The returned bool reports whether anything had to be written. Concurrent
// calls for the same pair serialize on a per-register lock so a lost update
// between two near-simultaneous edits cannot occur.
func (s *Service) Sync(ctx context.Context, structuredID uuid.UUID) (*domain.DocumentRecord, bool, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, false, domain.NewValidationError("actor", "required")
	}

	sdoc, err := s.structured.GetByID(ctx, structuredID)
	if err != nil {
		return nil, false, err
	}

	// The key is re-derived after acquisition: a racing sync may have
	// linked the document between the read and the lock, moving it from
	// its own key onto the register's.
	key := lockKey(sdoc)
	for {
		s.locks.Lock(key)
		sdoc, err = s.structured.GetByID(ctx, structuredID)
		if err != nil {
			s.locks.Unlock(key)
			return nil, false, err
		}
		rekeyed := lockKey(sdoc)
		if rekeyed == key {
			break
		}
		s.locks.Unlock(key)
		key = rekeyed
	}
	defer s.locks.Unlock(key)

	var (
		record *domain.DocumentRecord
		synced bool
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		// Re-read under the lock; another sync may have won the race.
		sdoc, err := s.structured.GetByID(txCtx, structuredID)
		if err != nil {
			return err
		}

		if !sdoc.IsLinked() {
			record, err = s.createRegisterEntry(txCtx, sdoc, actor)
			synced = err == nil
			return err
		}

		record, synced, err = s.propagate(txCtx, sdoc, actor)
		return err
	})
	if err != nil {
		return nil, false, err
	}

	if synced {
		s.log.InfoContext(ctx, "structured document synced",
			slog.String("structured_id", structuredID.String()),
			slog.String("doc_register_id", record.ID.String()),
			slog.String("revision", record.Revision),
		)
	}

	return record, synced, nil
}

// lockKey is the serialization key for a sync: the register entry once
// linked, the structured document itself before that.
func lockKey(sdoc *domain.StructuredDocument) string {
	if sdoc.IsLinked() {
		return sdoc.DocRegisterID.String()
	}
	return sdoc.ID.String()
}

// createRegisterEntry mirrors an unlinked structured document into a new
// register entry and links both sides.
func (s *Service) createRegisterEntry(ctx context.Context, sdoc *domain.StructuredDocument, actor domain.Actor) (*domain.DocumentRecord, error) {
	now := s.clock.Now().UTC()

	status := sdoc.Status
	if status == "" {
		status = domain.StatusDraft
	}

	record := &domain.DocumentRecord{
		ID:            uuid.New(),
		SopNumber:     sdoc.SopNumber,
		Title:         sdoc.Title,
		Revision:      sdoc.Revision,
		Status:        status,
		ApprovalStage: domain.StageNone,
		Author:        actor.Name,
		UserEmail:     actor.Email,
		UploadDate:    now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.documents.Create(ctx, record); err != nil {
		return nil, err
	}

	before := *sdoc
	sdoc.DocRegisterID = &record.ID
	sdoc.Status = status
	sdoc.IsSyncedToDocRegister = true
	sdoc.SyncedDate = &now
	sdoc.UpdatedAt = now
	if err := s.structured.Update(ctx, sdoc); err != nil {
		return nil, err
	}

	entries := history.StructuredChanges(&before, sdoc, actor, now)
	if err := s.history.Append(ctx, entries); err != nil {
		return nil, fmt.Errorf("record history: %w", err)
	}

	event := domain.AuditEvent{
		ID:            uuid.New(),
		SopNumber:     record.SopNumber,
		Action:        domain.ActionUploaded,
		PerformedBy:   actor.Name,
		PerformedAt:   now,
		DocumentTitle: &record.Title,
		DocRegisterID: &record.ID,
	}
	if err := s.audit.Append(ctx, &event); err != nil {
		return nil, fmt.Errorf("append audit event: %w", err)
	}

	return record, nil
}

// propagate pushes the structured document's mirrored fields onto the
// linked register entry when they diverge.
func (s *Service) propagate(ctx context.Context, sdoc *domain.StructuredDocument, actor domain.Actor) (*domain.DocumentRecord, bool, error) {
	record, err := s.documents.GetByID(ctx, *sdoc.DocRegisterID)
	if err != nil {
		return nil, false, err
	}

	aligned := record.SopNumber == sdoc.SopNumber &&
		record.Title == sdoc.Title &&
		record.Revision == sdoc.Revision &&
		record.Status == sdoc.Status
	if aligned && sdoc.IsSyncedToDocRegister {
		return record, false, nil
	}

	now := s.clock.Now().UTC()

	if !aligned {
		before := record.Clone()
		record.SopNumber = sdoc.SopNumber
		record.Title = sdoc.Title
		record.Revision = sdoc.Revision
		record.Status = sdoc.Status
		record.UpdatedAt = now
		if err := s.documents.Update(ctx, record); err != nil {
			return nil, false, err
		}

		entries := history.DocumentChanges(before, record, actor, now)
		if err := s.history.Append(ctx, entries); err != nil {
			return nil, false, fmt.Errorf("record history: %w", err)
		}

		details := "synced from structured document"
		event := domain.AuditEvent{
			ID:            uuid.New(),
			SopNumber:     record.SopNumber,
			Action:        domain.ActionRevised,
			PerformedBy:   actor.Name,
			PerformedAt:   now,
			Details:       &details,
			DocumentTitle: &record.Title,
			DocRegisterID: &record.ID,
		}
		if err := s.audit.Append(ctx, &event); err != nil {
			return nil, false, fmt.Errorf("append audit event: %w", err)
		}
	}

	sdoc.IsSyncedToDocRegister = true
	sdoc.SyncedDate = &now
	sdoc.UpdatedAt = now
	if err := s.structured.Update(ctx, sdoc); err != nil {
		return nil, false, err
	}

	return record, true, nil
}
