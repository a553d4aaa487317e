package approval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/millbrookqa/docregister/internal/domain"
	"github.com/millbrookqa/docregister/pkg/ctxutil"
)

// Upload registers a new document in DRAFT status and appends the UPLOADED
// audit event. No history entries are written for creation; history starts
// with the first mutation.
func (s *Service) Upload(ctx context.Context, input UploadInput) (*domain.DocumentRecord, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.NewValidationError("actor", "required")
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	doc := &domain.DocumentRecord{
		ID:                   uuid.New(),
		SopNumber:            input.SopNumber,
		UniqueNumber:         input.UniqueNumber,
		Title:                input.Title,
		DocType:              input.DocType,
		Department:           input.Department,
		Area:                 input.Area,
		Revision:             input.Revision,
		FileName:             input.FileName,
		OriginalFile:         input.OriginalFile,
		ContentType:          input.ContentType,
		FileSize:             input.FileSize,
		StoragePath:          input.StoragePath,
		Author:               input.Author,
		UserEmail:            input.UserEmail,
		DepartmentSupervisor: input.DepartmentSupervisor,
		SupervisorEmail:      input.SupervisorEmail,
		Status:               domain.StatusDraft,
		ApprovalStage:        domain.StageNone,
		UploadDate:           now,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.documents.Create(txCtx, doc); err != nil {
			return err
		}

		event := domain.AuditEvent{
			ID:            uuid.New(),
			SopNumber:     doc.SopNumber,
			Action:        domain.ActionUploaded,
			PerformedBy:   actor.Name,
			PerformedAt:   now,
			DocumentTitle: &doc.Title,
			DocRegisterID: &doc.ID,
		}
		if err := s.audit.Append(txCtx, &event); err != nil {
			return fmt.Errorf("append audit event: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "document uploaded",
		slog.String("document_id", doc.ID.String()),
		slog.String("sop_number", doc.SopNumber),
		slog.String("uploaded_by", actor.Name),
	)

	return doc, nil
}
