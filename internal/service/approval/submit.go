package approval

import (
	"context"

	"github.com/google/uuid"

	"github.com/millbrookqa/docregister/internal/domain"
)

// Submit moves a DRAFT record into the approval queue.
// The record must carry SopNumber, Revision, DocType, and a non-empty Area;
// otherwise the call fails with a validation error and no state change.
func (s *Service) Submit(ctx context.Context, id uuid.UUID) (*domain.DocumentRecord, error) {
	return s.transition(ctx, id, domain.ActionPendingApproval, nil, func(doc *domain.DocumentRecord) error {
		if doc.Status != domain.StatusDraft {
			return domain.NewTransitionError("submit", doc.Status)
		}
		if err := validateSubmit(doc); err != nil {
			return err
		}

		doc.Status = domain.StatusPendingApproval
		doc.ReviewStatus = "AWAITING_MANAGER"
		return nil
	})
}

// Resubmit returns a rejected record to the approval queue, clearing the
// rejection bookkeeping.
func (s *Service) Resubmit(ctx context.Context, id uuid.UUID) (*domain.DocumentRecord, error) {
	return s.transition(ctx, id, domain.ActionPendingApproval, nil, func(doc *domain.DocumentRecord) error {
		if doc.Status != domain.StatusReturnedForReview {
			return domain.NewTransitionError("resubmit", doc.Status)
		}
		if err := validateSubmit(doc); err != nil {
			return err
		}

		doc.Status = domain.StatusPendingApproval
		doc.ReviewStatus = "AWAITING_MANAGER"
		doc.RejectionReason = nil
		doc.ReturnedDate = nil
		return nil
	})
}
