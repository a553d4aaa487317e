package approval

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/millbrookqa/docregister/internal/domain"
)

// Reject sends a record back to its author from either approval stage.
// Both approval flag pairs are cleared so the record re-enters the queue
// from the beginning when resubmitted.
func (s *Service) Reject(ctx context.Context, id uuid.UUID, reason string) (*domain.DocumentRecord, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.NewValidationError("reason", "required")
	}

	return s.transition(ctx, id, domain.ActionRejected, &reason, func(doc *domain.DocumentRecord) error {
		if doc.Status != domain.StatusPendingApproval && doc.Status != domain.StatusManagerApproved {
			return domain.NewTransitionError("reject", doc.Status)
		}

		now := s.clock.Now().UTC()
		doc.Status = domain.StatusReturnedForReview
		doc.ReviewStatus = "RETURNED"
		doc.ClearApproval()
		doc.RejectionReason = &reason
		doc.ReturnedDate = &now
		return nil
	})
}
