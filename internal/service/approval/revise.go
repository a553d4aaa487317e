package approval

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/millbrookqa/docregister/internal/domain"
)

// Revise starts a new revision of an ACTIVE document: the record drops back
// to DRAFT under the new revision label with all approvals cleared. The
// caller archives the superseded state first via the lifecycle service when
// the old revision must remain queryable.
func (s *Service) Revise(ctx context.Context, id uuid.UUID, newRevision string) (*domain.DocumentRecord, error) {
	newRevision = strings.TrimSpace(newRevision)
	if newRevision == "" {
		return nil, domain.NewValidationError("revision", "required")
	}

	details := "revision " + newRevision
	return s.transition(ctx, id, domain.ActionRevised, &details, func(doc *domain.DocumentRecord) error {
		if doc.Status != domain.StatusActive {
			return domain.NewTransitionError("revise", doc.Status)
		}
		if doc.Revision == newRevision {
			return domain.NewValidationError("revision", "must differ from the current revision")
		}

		now := s.clock.Now().UTC()
		doc.Status = domain.StatusDraft
		doc.Revision = newRevision
		doc.ReviewStatus = ""
		doc.ClearApproval()
		doc.EffectiveDate = nil
		doc.LastReviewDate = &now
		return nil
	})
}
