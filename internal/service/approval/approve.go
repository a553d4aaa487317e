package approval

import (
	"context"

	"github.com/google/uuid"

	"github.com/millbrookqa/docregister/internal/domain"
	"github.com/millbrookqa/docregister/pkg/ctxutil"
)

// ApproveAsManager records the first approval stage.
// Legal only from PENDING_APPROVAL.
func (s *Service) ApproveAsManager(ctx context.Context, id uuid.UUID) (*domain.DocumentRecord, error) {
	actor, _ := ctxutil.ActorFromCtx(ctx)

	return s.transition(ctx, id, domain.ActionManagerApproved, nil, func(doc *domain.DocumentRecord) error {
		if doc.Status != domain.StatusPendingApproval {
			return domain.NewTransitionError("manager approval", doc.Status)
		}

		now := s.clock.Now().UTC()
		doc.Status = domain.StatusManagerApproved
		doc.ApprovalStage = domain.StageManager
		doc.ManagerApproved = true
		doc.ManagerApprovedDate = &now
		doc.ReviewStatus = "AWAITING_ADMIN"
		reviewer := actor.Name
		doc.ReviewedBy = &reviewer
		return nil
	})
}

// ApproveAsAdmin records the second, final approval stage and activates the
// document. Legal only from MANAGER_APPROVED with the manager stage already
// recorded — approval is strictly sequential.
func (s *Service) ApproveAsAdmin(ctx context.Context, id uuid.UUID) (*domain.DocumentRecord, error) {
	actor, _ := ctxutil.ActorFromCtx(ctx)

	return s.transition(ctx, id, domain.ActionAdminApproved, nil, func(doc *domain.DocumentRecord) error {
		if doc.Status != domain.StatusManagerApproved || !doc.ManagerApproved {
			return domain.NewTransitionError("admin approval", doc.Status)
		}

		now := s.clock.Now().UTC()
		doc.Status = domain.StatusActive
		doc.ApprovalStage = domain.StageAdmin
		doc.AdminApproved = true
		doc.AdminApprovedDate = &now
		doc.ReviewStatus = "APPROVED"
		approver := actor.Name
		doc.ApprovedBy = &approver
		if doc.EffectiveDate == nil {
			doc.EffectiveDate = &now
		}
		return nil
	})
}
