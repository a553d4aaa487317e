package approval

import (
	"context"

	"github.com/google/uuid"

	"github.com/millbrookqa/docregister/internal/domain"
)

// Get returns one register entry.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.DocumentRecord, error) {
	return s.documents.GetByID(ctx, id)
}

// History returns the field-level change history of a register entry,
// oldest first.
func (s *Service) History(ctx context.Context, id uuid.UUID) ([]domain.HistoryEntry, error) {
	return s.history.ListByEntity(ctx, domain.KindDocRegister, id)
}

// AuditTrail returns every audit event recorded under a SOP number, ordered
// by performed_at with insertion order breaking ties. The trail survives
// deletion of the register row.
func (s *Service) AuditTrail(ctx context.Context, sopNumber string) ([]domain.AuditEvent, error) {
	return s.audit.ListBySopNumber(ctx, sopNumber)
}
