package domain

import (
	"time"

	"github.com/google/uuid"
)

// StructuredDocument is an authored SOP with ordered steps, optionally
// linked to exactly one DocumentRecord. The two entities are joined by id
// only; the sync engine owns reconciliation of the mirrored fields.
type StructuredDocument struct {
	ID        uuid.UUID
	SopNumber string
	Title     string
	Revision  string
	Status    DocumentStatus

	// DocRegisterID points at the linked register entry, if any.
	DocRegisterID *uuid.UUID

	IsSyncedToDocRegister bool
	SyncedDate            *time.Time

	RowVersion int64
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Steps []Step
}

// IsLinked reports whether the document has a register entry.
func (d *StructuredDocument) IsLinked() bool {
	return d.DocRegisterID != nil
}

// StepByNumber returns the step with the given number, or nil.
func (d *StructuredDocument) StepByNumber(n int) *Step {
	for i := range d.Steps {
		if d.Steps[i].StepNumber == n {
			return &d.Steps[i]
		}
	}
	return nil
}

// Step is an ordered child of exactly one StructuredDocument.
type Step struct {
	ID           uuid.UUID
	DocumentID   uuid.UUID
	StepNumber   int
	Instructions string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks the step's own invariants.
func (s *Step) Validate() error {
	if s.StepNumber <= 0 {
		return NewValidationError("step_number", "must be positive")
	}
	if s.Instructions == "" {
		return NewValidationError("instructions", "required")
	}
	return nil
}
