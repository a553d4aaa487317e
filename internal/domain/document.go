package domain

import (
	"time"

	"github.com/google/uuid"
)

// Actor identifies who performs an operation. Identity resolution happens
// outside the core; the actor arrives already authenticated.
type Actor struct {
	Name  string
	Email string
}

// IsZero reports whether no actor was supplied.
func (a Actor) IsZero() bool {
	return a.Name == "" && a.Email == ""
}

// DocumentRecord is the canonical register entry for a controlled document.
//
// Status is the source of truth for the lifecycle state. The boolean/date
// approval pairs (ManagerApproved/ManagerApprovedDate etc.) are denormalized
// for display and are always written together with the status inside the
// same transaction.
type DocumentRecord struct {
	ID uuid.UUID

	// Identity
	SopNumber    string
	UniqueNumber string
	Title        string

	// Classification
	DocType    string
	Department string
	Area       string
	Revision   string

	// File descriptors. Path strings are opaque; the file store collaborator
	// owns their meaning.
	FileName     string
	OriginalFile string
	ContentType  string
	FileSize     int64
	StoragePath  string

	// Authorship
	Author               string
	UserEmail            string
	DepartmentSupervisor string
	SupervisorEmail      string

	// Lifecycle
	Status              DocumentStatus
	ReviewStatus        string
	ApprovalStage       ApprovalStage
	ManagerApproved     bool
	ManagerApprovedDate *time.Time
	AdminApproved       bool
	AdminApprovedDate   *time.Time
	ApprovedBy          *string
	ReviewedBy          *string
	RejectionReason     *string
	ReturnedDate        *time.Time
	DeletionReason      *string
	DeletionRequestedBy *string
	DeletionRequestedOn *time.Time
	IsArchived          bool
	ArchivedOn          *time.Time
	EffectiveDate       *time.Time
	LastReviewDate      *time.Time
	UploadDate          time.Time

	// RowVersion is the optimistic-concurrency token. Every update must
	// carry the version it read; a mismatch fails with ErrConflict.
	RowVersion int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone returns a deep copy. Pointer fields are duplicated so a mutation of
// the copy never leaks into the original (history diffs rely on this).
func (d *DocumentRecord) Clone() *DocumentRecord {
	c := *d
	c.ManagerApprovedDate = cloneTime(d.ManagerApprovedDate)
	c.AdminApprovedDate = cloneTime(d.AdminApprovedDate)
	c.ApprovedBy = cloneString(d.ApprovedBy)
	c.ReviewedBy = cloneString(d.ReviewedBy)
	c.RejectionReason = cloneString(d.RejectionReason)
	c.ReturnedDate = cloneTime(d.ReturnedDate)
	c.DeletionReason = cloneString(d.DeletionReason)
	c.DeletionRequestedBy = cloneString(d.DeletionRequestedBy)
	c.DeletionRequestedOn = cloneTime(d.DeletionRequestedOn)
	c.ArchivedOn = cloneTime(d.ArchivedOn)
	c.EffectiveDate = cloneTime(d.EffectiveDate)
	c.LastReviewDate = cloneTime(d.LastReviewDate)
	return &c
}

// ClearApproval resets both approval stages and the derived display fields.
// Used on rejection and on revision.
func (d *DocumentRecord) ClearApproval() {
	d.ApprovalStage = StageNone
	d.ManagerApproved = false
	d.ManagerApprovedDate = nil
	d.AdminApproved = false
	d.AdminApprovedDate = nil
	d.ApprovedBy = nil
}

// CheckInvariants verifies the approval-field invariants:
// ManagerApprovedDate is set iff ManagerApproved, and AdminApproved implies
// ManagerApproved (approval is sequential).
func (d *DocumentRecord) CheckInvariants() error {
	if !d.Status.IsValid() {
		return NewValidationError("status", "unknown status "+d.Status.String())
	}
	if d.ManagerApproved != (d.ManagerApprovedDate != nil) {
		return NewValidationError("manager_approved_date", "must be set exactly when manager approval is set")
	}
	if d.AdminApproved && !d.ManagerApproved {
		return NewValidationError("admin_approved", "requires prior manager approval")
	}
	if d.AdminApproved != (d.AdminApprovedDate != nil) {
		return NewValidationError("admin_approved_date", "must be set exactly when admin approval is set")
	}
	return nil
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
