package domain

// DocumentStatus represents the lifecycle state of a register entry.
type DocumentStatus string

const (
	StatusDraft             DocumentStatus = "DRAFT"
	StatusPendingApproval   DocumentStatus = "PENDING_APPROVAL"
	StatusManagerApproved   DocumentStatus = "MANAGER_APPROVED"
	StatusActive            DocumentStatus = "ACTIVE"
	StatusReturnedForReview DocumentStatus = "RETURNED_FOR_REVIEW"
	StatusDeletionRequested DocumentStatus = "DELETION_REQUESTED"
)

func (s DocumentStatus) String() string { return string(s) }

func (s DocumentStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPendingApproval, StatusManagerApproved,
		StatusActive, StatusReturnedForReview, StatusDeletionRequested:
		return true
	}
	return false
}

// ApprovalStage tracks how far along the two-stage approval a document is.
type ApprovalStage string

const (
	StageNone    ApprovalStage = "NONE"
	StageManager ApprovalStage = "MANAGER"
	StageAdmin   ApprovalStage = "ADMIN"
)

func (s ApprovalStage) String() string { return string(s) }

func (s ApprovalStage) IsValid() bool {
	switch s {
	case StageNone, StageManager, StageAdmin:
		return true
	}
	return false
}

// EntityKind identifies the kind of entity a history entry belongs to.
type EntityKind string

const (
	KindDocRegister        EntityKind = "DOC_REGISTER"
	KindStructuredDocument EntityKind = "STRUCTURED_DOCUMENT"
	KindStep               EntityKind = "STEP"
)

func (k EntityKind) String() string { return string(k) }

func (k EntityKind) IsValid() bool {
	switch k {
	case KindDocRegister, KindStructuredDocument, KindStep:
		return true
	}
	return false
}

// AuditAction represents the lifecycle transition recorded by an audit event.
type AuditAction string

const (
	ActionUploaded           AuditAction = "UPLOADED"
	ActionPendingApproval    AuditAction = "PENDING_APPROVAL"
	ActionManagerApproved    AuditAction = "MANAGER_APPROVED"
	ActionAdminApproved      AuditAction = "ADMIN_APPROVED"
	ActionRejected           AuditAction = "REJECTED"
	ActionRevised            AuditAction = "REVISED"
	ActionDeletionRequested  AuditAction = "DELETION_REQUESTED"
	ActionDeleted            AuditAction = "DELETED"
	ActionRestored           AuditAction = "RESTORED"
	ActionArchived           AuditAction = "ARCHIVED"
	ActionPermanentlyDeleted AuditAction = "PERMANENTLY_DELETED"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case ActionUploaded, ActionPendingApproval, ActionManagerApproved,
		ActionAdminApproved, ActionRejected, ActionRevised,
		ActionDeletionRequested, ActionDeleted, ActionRestored,
		ActionArchived, ActionPermanentlyDeleted:
		return true
	}
	return false
}
