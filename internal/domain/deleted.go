package domain

import (
	"time"

	"github.com/google/uuid"
)

// DeletedRecord is a denormalized, self-contained snapshot of a
// DocumentRecord taken at deletion time. Every display field is duplicated
// so the deleted listing and a later restore never depend on the removed
// register row.
type DeletedRecord struct {
	ID uuid.UUID

	// OriginalDocRegisterID is kept for restore bookkeeping only; restore
	// always allocates a fresh identity.
	OriginalDocRegisterID uuid.UUID

	SopNumber    string
	UniqueNumber string
	Title        string
	DocType      string
	Department   string
	Area         string
	Revision     string

	FileName     string
	OriginalFile string
	ContentType  string
	FileSize     int64
	StoragePath  string

	Author               string
	UserEmail            string
	DepartmentSupervisor string
	SupervisorEmail      string

	EffectiveDate  *time.Time
	LastReviewDate *time.Time
	UploadDate     time.Time

	Reason    string
	DeletedBy string
	DeletedOn time.Time
}

// ArchiveRecord is a terminal, read-only snapshot of a DocumentRecord that
// was superseded by a newer revision or explicitly archived. SourceTable and
// SourceID preserve provenance; the source row is copied, not moved.
type ArchiveRecord struct {
	ID          uuid.UUID
	SourceTable string
	SourceID    uuid.UUID

	SopNumber    string
	UniqueNumber string
	Title        string
	DocType      string
	Department   string
	Area         string
	Revision     string
	Status       DocumentStatus

	FileName    string
	ContentType string
	FileSize    int64
	StoragePath string

	Author    string
	UserEmail string

	EffectiveDate *time.Time
	UploadDate    time.Time

	ArchiveReason string
	ArchivedBy    string
	ArchivedOn    time.Time
}

// Provenance markers for ArchiveRecord.SourceTable: an archive is copied
// either from the live register or from a deletion snapshot.
const (
	SourceTableDocRegister      = "doc_register"
	SourceTableDeletedDocuments = "deleted_documents"
)
