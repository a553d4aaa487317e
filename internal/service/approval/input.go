package approval

import (
	"strings"

	"github.com/millbrookqa/docregister/internal/domain"
)

// UploadInput carries the caller-supplied fields for a new register entry.
// File descriptors are opaque strings produced by the file-store
// collaborator before the core is invoked.
type UploadInput struct {
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
}

// Validate checks the fields required to register a document at all.
// Submission applies the stricter submit gate on top of this.
func (in UploadInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(in.SopNumber) == "" {
		errs = append(errs, domain.FieldError{Field: "sop_number", Message: "required"})
	}
	if strings.TrimSpace(in.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if strings.TrimSpace(in.FileName) == "" {
		errs = append(errs, domain.FieldError{Field: "file_name", Message: "required"})
	}
	if in.FileSize < 0 {
		errs = append(errs, domain.FieldError{Field: "file_size", Message: "must not be negative"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// validateSubmit enforces the submit gate: a record may only enter the
// approval queue with its classification complete.
func validateSubmit(doc *domain.DocumentRecord) error {
	var errs []domain.FieldError
	if strings.TrimSpace(doc.SopNumber) == "" {
		errs = append(errs, domain.FieldError{Field: "sop_number", Message: "required"})
	}
	if strings.TrimSpace(doc.Revision) == "" {
		errs = append(errs, domain.FieldError{Field: "revision", Message: "required"})
	}
	if strings.TrimSpace(doc.DocType) == "" {
		errs = append(errs, domain.FieldError{Field: "doc_type", Message: "required"})
	}
	if strings.TrimSpace(doc.Area) == "" {
		errs = append(errs, domain.FieldError{Field: "area", Message: "required"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
