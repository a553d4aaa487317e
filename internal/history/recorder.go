// Package history computes field-level diffs for tracked entities.
// It produces append-only HistoryEntry values; persistence belongs to the
// caller, inside the same transaction as the mutation being recorded.
package history

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/millbrookqa/docregister/internal/domain"
)

// NullValue marks an absent (NULL) value in the textual encoding. It is
// distinct from the empty string, which encodes an empty but present value.
const NullValue = "(null)"

// Field is one tracked property in its textual encoding.
type Field struct {
	Name  string
	Value string
}

// Diff pairs before/after snapshots by field name and emits one entry per
// field whose encoded value changed. Both snapshots must come from the same
// extractor, so order and field sets always match. A no-op diff returns an
// empty slice.
func Diff(kind domain.EntityKind, entityID uuid.UUID, before, after []Field, actor domain.Actor, now time.Time) []domain.HistoryEntry {
	entries := make([]domain.HistoryEntry, 0, len(after))
	for i, f := range after {
		if i < len(before) && before[i].Value == f.Value {
			continue
		}
		old := NullValue
		if i < len(before) {
			old = before[i].Value
		}
		entries = append(entries, domain.HistoryEntry{
			ID:             uuid.New(),
			EntityKind:     kind,
			EntityID:       entityID,
			PropertyName:   f.Name,
			OldValue:       old,
			NewValue:       f.Value,
			ChangedBy:      actor.Name,
			ChangedByEmail: actor.Email,
			ChangedAt:      now,
		})
	}
	return entries
}

// DocumentChanges diffs two register snapshots over the tracked set.
// A nil before records every tracked field of after as newly set.
func DocumentChanges(before, after *domain.DocumentRecord, actor domain.Actor, now time.Time) []domain.HistoryEntry {
	var b []Field
	if before != nil {
		b = DocumentFields(before)
	}
	return Diff(domain.KindDocRegister, after.ID, b, DocumentFields(after), actor, now)
}

// StructuredChanges diffs two structured-document snapshots.
func StructuredChanges(before, after *domain.StructuredDocument, actor domain.Actor, now time.Time) []domain.HistoryEntry {
	var b []Field
	if before != nil {
		b = StructuredFields(before)
	}
	return Diff(domain.KindStructuredDocument, after.ID, b, StructuredFields(after), actor, now)
}

// StepChanges diffs two step snapshots.
func StepChanges(before, after *domain.Step, actor domain.Actor, now time.Time) []domain.HistoryEntry {
	var b []Field
	if before != nil {
		b = StepFields(before)
	}
	return Diff(domain.KindStep, after.ID, b, StepFields(after), actor, now)
}

// DocumentFields returns the tracked property set of a register entry.
// Transient and display-only fields (storage paths, row version, timestamps
// maintained by the store) are deliberately absent.
func DocumentFields(d *domain.DocumentRecord) []Field {
	return []Field{
		{"sop_number", d.SopNumber},
		{"unique_number", d.UniqueNumber},
		{"title", d.Title},
		{"doc_type", d.DocType},
		{"department", d.Department},
		{"area", d.Area},
		{"revision", d.Revision},
		{"author", d.Author},
		{"department_supervisor", d.DepartmentSupervisor},
		{"status", d.Status.String()},
		{"review_status", d.ReviewStatus},
		{"approval_stage", d.ApprovalStage.String()},
		{"manager_approved", encodeBool(d.ManagerApproved)},
		{"manager_approved_date", encodeTimePtr(d.ManagerApprovedDate)},
		{"admin_approved", encodeBool(d.AdminApproved)},
		{"admin_approved_date", encodeTimePtr(d.AdminApprovedDate)},
		{"approved_by", encodeStringPtr(d.ApprovedBy)},
		{"reviewed_by", encodeStringPtr(d.ReviewedBy)},
		{"rejection_reason", encodeStringPtr(d.RejectionReason)},
		{"returned_date", encodeTimePtr(d.ReturnedDate)},
		{"deletion_reason", encodeStringPtr(d.DeletionReason)},
		{"deletion_requested_by", encodeStringPtr(d.DeletionRequestedBy)},
		{"deletion_requested_on", encodeTimePtr(d.DeletionRequestedOn)},
		{"is_archived", encodeBool(d.IsArchived)},
		{"archived_on", encodeTimePtr(d.ArchivedOn)},
		{"effective_date", encodeTimePtr(d.EffectiveDate)},
		{"last_review_date", encodeTimePtr(d.LastReviewDate)},
	}
}

// StructuredFields returns the tracked property set of a structured SOP.
func StructuredFields(d *domain.StructuredDocument) []Field {
	return []Field{
		{"sop_number", d.SopNumber},
		{"title", d.Title},
		{"revision", d.Revision},
		{"status", d.Status.String()},
		{"doc_register_id", encodeUUIDPtr(d.DocRegisterID)},
		{"is_synced_to_doc_register", encodeBool(d.IsSyncedToDocRegister)},
	}
}

// StepFields returns the tracked property set of a step.
func StepFields(s *domain.Step) []Field {
	return []Field{
		{"step_number", strconv.Itoa(s.StepNumber)},
		{"instructions", s.Instructions},
	}
}

func encodeBool(b bool) string {
	return strconv.FormatBool(b)
}

func encodeStringPtr(s *string) string {
	if s == nil {
		return NullValue
	}
	return *s
}

func encodeTimePtr(t *time.Time) string {
	if t == nil {
		return NullValue
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func encodeUUIDPtr(id *uuid.UUID) string {
	if id == nil {
		return NullValue
	}
	return id.String()
}
