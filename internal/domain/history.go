package domain

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntry records a single field-level change on a tracked entity.
// Entries are append-only: created once, never mutated or deleted.
type HistoryEntry struct {
	ID             uuid.UUID
	EntityKind     EntityKind
	EntityID       uuid.UUID
	PropertyName   string
	OldValue       string
	NewValue       string
	ChangedBy      string
	ChangedByEmail string
	ChangedAt      time.Time
}
