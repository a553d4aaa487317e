package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditEvent is one immutable lifecycle-transition record. Events are
// ordered by PerformedAt with Seq breaking ties in insertion order.
//
// DocRegisterID is nullable: events outlive the register row, and a deleted
// document keeps its trail after the row is gone.
type AuditEvent struct {
	ID            uuid.UUID
	Seq           int64
	SopNumber     string
	Action        AuditAction
	PerformedBy   string
	PerformedAt   time.Time
	Details       *string
	DocumentTitle *string
	DocRegisterID *uuid.UUID
}
