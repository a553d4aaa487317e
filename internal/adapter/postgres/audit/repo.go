// Package audit implements the audit-event repository using PostgreSQL.
// The table is append-only: one immutable event per lifecycle transition.
// Ordering is performed_at with the seq column breaking ties in insertion
// order.
package audit

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/millbrookqa/docregister/internal/adapter/postgres"
	"github.com/millbrookqa/docregister/internal/domain"
)

// Repo provides audit-event persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const insertSQL = `
INSERT INTO audit_events (id, sop_number, action, performed_by, performed_at, details, document_title, doc_register_id)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING seq`

// Append inserts one audit event and fills in its insertion sequence.
func (r *Repo) Append(ctx context.Context, event *domain.AuditEvent) error {
	if !event.Action.IsValid() {
		return fmt.Errorf("audit event: unknown action %q: %w", event.Action, domain.ErrValidation)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	err := querier.QueryRow(ctx, insertSQL,
		event.ID, event.SopNumber, event.Action.String(), event.PerformedBy,
		event.PerformedAt, event.Details, event.DocumentTitle, event.DocRegisterID,
	).Scan(&event.Seq)
	if err != nil {
		return postgres.MapError(err, "audit_event", event.ID)
	}

	return nil
}

// ListBySopNumber returns the full audit trail for a SOP number, ordered by
// performed_at with seq breaking ties.
func (r *Repo) ListBySopNumber(ctx context.Context, sopNumber string) ([]domain.AuditEvent, error) {
	builder := sq.Select("id", "seq", "sop_number", "action", "performed_by",
		"performed_at", "details", "document_title", "doc_register_id").
		From("audit_events").
		Where(sq.Eq{"sop_number": sopNumber}).
		OrderBy("performed_at ASC", "seq ASC").
		PlaceholderFormat(sq.Dollar)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build audit query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit events for %s: %w", sopNumber, err)
	}
	defer rows.Close()

	events := make([]domain.AuditEvent, 0)
	for rows.Next() {
		var (
			e      domain.AuditEvent
			action string
		)
		if err := rows.Scan(&e.ID, &e.Seq, &e.SopNumber, &action, &e.PerformedBy,
			&e.PerformedAt, &e.Details, &e.DocumentTitle, &e.DocRegisterID); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.Action = domain.AuditAction(action)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}

	return events, nil
}
