// Package history implements the change-history repositories using
// PostgreSQL. One table exists per tracked entity kind; all of them are
// append-only — rows are inserted, never updated or deleted.
package history

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/millbrookqa/docregister/internal/adapter/postgres"
	"github.com/millbrookqa/docregister/internal/domain"
)

// Repo provides history persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new history repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// tableFor maps an entity kind to its history table. Kinds are a closed
// enum, so the table name is never caller-supplied.
func tableFor(kind domain.EntityKind) (string, error) {
	switch kind {
	case domain.KindDocRegister:
		return "doc_register_history", nil
	case domain.KindStructuredDocument:
		return "structured_document_history", nil
	case domain.KindStep:
		return "step_history", nil
	default:
		return "", fmt.Errorf("history: unknown entity kind %q: %w", kind, domain.ErrValidation)
	}
}

// Append inserts the given entries in one batch. Entries for mixed kinds are
// rejected; callers record one entity per call.
func (r *Repo) Append(ctx context.Context, entries []domain.HistoryEntry) error {
	if len(entries) == 0 {
		return nil
	}

	kind := entries[0].EntityKind
	table, err := tableFor(kind)
	if err != nil {
		return err
	}

	insertSQL := `
INSERT INTO ` + table + ` (id, entity_id, property_name, old_value, new_value, changed_by, changed_by_email, changed_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, e := range entries {
		if e.EntityKind != kind {
			return fmt.Errorf("history: mixed entity kinds in one append: %w", domain.ErrValidation)
		}
		batch.Queue(insertSQL,
			e.ID, e.EntityID, e.PropertyName, e.OldValue, e.NewValue,
			e.ChangedBy, e.ChangedByEmail, e.ChangedAt,
		)
	}

	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	for range entries {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(err, "history_entry", entries[0].EntityID)
		}
	}

	return nil
}

// ListByEntity returns the change history of one entity, oldest first.
func (r *Repo) ListByEntity(ctx context.Context, kind domain.EntityKind, entityID uuid.UUID) ([]domain.HistoryEntry, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	builder := sq.Select("id", "entity_id", "property_name", "old_value", "new_value",
		"changed_by", "changed_by_email", "changed_at").
		From(table).
		Where(sq.Eq{"entity_id": entityID}).
		OrderBy("changed_at ASC", "id ASC").
		PlaceholderFormat(sq.Dollar)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build history query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list history for %s %s: %w", kind, entityID, err)
	}
	defer rows.Close()

	entries := make([]domain.HistoryEntry, 0)
	for rows.Next() {
		e := domain.HistoryEntry{EntityKind: kind}
		if err := rows.Scan(&e.ID, &e.EntityID, &e.PropertyName, &e.OldValue, &e.NewValue,
			&e.ChangedBy, &e.ChangedByEmail, &e.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history entries: %w", err)
	}

	return entries, nil
}
