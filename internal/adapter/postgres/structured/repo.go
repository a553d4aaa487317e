// Package structured implements the authored-SOP repository using
// PostgreSQL. A structured document owns its steps; reads always return the
// document with steps attached, ordered by step_number.
package structured

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/millbrookqa/docregister/internal/adapter/postgres"
	"github.com/millbrookqa/docregister/internal/domain"
)

// Repo provides structured-document persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new structured-document repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const docColumns = `id, sop_number, title, revision, status, doc_register_id,
	is_synced_to_doc_register, synced_date, row_version, created_at, updated_at`

const getByIDSQL = `SELECT ` + docColumns + ` FROM structured_documents WHERE id = $1`

const getByRegisterIDSQL = `SELECT ` + docColumns + ` FROM structured_documents WHERE doc_register_id = $1`

const insertSQL = `
INSERT INTO structured_documents (` + docColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`

const updateSQL = `
UPDATE structured_documents SET
	sop_number = $3, title = $4, revision = $5, status = $6, doc_register_id = $7,
	is_synced_to_doc_register = $8, synced_date = $9,
	row_version = row_version + 1, updated_at = $10
WHERE id = $1 AND row_version = $2`

const existsSQL = `SELECT EXISTS (SELECT 1 FROM structured_documents WHERE id = $1)`

const stepsByDocSQL = `
SELECT id, document_id, step_number, instructions, created_at, updated_at
FROM structured_steps
WHERE document_id = $1
ORDER BY step_number ASC`

const insertStepSQL = `
INSERT INTO structured_steps (id, document_id, step_number, instructions, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6)`

const updateStepSQL = `
UPDATE structured_steps SET step_number = $2, instructions = $3, updated_at = $4
WHERE id = $1`

const deleteStepSQL = `DELETE FROM structured_steps WHERE id = $1`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a structured document with its steps.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.StructuredDocument, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	doc, err := r.getDoc(ctx, getByIDSQL, id)
	if err != nil {
		return nil, postgres.MapError(err, "structured_document", id)
	}

	rows, err := querier.Query(ctx, stepsByDocSQL, doc.ID)
	if err != nil {
		return nil, postgres.MapError(err, "structured_document", id)
	}
	defer rows.Close()

	doc.Steps, err = scanSteps(rows)
	if err != nil {
		return nil, postgres.MapError(err, "structured_document", id)
	}

	return doc, nil
}

// GetByRegisterID returns the structured document linked to the given
// register entry, without steps.
func (r *Repo) GetByRegisterID(ctx context.Context, registerID uuid.UUID) (*domain.StructuredDocument, error) {
	doc, err := r.getDoc(ctx, getByRegisterIDSQL, registerID)
	if err != nil {
		return nil, postgres.MapError(err, "structured_document", registerID)
	}
	return doc, nil
}

func (r *Repo) getDoc(ctx context.Context, sql string, arg any) (*domain.StructuredDocument, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		d      domain.StructuredDocument
		status string
	)
	err := querier.QueryRow(ctx, sql, arg).Scan(
		&d.ID, &d.SopNumber, &d.Title, &d.Revision, &status, &d.DocRegisterID,
		&d.IsSyncedToDocRegister, &d.SyncedDate, &d.RowVersion, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.Status = domain.DocumentStatus(status)

	return &d, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new structured document. Steps are inserted separately
// via AddStep.
func (r *Repo) Create(ctx context.Context, doc *domain.StructuredDocument) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, insertSQL,
		doc.ID, doc.SopNumber, doc.Title, doc.Revision, doc.Status.String(),
		doc.DocRegisterID, doc.IsSyncedToDocRegister, doc.SyncedDate,
		doc.RowVersion, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "structured_document", doc.ID)
	}

	return nil
}

// Update persists doc guarded by its row_version.
// Returns domain.ErrConflict on a version mismatch, domain.ErrNotFound when
// the row is gone. Bumps the in-memory RowVersion on success.
func (r *Repo) Update(ctx context.Context, doc *domain.StructuredDocument) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateSQL,
		doc.ID, doc.RowVersion,
		doc.SopNumber, doc.Title, doc.Revision, doc.Status.String(), doc.DocRegisterID,
		doc.IsSyncedToDocRegister, doc.SyncedDate, doc.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "structured_document", doc.ID)
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		if err := querier.QueryRow(ctx, existsSQL, doc.ID).Scan(&exists); err != nil {
			return postgres.MapError(err, "structured_document", doc.ID)
		}
		if exists {
			return fmt.Errorf("structured_document %s: %w", doc.ID, domain.ErrConflict)
		}
		return fmt.Errorf("structured_document %s: %w", doc.ID, domain.ErrNotFound)
	}

	doc.RowVersion++

	return nil
}

// AddStep inserts a step. A duplicate step_number within the parent fails
// with domain.ErrAlreadyExists via the unique constraint.
func (r *Repo) AddStep(ctx context.Context, step *domain.Step) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, insertStepSQL,
		step.ID, step.DocumentID, step.StepNumber, step.Instructions,
		step.CreatedAt, step.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "step", step.ID)
	}

	return nil
}

// UpdateStep rewrites a step's number and instructions.
func (r *Repo) UpdateStep(ctx context.Context, step *domain.Step) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateStepSQL,
		step.ID, step.StepNumber, step.Instructions, step.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "step", step.ID)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("step %s: %w", step.ID, domain.ErrNotFound)
	}

	return nil
}

// RemoveStep deletes a step by ID.
func (r *Repo) RemoveStep(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteStepSQL, id)
	if err != nil {
		return postgres.MapError(err, "step", id)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("step %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Scanning helpers
// ---------------------------------------------------------------------------

func scanSteps(rows pgx.Rows) ([]domain.Step, error) {
	steps := make([]domain.Step, 0)
	for rows.Next() {
		var s domain.Step
		if err := rows.Scan(&s.ID, &s.DocumentID, &s.StepNumber, &s.Instructions,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return steps, nil
}
