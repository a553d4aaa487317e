// Package deleted implements the deleted-document snapshot repository using
// PostgreSQL. Snapshots are self-contained: listing and restore never touch
// the removed register row.
package deleted

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/millbrookqa/docregister/internal/adapter/postgres"
	"github.com/millbrookqa/docregister/internal/domain"
)

// Repo provides deleted-record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new deleted-record repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const columns = `id, original_doc_register_id, sop_number, unique_number, title,
	doc_type, department, area, revision,
	file_name, original_file, content_type, file_size, storage_path,
	author, user_email, department_supervisor, supervisor_email,
	effective_date, last_review_date, upload_date,
	reason, deleted_by, deleted_on`

var columnList = []string{
	"id", "original_doc_register_id", "sop_number", "unique_number", "title",
	"doc_type", "department", "area", "revision",
	"file_name", "original_file", "content_type", "file_size", "storage_path",
	"author", "user_email", "department_supervisor", "supervisor_email",
	"effective_date", "last_review_date", "upload_date",
	"reason", "deleted_by", "deleted_on",
}

const getByIDSQL = `SELECT ` + columns + ` FROM deleted_documents WHERE id = $1`

const getByOriginalIDSQL = `SELECT ` + columns + ` FROM deleted_documents WHERE original_doc_register_id = $1`

const insertSQL = `
INSERT INTO deleted_documents (` + columns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24)`

const deleteSQL = `DELETE FROM deleted_documents WHERE id = $1`

// Create inserts a deletion snapshot.
func (r *Repo) Create(ctx context.Context, rec *domain.DeletedRecord) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, insertSQL,
		rec.ID, rec.OriginalDocRegisterID, rec.SopNumber, rec.UniqueNumber, rec.Title,
		rec.DocType, rec.Department, rec.Area, rec.Revision,
		rec.FileName, rec.OriginalFile, rec.ContentType, rec.FileSize, rec.StoragePath,
		rec.Author, rec.UserEmail, rec.DepartmentSupervisor, rec.SupervisorEmail,
		rec.EffectiveDate, rec.LastReviewDate, rec.UploadDate,
		rec.Reason, rec.DeletedBy, rec.DeletedOn,
	)
	if err != nil {
		return postgres.MapError(err, "deleted_record", rec.ID)
	}

	return nil
}

// GetByID returns one deletion snapshot.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.DeletedRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rec, err := scanRow(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "deleted_record", id)
	}

	return rec, nil
}

// GetByOriginalID returns the snapshot taken from the given register row.
func (r *Repo) GetByOriginalID(ctx context.Context, originalID uuid.UUID) (*domain.DeletedRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rec, err := scanRow(querier.QueryRow(ctx, getByOriginalIDSQL, originalID))
	if err != nil {
		return nil, postgres.MapError(err, "deleted_record", originalID)
	}

	return rec, nil
}

// Delete removes a snapshot (restore consumed it, or a permanent purge).
// Returns domain.ErrNotFound if it is already gone.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "deleted_record", id)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deleted_record %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteOlderThan purges snapshots whose deletion predates the threshold.
// Returns how many rows were removed.
func (r *Repo) DeleteOlderThan(ctx context.Context, threshold time.Time) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, `DELETE FROM deleted_documents WHERE deleted_on < $1`, threshold)
	if err != nil {
		return 0, fmt.Errorf("purge old deleted records: %w", err)
	}

	return tag.RowsAffected(), nil
}

// List returns deletion snapshots, most recent deletion first.
func (r *Repo) List(ctx context.Context, filter domain.DeletedFilter) ([]domain.DeletedRecord, error) {
	builder := sq.Select(columnList...).
		From("deleted_documents").
		OrderBy("deleted_on DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.Department != "" {
		builder = builder.Where(sq.Eq{"department": filter.Department})
	}
	if filter.DeletedBy != "" {
		builder = builder.Where(sq.Eq{"deleted_by": filter.DeletedBy})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build deleted list query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list deleted records: %w", err)
	}
	defer rows.Close()

	records := make([]domain.DeletedRecord, 0)
	for rows.Next() {
		rec, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deleted record: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deleted records: %w", err)
	}

	return records, nil
}

func scanRow(row pgx.Row) (*domain.DeletedRecord, error) {
	var rec domain.DeletedRecord
	err := row.Scan(
		&rec.ID, &rec.OriginalDocRegisterID, &rec.SopNumber, &rec.UniqueNumber, &rec.Title,
		&rec.DocType, &rec.Department, &rec.Area, &rec.Revision,
		&rec.FileName, &rec.OriginalFile, &rec.ContentType, &rec.FileSize, &rec.StoragePath,
		&rec.Author, &rec.UserEmail, &rec.DepartmentSupervisor, &rec.SupervisorEmail,
		&rec.EffectiveDate, &rec.LastReviewDate, &rec.UploadDate,
		&rec.Reason, &rec.DeletedBy, &rec.DeletedOn,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
