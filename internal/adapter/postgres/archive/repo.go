// Package archive implements the archived-document repository using
// PostgreSQL. Archive rows are terminal and read-only: Create and reads
// only, no update or delete path exists.
package archive

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

// Repo provides archive-record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new archive repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const columns = `id, source_table, source_id, sop_number, unique_number, title,
	doc_type, department, area, revision, status,
	file_name, content_type, file_size, storage_path,
	author, user_email, effective_date, upload_date,
	archive_reason, archived_by, archived_on`

var columnList = []string{
	"id", "source_table", "source_id", "sop_number", "unique_number", "title",
	"doc_type", "department", "area", "revision", "status",
	"file_name", "content_type", "file_size", "storage_path",
	"author", "user_email", "effective_date", "upload_date",
	"archive_reason", "archived_by", "archived_on",
}

const insertSQL = `
INSERT INTO archived_documents (` + columns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)`

const getByIDSQL = `SELECT ` + columns + ` FROM archived_documents WHERE id = $1`

// Create inserts an archive snapshot.
func (r *Repo) Create(ctx context.Context, rec *domain.ArchiveRecord) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, insertSQL,
		rec.ID, rec.SourceTable, rec.SourceID, rec.SopNumber, rec.UniqueNumber, rec.Title,
		rec.DocType, rec.Department, rec.Area, rec.Revision, rec.Status.String(),
		rec.FileName, rec.ContentType, rec.FileSize, rec.StoragePath,
		rec.Author, rec.UserEmail, rec.EffectiveDate, rec.UploadDate,
		rec.ArchiveReason, rec.ArchivedBy, rec.ArchivedOn,
	)
	if err != nil {
		return postgres.MapError(err, "archive_record", rec.ID)
	}

	return nil
}

// GetByID returns one archive snapshot.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ArchiveRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rec, err := scanRow(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "archive_record", id)
	}

	return rec, nil
}

// List returns archive snapshots, most recent first.
func (r *Repo) List(ctx context.Context, filter domain.ArchiveFilter) ([]domain.ArchiveRecord, error) {
	builder := sq.Select(columnList...).
		From("archived_documents").
		OrderBy("archived_on DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.SopNumber != "" {
		builder = builder.Where(sq.Eq{"sop_number": filter.SopNumber})
	}
	if filter.Department != "" {
		builder = builder.Where(sq.Eq{"department": filter.Department})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build archive list query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list archive records: %w", err)
	}
	defer rows.Close()

	records := make([]domain.ArchiveRecord, 0)
	for rows.Next() {
		rec, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan archive record: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate archive records: %w", err)
	}

	return records, nil
}

func scanRow(row pgx.Row) (*domain.ArchiveRecord, error) {
	var (
		rec    domain.ArchiveRecord
		status string
	)
	err := row.Scan(
		&rec.ID, &rec.SourceTable, &rec.SourceID, &rec.SopNumber, &rec.UniqueNumber, &rec.Title,
		&rec.DocType, &rec.Department, &rec.Area, &rec.Revision, &status,
		&rec.FileName, &rec.ContentType, &rec.FileSize, &rec.StoragePath,
		&rec.Author, &rec.UserEmail, &rec.EffectiveDate, &rec.UploadDate,
		&rec.ArchiveReason, &rec.ArchivedBy, &rec.ArchivedOn,
	)
	if err != nil {
		return nil, err
	}
	rec.Status = domain.DocumentStatus(status)

	return &rec, nil
}
