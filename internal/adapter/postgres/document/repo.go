// Package document implements the register-entry repository using PostgreSQL.
// Updates are guarded by an optimistic row_version token so at most one
// concurrent transition per document can succeed.
package document

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

// Repo provides register-entry persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new document repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const docColumns = `id, sop_number, unique_number, title, doc_type, department, area, revision,
	file_name, original_file, content_type, file_size, storage_path,
	author, user_email, department_supervisor, supervisor_email,
	status, review_status, approval_stage,
	manager_approved, manager_approved_date, admin_approved, admin_approved_date,
	approved_by, reviewed_by, rejection_reason, returned_date,
	deletion_reason, deletion_requested_by, deletion_requested_on,
	is_archived, archived_on, effective_date, last_review_date, upload_date,
	row_version, created_at, updated_at`

var docColumnList = []string{
	"id", "sop_number", "unique_number", "title", "doc_type", "department", "area", "revision",
	"file_name", "original_file", "content_type", "file_size", "storage_path",
	"author", "user_email", "department_supervisor", "supervisor_email",
	"status", "review_status", "approval_stage",
	"manager_approved", "manager_approved_date", "admin_approved", "admin_approved_date",
	"approved_by", "reviewed_by", "rejection_reason", "returned_date",
	"deletion_reason", "deletion_requested_by", "deletion_requested_on",
	"is_archived", "archived_on", "effective_date", "last_review_date", "upload_date",
	"row_version", "created_at", "updated_at",
}

const getByIDSQL = `SELECT ` + docColumns + ` FROM doc_register WHERE id = $1`

const getBySopNumberSQL = `SELECT ` + docColumns + ` FROM doc_register WHERE sop_number = $1 ORDER BY upload_date DESC`

const insertSQL = `
INSERT INTO doc_register (` + docColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,
        $21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32,$33,$34,$35,$36,$37,$38,$39)`

const updateSQL = `
UPDATE doc_register SET
	sop_number = $3, unique_number = $4, title = $5, doc_type = $6, department = $7,
	area = $8, revision = $9, file_name = $10, original_file = $11, content_type = $12,
	file_size = $13, storage_path = $14, author = $15, user_email = $16,
	department_supervisor = $17, supervisor_email = $18, status = $19, review_status = $20,
	approval_stage = $21, manager_approved = $22, manager_approved_date = $23,
	admin_approved = $24, admin_approved_date = $25, approved_by = $26, reviewed_by = $27,
	rejection_reason = $28, returned_date = $29, deletion_reason = $30,
	deletion_requested_by = $31, deletion_requested_on = $32, is_archived = $33,
	archived_on = $34, effective_date = $35, last_review_date = $36, upload_date = $37,
	row_version = row_version + 1, updated_at = $38
WHERE id = $1 AND row_version = $2`

const deleteSQL = `DELETE FROM doc_register WHERE id = $1`

const existsSQL = `SELECT EXISTS (SELECT 1 FROM doc_register WHERE id = $1)`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a register entry by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.DocumentRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getByIDSQL, id)
	if err != nil {
		return nil, postgres.MapError(err, "document", id)
	}
	defer rows.Close()

	doc, err := scanOne(rows)
	if err != nil {
		return nil, postgres.MapError(err, "document", id)
	}

	return doc, nil
}

// GetBySopNumber returns all register entries carrying the given SOP number,
// newest upload first.
func (r *Repo) GetBySopNumber(ctx context.Context, sopNumber string) ([]*domain.DocumentRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getBySopNumberSQL, sopNumber)
	if err != nil {
		return nil, fmt.Errorf("get documents by sop_number: %w", err)
	}
	defer rows.Close()

	docs, err := scanMany(rows)
	if err != nil {
		return nil, fmt.Errorf("get documents by sop_number: %w", err)
	}

	return docs, nil
}

// List returns register entries matching the filter, newest upload first.
func (r *Repo) List(ctx context.Context, filter domain.DocumentFilter) ([]*domain.DocumentRecord, error) {
	builder := sq.Select(docColumnList...).
		From("doc_register").
		OrderBy("upload_date DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.Department != "" {
		builder = builder.Where(sq.Eq{"department": filter.Department})
	}
	if filter.DocType != "" {
		builder = builder.Where(sq.Eq{"doc_type": filter.DocType})
	}
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status.String()})
	}
	if filter.Archived != nil {
		builder = builder.Where(sq.Eq{"is_archived": *filter.Archived})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build document list query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs, err := scanMany(rows)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	return docs, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new register entry.
func (r *Repo) Create(ctx context.Context, doc *domain.DocumentRecord) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, insertSQL, insertArgs(doc)...)
	if err != nil {
		return postgres.MapError(err, "document", doc.ID)
	}

	return nil
}

// Update persists doc guarded by the row_version it was read with.
// Returns domain.ErrConflict when the row exists under a different version
// and domain.ErrNotFound when it does not exist at all. On success the
// in-memory RowVersion is bumped to match the stored row.
func (r *Repo) Update(ctx context.Context, doc *domain.DocumentRecord) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateSQL, updateArgs(doc)...)
	if err != nil {
		return postgres.MapError(err, "document", doc.ID)
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		if err := querier.QueryRow(ctx, existsSQL, doc.ID).Scan(&exists); err != nil {
			return postgres.MapError(err, "document", doc.ID)
		}
		if exists {
			return fmt.Errorf("document %s: %w", doc.ID, domain.ErrConflict)
		}
		return fmt.Errorf("document %s: %w", doc.ID, domain.ErrNotFound)
	}

	doc.RowVersion++

	return nil
}

// Delete removes a register entry by ID.
// Returns domain.ErrNotFound if the row does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "document", id)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Argument / scanning helpers
// ---------------------------------------------------------------------------

func insertArgs(d *domain.DocumentRecord) []any {
	return []any{
		d.ID, d.SopNumber, d.UniqueNumber, d.Title, d.DocType, d.Department, d.Area, d.Revision,
		d.FileName, d.OriginalFile, d.ContentType, d.FileSize, d.StoragePath,
		d.Author, d.UserEmail, d.DepartmentSupervisor, d.SupervisorEmail,
		d.Status.String(), d.ReviewStatus, d.ApprovalStage.String(),
		d.ManagerApproved, d.ManagerApprovedDate, d.AdminApproved, d.AdminApprovedDate,
		d.ApprovedBy, d.ReviewedBy, d.RejectionReason, d.ReturnedDate,
		d.DeletionReason, d.DeletionRequestedBy, d.DeletionRequestedOn,
		d.IsArchived, d.ArchivedOn, d.EffectiveDate, d.LastReviewDate, d.UploadDate,
		d.RowVersion, d.CreatedAt, d.UpdatedAt,
	}
}

func updateArgs(d *domain.DocumentRecord) []any {
	return []any{
		d.ID, d.RowVersion,
		d.SopNumber, d.UniqueNumber, d.Title, d.DocType, d.Department, d.Area, d.Revision,
		d.FileName, d.OriginalFile, d.ContentType, d.FileSize, d.StoragePath,
		d.Author, d.UserEmail, d.DepartmentSupervisor, d.SupervisorEmail,
		d.Status.String(), d.ReviewStatus, d.ApprovalStage.String(),
		d.ManagerApproved, d.ManagerApprovedDate, d.AdminApproved, d.AdminApprovedDate,
		d.ApprovedBy, d.ReviewedBy, d.RejectionReason, d.ReturnedDate,
		d.DeletionReason, d.DeletionRequestedBy, d.DeletionRequestedOn,
		d.IsArchived, d.ArchivedOn, d.EffectiveDate, d.LastReviewDate, d.UploadDate,
		d.UpdatedAt,
	}
}

func scanOne(rows pgx.Rows) (*domain.DocumentRecord, error) {
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, pgx.ErrNoRows
	}
	return scanRow(rows)
}

func scanMany(rows pgx.Rows) ([]*domain.DocumentRecord, error) {
	docs := make([]*domain.DocumentRecord, 0)
	for rows.Next() {
		doc, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func scanRow(rows pgx.Rows) (*domain.DocumentRecord, error) {
	var (
		d                     domain.DocumentRecord
		status, approvalStage string
	)

	err := rows.Scan(
		&d.ID, &d.SopNumber, &d.UniqueNumber, &d.Title, &d.DocType, &d.Department, &d.Area, &d.Revision,
		&d.FileName, &d.OriginalFile, &d.ContentType, &d.FileSize, &d.StoragePath,
		&d.Author, &d.UserEmail, &d.DepartmentSupervisor, &d.SupervisorEmail,
		&status, &d.ReviewStatus, &approvalStage,
		&d.ManagerApproved, &d.ManagerApprovedDate, &d.AdminApproved, &d.AdminApprovedDate,
		&d.ApprovedBy, &d.ReviewedBy, &d.RejectionReason, &d.ReturnedDate,
		&d.DeletionReason, &d.DeletionRequestedBy, &d.DeletionRequestedOn,
		&d.IsArchived, &d.ArchivedOn, &d.EffectiveDate, &d.LastReviewDate, &d.UploadDate,
		&d.RowVersion, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	d.Status = domain.DocumentStatus(status)
	d.ApprovalStage = domain.ApprovalStage(approvalStage)

	return &d, nil
}
