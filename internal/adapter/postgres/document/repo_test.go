package document_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/millbrookqa/docregister/internal/adapter/postgres/document"
	"github.com/millbrookqa/docregister/internal/adapter/postgres/testhelper"
	"github.com/millbrookqa/docregister/internal/domain"
)

func newRepo(t *testing.T) *document.Repo {
	t.Helper()
	return document.New(testhelper.SetupTestDB(t))
}

// buildDoc creates a register entry with a unique SOP number.
func buildDoc(t *testing.T) *domain.DocumentRecord {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.DocumentRecord{
		ID:            uuid.New(),
		SopNumber:     "SOP-" + uuid.NewString()[:8],
		Title:         "Autoclave Operation",
		DocType:       "SOP",
		Department:    "Sterilization",
		Area:          "Building 2",
		Revision:      "A",
		FileName:      "sop.pdf",
		FileSize:      2048,
		Status:        domain.StatusDraft,
		ApprovalStage: domain.StageNone,
		UploadDate:    now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestRepo_CreateAndGet(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	doc := buildDoc(t)
	if err := repo.Create(ctx, doc); err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	got, err := repo.GetByID(ctx, doc.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}

	if got.SopNumber != doc.SopNumber {
		t.Errorf("SopNumber mismatch: got %s, want %s", got.SopNumber, doc.SopNumber)
	}
	if got.Status != domain.StatusDraft {
		t.Errorf("Status mismatch: got %s, want DRAFT", got.Status)
	}
	if got.RowVersion != 0 {
		t.Errorf("RowVersion: got %d, want 0", got.RowVersion)
	}
	if !got.UploadDate.Equal(doc.UploadDate) {
		t.Errorf("UploadDate mismatch: got %v, want %v", got.UploadDate, doc.UploadDate)
	}
}

func TestRepo_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)

	_, err := repo.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestRepo_Update_BumpsRowVersion(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	doc := buildDoc(t)
	if err := repo.Create(ctx, doc); err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	doc.Status = domain.StatusPendingApproval
	if err := repo.Update(ctx, doc); err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}

	if doc.RowVersion != 1 {
		t.Errorf("in-memory RowVersion: got %d, want 1", doc.RowVersion)
	}

	got, err := repo.GetByID(ctx, doc.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if got.RowVersion != 1 {
		t.Errorf("stored RowVersion: got %d, want 1", got.RowVersion)
	}
	if got.Status != domain.StatusPendingApproval {
		t.Errorf("Status: got %s, want PENDING_APPROVAL", got.Status)
	}
}

func TestRepo_Update_StaleVersionConflicts(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	doc := buildDoc(t)
	if err := repo.Create(ctx, doc); err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	// Two readers load the same version; the first write wins.
	stale := doc.Clone()

	doc.Status = domain.StatusPendingApproval
	if err := repo.Update(ctx, doc); err != nil {
		t.Fatalf("first Update: unexpected error: %v", err)
	}

	stale.Title = "Edited concurrently"
	err := repo.Update(ctx, stale)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("stale Update: got %v, want ErrConflict", err)
	}
}

func TestRepo_Update_MissingRowIsNotFound(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)

	doc := buildDoc(t)
	err := repo.Update(context.Background(), doc)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestRepo_Delete(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	doc := buildDoc(t)
	if err := repo.Create(ctx, doc); err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if err := repo.Delete(ctx, doc.ID); err != nil {
		t.Fatalf("Delete: unexpected error: %v", err)
	}

	if _, err := repo.GetByID(ctx, doc.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("after delete: got %v, want ErrNotFound", err)
	}

	if err := repo.Delete(ctx, doc.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: got %v, want ErrNotFound", err)
	}
}

func TestRepo_List_FiltersByDepartmentAndStatus(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	dept := "QC-" + uuid.NewString()[:8]

	a := buildDoc(t)
	a.Department = dept
	b := buildDoc(t)
	b.Department = dept
	b.Status = domain.StatusActive
	c := buildDoc(t)

	for _, d := range []*domain.DocumentRecord{a, b, c} {
		if err := repo.Create(ctx, d); err != nil {
			t.Fatalf("Create: unexpected error: %v", err)
		}
	}

	got, err := repo.List(ctx, domain.DocumentFilter{Department: dept})
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("department filter: got %d entries, want 2", len(got))
	}

	got, err = repo.List(ctx, domain.DocumentFilter{Department: dept, Status: domain.StatusActive})
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != b.ID {
		t.Fatalf("status filter: got %d entries, want exactly the ACTIVE one", len(got))
	}
}
