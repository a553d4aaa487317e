package approval_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/millbrookqa/docregister/internal/adapter/postgres"
	auditrepo "github.com/millbrookqa/docregister/internal/adapter/postgres/audit"
	documentrepo "github.com/millbrookqa/docregister/internal/adapter/postgres/document"
	historyrepo "github.com/millbrookqa/docregister/internal/adapter/postgres/history"
	"github.com/millbrookqa/docregister/internal/adapter/postgres/testhelper"
	"github.com/millbrookqa/docregister/internal/domain"
	"github.com/millbrookqa/docregister/internal/service/approval"
	"github.com/millbrookqa/docregister/pkg/ctxutil"
)

// Two admins racing to approve the same record: the row version lets exactly
// one transition commit, and the loser's history and audit writes roll back
// with it.
func TestApproveAsAdmin_ConcurrentSingleWinner(t *testing.T) {
	t.Parallel()

	pool := testhelper.SetupTestDB(t)
	documents := documentrepo.New(pool)
	svc := approval.NewService(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		documents,
		historyrepo.New(pool),
		auditrepo.New(pool),
		postgres.NewTxManager(pool),
		clockwork.NewRealClock(),
	)

	now := time.Now().UTC().Truncate(time.Microsecond)
	managerApprovedAt := now.Add(-time.Hour)
	doc := &domain.DocumentRecord{
		ID:                  uuid.New(),
		SopNumber:           "SOP-" + uuid.NewString()[:8],
		Title:               "Autoclave Operation",
		DocType:             "SOP",
		Department:          "Sterilization",
		Revision:            "A",
		FileName:            "sop.pdf",
		FileSize:            2048,
		Status:              domain.StatusManagerApproved,
		ApprovalStage:       domain.StageManager,
		ManagerApproved:     true,
		ManagerApprovedDate: &managerApprovedAt,
		UploadDate:          now,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := documents.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	ctx := ctxutil.WithActor(context.Background(), domain.Actor{Name: "Dana Ferris", Email: "dana@example.com"})

	start := make(chan struct{})
	results := make(chan error, 2)
	var wg sync.WaitGroup
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.ApproveAsAdmin(ctx, doc.ID)
			results <- err
		}()
	}
	close(start)
	wg.Wait()
	close(results)

	var wins, losses int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrInvalidTransition):
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || losses != 1 {
		t.Fatalf("got %d wins and %d losses, want exactly one of each", wins, losses)
	}

	got, err := documents.GetByID(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if got.Status != domain.StatusActive || !got.AdminApproved {
		t.Errorf("final state: got %s, want ACTIVE with admin approval", got.Status)
	}

	events, err := svc.AuditTrail(context.Background(), doc.SopNumber)
	if err != nil {
		t.Fatalf("AuditTrail: unexpected error: %v", err)
	}
	var adminApprovals int
	for _, e := range events {
		if e.Action == domain.ActionAdminApproved {
			adminApprovals++
		}
	}
	if adminApprovals != 1 {
		t.Errorf("ADMIN_APPROVED events: got %d, want 1 (loser's write must roll back)", adminApprovals)
	}
}
