package history_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/millbrookqa/docregister/internal/adapter/postgres/history"
	"github.com/millbrookqa/docregister/internal/adapter/postgres/testhelper"
	"github.com/millbrookqa/docregister/internal/domain"
)

func newRepo(t *testing.T) *history.Repo {
	t.Helper()
	return history.New(testhelper.SetupTestDB(t))
}

func buildEntry(kind domain.EntityKind, entityID uuid.UUID, property, oldV, newV string, at time.Time) domain.HistoryEntry {
	return domain.HistoryEntry{
		ID:             uuid.New(),
		EntityKind:     kind,
		EntityID:       entityID,
		PropertyName:   property,
		OldValue:       oldV,
		NewValue:       newV,
		ChangedBy:      "Dana Ferris",
		ChangedByEmail: "dana@example.com",
		ChangedAt:      at,
	}
}

func TestRepo_AppendAndList(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	entityID := uuid.New()
	at := time.Now().UTC().Truncate(time.Microsecond)

	entries := []domain.HistoryEntry{
		buildEntry(domain.KindDocRegister, entityID, "status", "DRAFT", "PENDING_APPROVAL", at),
		buildEntry(domain.KindDocRegister, entityID, "review_status", "", "AWAITING_MANAGER", at),
	}
	if err := repo.Append(ctx, entries); err != nil {
		t.Fatalf("Append: unexpected error: %v", err)
	}

	got, err := repo.ListByEntity(ctx, domain.KindDocRegister, entityID)
	if err != nil {
		t.Fatalf("ListByEntity: unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("entries: got %d, want 2", len(got))
	}
	if got[0].PropertyName != "status" && got[1].PropertyName != "status" {
		t.Error("status entry missing")
	}
	for _, e := range got {
		if e.EntityKind != domain.KindDocRegister {
			t.Errorf("entity kind: got %s", e.EntityKind)
		}
		if !e.ChangedAt.Equal(at) {
			t.Errorf("changed_at: got %v, want %v", e.ChangedAt, at)
		}
	}
}

func TestRepo_Append_EmptyIsNoop(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)

	if err := repo.Append(context.Background(), nil); err != nil {
		t.Fatalf("empty append: unexpected error: %v", err)
	}
}

func TestRepo_Append_MixedKindsRejected(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)

	at := time.Now().UTC()
	entries := []domain.HistoryEntry{
		buildEntry(domain.KindDocRegister, uuid.New(), "status", "a", "b", at),
		buildEntry(domain.KindStep, uuid.New(), "instructions", "a", "b", at),
	}

	err := repo.Append(context.Background(), entries)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
}

func TestRepo_ListByEntity_OrderedOldestFirst(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	entityID := uuid.New()
	base := time.Now().UTC().Truncate(time.Microsecond)

	// Inserted newest first; reads must come back oldest first.
	for i := 2; i >= 0; i-- {
		entry := buildEntry(domain.KindStep, entityID, "instructions",
			"", "rev", base.Add(time.Duration(i)*time.Second))
		if err := repo.Append(ctx, []domain.HistoryEntry{entry}); err != nil {
			t.Fatalf("Append: unexpected error: %v", err)
		}
	}

	got, err := repo.ListByEntity(ctx, domain.KindStep, entityID)
	if err != nil {
		t.Fatalf("ListByEntity: unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("entries: got %d, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].ChangedAt.Before(got[i-1].ChangedAt) {
			t.Errorf("order violated at position %d", i)
		}
	}
}

func TestRepo_KindsAreIsolated(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	entityID := uuid.New()
	at := time.Now().UTC().Truncate(time.Microsecond)

	entry := buildEntry(domain.KindStructuredDocument, entityID, "title", "a", "b", at)
	if err := repo.Append(ctx, []domain.HistoryEntry{entry}); err != nil {
		t.Fatalf("Append: unexpected error: %v", err)
	}

	got, err := repo.ListByEntity(ctx, domain.KindDocRegister, entityID)
	if err != nil {
		t.Fatalf("ListByEntity: unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("register history leaked %d structured entries", len(got))
	}
}
