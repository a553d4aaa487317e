package approval

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/millbrookqa/docregister/internal/domain"
)

var (
	_ documentRepo = &documentRepoMock{}
	_ historyRepo  = &historyRepoMock{}
	_ auditRepo    = &auditRepoMock{}
	_ txManager    = &txManagerMock{}
)

type documentRepoMock struct {
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.DocumentRecord, error)
	GetBySopNumberFunc func(ctx context.Context, sopNumber string) ([]*domain.DocumentRecord, error)
	CreateFunc         func(ctx context.Context, doc *domain.DocumentRecord) error
	UpdateFunc         func(ctx context.Context, doc *domain.DocumentRecord) error

	mu      sync.Mutex
	Updated []*domain.DocumentRecord
	Created []*domain.DocumentRecord
}

func (m *documentRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.DocumentRecord, error) {
	if m.GetByIDFunc == nil {
		panic("documentRepoMock.GetByIDFunc: method is nil but documentRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *documentRepoMock) GetBySopNumber(ctx context.Context, sopNumber string) ([]*domain.DocumentRecord, error) {
	if m.GetBySopNumberFunc == nil {
		panic("documentRepoMock.GetBySopNumberFunc: method is nil but documentRepo.GetBySopNumber was just called")
	}
	return m.GetBySopNumberFunc(ctx, sopNumber)
}

func (m *documentRepoMock) Create(ctx context.Context, doc *domain.DocumentRecord) error {
	m.mu.Lock()
	m.Created = append(m.Created, doc)
	m.mu.Unlock()
	if m.CreateFunc == nil {
		return nil
	}
	return m.CreateFunc(ctx, doc)
}

func (m *documentRepoMock) Update(ctx context.Context, doc *domain.DocumentRecord) error {
	m.mu.Lock()
	m.Updated = append(m.Updated, doc)
	m.mu.Unlock()
	if m.UpdateFunc == nil {
		return nil
	}
	return m.UpdateFunc(ctx, doc)
}

type historyRepoMock struct {
	AppendFunc       func(ctx context.Context, entries []domain.HistoryEntry) error
	ListByEntityFunc func(ctx context.Context, kind domain.EntityKind, entityID uuid.UUID) ([]domain.HistoryEntry, error)

	mu       sync.Mutex
	Appended [][]domain.HistoryEntry
}

func (m *historyRepoMock) Append(ctx context.Context, entries []domain.HistoryEntry) error {
	m.mu.Lock()
	m.Appended = append(m.Appended, entries)
	m.mu.Unlock()
	if m.AppendFunc == nil {
		return nil
	}
	return m.AppendFunc(ctx, entries)
}

func (m *historyRepoMock) ListByEntity(ctx context.Context, kind domain.EntityKind, entityID uuid.UUID) ([]domain.HistoryEntry, error) {
	if m.ListByEntityFunc == nil {
		panic("historyRepoMock.ListByEntityFunc: method is nil but historyRepo.ListByEntity was just called")
	}
	return m.ListByEntityFunc(ctx, kind, entityID)
}

// Entries returns every appended entry flattened in append order.
func (m *historyRepoMock) Entries() []domain.HistoryEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []domain.HistoryEntry
	for _, batch := range m.Appended {
		all = append(all, batch...)
	}
	return all
}

type auditRepoMock struct {
	AppendFunc          func(ctx context.Context, event *domain.AuditEvent) error
	ListBySopNumberFunc func(ctx context.Context, sopNumber string) ([]domain.AuditEvent, error)

	mu     sync.Mutex
	Events []domain.AuditEvent
}

func (m *auditRepoMock) Append(ctx context.Context, event *domain.AuditEvent) error {
	m.mu.Lock()
	m.Events = append(m.Events, *event)
	m.mu.Unlock()
	if m.AppendFunc == nil {
		return nil
	}
	return m.AppendFunc(ctx, event)
}

func (m *auditRepoMock) ListBySopNumber(ctx context.Context, sopNumber string) ([]domain.AuditEvent, error) {
	if m.ListBySopNumberFunc == nil {
		panic("auditRepoMock.ListBySopNumberFunc: method is nil but auditRepo.ListBySopNumber was just called")
	}
	return m.ListBySopNumberFunc(ctx, sopNumber)
}

// txManagerMock runs the callback directly; rollback behavior is covered by
// the repository tests against a real database.
type txManagerMock struct{}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
