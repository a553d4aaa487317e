package lifecycle

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/millbrookqa/docregister/internal/domain"
)

var (
	_ documentRepo = &documentRepoMock{}
	_ deletedRepo  = &deletedRepoMock{}
	_ archiveRepo  = &archiveRepoMock{}
	_ historyRepo  = &historyRepoMock{}
	_ auditRepo    = &auditRepoMock{}
	_ txManager    = &txManagerMock{}
)

type documentRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.DocumentRecord, error)
	CreateFunc  func(ctx context.Context, doc *domain.DocumentRecord) error
	UpdateFunc  func(ctx context.Context, doc *domain.DocumentRecord) error
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error

	mu      sync.Mutex
	Created []*domain.DocumentRecord
	Updated []*domain.DocumentRecord
	Deleted []uuid.UUID
}

func (m *documentRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.DocumentRecord, error) {
	if m.GetByIDFunc == nil {
		panic("documentRepoMock.GetByIDFunc: method is nil but documentRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
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

func (m *documentRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	m.Deleted = append(m.Deleted, id)
	m.mu.Unlock()
	if m.DeleteFunc == nil {
		return nil
	}
	return m.DeleteFunc(ctx, id)
}

type deletedRepoMock struct {
	CreateFunc  func(ctx context.Context, rec *domain.DeletedRecord) error
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.DeletedRecord, error)
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error
	ListFunc    func(ctx context.Context, filter domain.DeletedFilter) ([]domain.DeletedRecord, error)

	mu      sync.Mutex
	Created []*domain.DeletedRecord
	Deleted []uuid.UUID
}

func (m *deletedRepoMock) Create(ctx context.Context, rec *domain.DeletedRecord) error {
	m.mu.Lock()
	m.Created = append(m.Created, rec)
	m.mu.Unlock()
	if m.CreateFunc == nil {
		return nil
	}
	return m.CreateFunc(ctx, rec)
}

func (m *deletedRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.DeletedRecord, error) {
	if m.GetByIDFunc == nil {
		panic("deletedRepoMock.GetByIDFunc: method is nil but deletedRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *deletedRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	m.Deleted = append(m.Deleted, id)
	m.mu.Unlock()
	if m.DeleteFunc == nil {
		return nil
	}
	return m.DeleteFunc(ctx, id)
}

func (m *deletedRepoMock) List(ctx context.Context, filter domain.DeletedFilter) ([]domain.DeletedRecord, error) {
	if m.ListFunc == nil {
		panic("deletedRepoMock.ListFunc: method is nil but deletedRepo.List was just called")
	}
	return m.ListFunc(ctx, filter)
}

type archiveRepoMock struct {
	CreateFunc func(ctx context.Context, rec *domain.ArchiveRecord) error
	ListFunc   func(ctx context.Context, filter domain.ArchiveFilter) ([]domain.ArchiveRecord, error)

	mu      sync.Mutex
	Created []*domain.ArchiveRecord
}

func (m *archiveRepoMock) Create(ctx context.Context, rec *domain.ArchiveRecord) error {
	m.mu.Lock()
	m.Created = append(m.Created, rec)
	m.mu.Unlock()
	if m.CreateFunc == nil {
		return nil
	}
	return m.CreateFunc(ctx, rec)
}

func (m *archiveRepoMock) List(ctx context.Context, filter domain.ArchiveFilter) ([]domain.ArchiveRecord, error) {
	if m.ListFunc == nil {
		panic("archiveRepoMock.ListFunc: method is nil but archiveRepo.List was just called")
	}
	return m.ListFunc(ctx, filter)
}

type historyRepoMock struct {
	AppendFunc func(ctx context.Context, entries []domain.HistoryEntry) error

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

type auditRepoMock struct {
	AppendFunc func(ctx context.Context, event *domain.AuditEvent) error

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

type txManagerMock struct{}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
