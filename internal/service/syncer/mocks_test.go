package syncer

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/millbrookqa/docregister/internal/domain"
)

var (
	_ structuredRepo = &structuredRepoMock{}
	_ documentRepo   = &documentRepoMock{}
	_ historyRepo    = &historyRepoMock{}
	_ auditRepo      = &auditRepoMock{}
	_ txManager      = &txManagerMock{}
)

type structuredRepoMock struct {
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.StructuredDocument, error)
	CreateFunc     func(ctx context.Context, doc *domain.StructuredDocument) error
	UpdateFunc     func(ctx context.Context, doc *domain.StructuredDocument) error
	AddStepFunc    func(ctx context.Context, step *domain.Step) error
	UpdateStepFunc func(ctx context.Context, step *domain.Step) error
	RemoveStepFunc func(ctx context.Context, id uuid.UUID) error

	mu      sync.Mutex
	Updated []*domain.StructuredDocument
}

func (m *structuredRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.StructuredDocument, error) {
	if m.GetByIDFunc == nil {
		panic("structuredRepoMock.GetByIDFunc: method is nil but structuredRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *structuredRepoMock) Create(ctx context.Context, doc *domain.StructuredDocument) error {
	if m.CreateFunc == nil {
		return nil
	}
	return m.CreateFunc(ctx, doc)
}

func (m *structuredRepoMock) Update(ctx context.Context, doc *domain.StructuredDocument) error {
	m.mu.Lock()
	m.Updated = append(m.Updated, doc)
	m.mu.Unlock()
	if m.UpdateFunc == nil {
		return nil
	}
	return m.UpdateFunc(ctx, doc)
}

func (m *structuredRepoMock) AddStep(ctx context.Context, step *domain.Step) error {
	if m.AddStepFunc == nil {
		return nil
	}
	return m.AddStepFunc(ctx, step)
}

func (m *structuredRepoMock) UpdateStep(ctx context.Context, step *domain.Step) error {
	if m.UpdateStepFunc == nil {
		return nil
	}
	return m.UpdateStepFunc(ctx, step)
}

func (m *structuredRepoMock) RemoveStep(ctx context.Context, id uuid.UUID) error {
	if m.RemoveStepFunc == nil {
		return nil
	}
	return m.RemoveStepFunc(ctx, id)
}

type documentRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.DocumentRecord, error)
	CreateFunc  func(ctx context.Context, doc *domain.DocumentRecord) error
	UpdateFunc  func(ctx context.Context, doc *domain.DocumentRecord) error

	mu      sync.Mutex
	Created []*domain.DocumentRecord
	Updated []*domain.DocumentRecord
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
