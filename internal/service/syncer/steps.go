package syncer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/millbrookqa/docregister/internal/domain"
	"github.com/millbrookqa/docregister/internal/history"
	"github.com/millbrookqa/docregister/pkg/ctxutil"
)

// CreateDocument authors a new structured SOP with no register link yet.
// A later Sync creates and links the register entry.
func (s *Service) CreateDocument(ctx context.Context, sopNumber, title, revision string) (*domain.StructuredDocument, error) {
	if _, ok := ctxutil.ActorFromCtx(ctx); !ok {
		return nil, domain.NewValidationError("actor", "required")
	}
	if strings.TrimSpace(sopNumber) == "" {
		return nil, domain.NewValidationError("sop_number", "required")
	}
	if strings.TrimSpace(title) == "" {
		return nil, domain.NewValidationError("title", "required")
	}

	now := s.clock.Now().UTC()
	doc := &domain.StructuredDocument{
		ID:        uuid.New(),
		SopNumber: sopNumber,
		Title:     title,
		Revision:  revision,
		Status:    domain.StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
		Steps:     []domain.Step{},
	}

	if err := s.structured.Create(ctx, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// Get returns a structured document with its steps.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.StructuredDocument, error) {
	return s.structured.GetByID(ctx, id)
}

// AddStep appends an instruction step and marks the parent out of sync.
func (s *Service) AddStep(ctx context.Context, documentID uuid.UUID, stepNumber int, instructions string) (*domain.Step, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.NewValidationError("actor", "required")
	}

	now := s.clock.Now().UTC()
	step := &domain.Step{
		ID:           uuid.New(),
		DocumentID:   documentID,
		StepNumber:   stepNumber,
		Instructions: instructions,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := step.Validate(); err != nil {
		return nil, err
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		doc, err := s.structured.GetByID(txCtx, documentID)
		if err != nil {
			return err
		}

		if s.maxSteps > 0 && len(doc.Steps) >= s.maxSteps {
			return domain.NewValidationError("steps",
				fmt.Sprintf("document already has the maximum of %d steps", s.maxSteps))
		}

		if err := s.structured.AddStep(txCtx, step); err != nil {
			return err
		}

		entries := history.StepChanges(nil, step, actor, now)
		if err := s.history.Append(txCtx, entries); err != nil {
			return fmt.Errorf("record history: %w", err)
		}

		return s.markUnsynced(txCtx, doc, now)
	})
	if err != nil {
		return nil, err
	}

	return step, nil
}

// UpdateStep rewrites a step's instructions and marks the parent out of sync.
func (s *Service) UpdateStep(ctx context.Context, documentID, stepID uuid.UUID, instructions string) (*domain.Step, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.NewValidationError("actor", "required")
	}
	if strings.TrimSpace(instructions) == "" {
		return nil, domain.NewValidationError("instructions", "required")
	}

	var updated *domain.Step
	now := s.clock.Now().UTC()
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		doc, err := s.structured.GetByID(txCtx, documentID)
		if err != nil {
			return err
		}

		var step *domain.Step
		for i := range doc.Steps {
			if doc.Steps[i].ID == stepID {
				step = &doc.Steps[i]
				break
			}
		}
		if step == nil {
			return fmt.Errorf("step %s: %w", stepID, domain.ErrNotFound)
		}

		before := *step
		step.Instructions = instructions
		step.UpdatedAt = now
		if err := s.structured.UpdateStep(txCtx, step); err != nil {
			return err
		}

		entries := history.StepChanges(&before, step, actor, now)
		if err := s.history.Append(txCtx, entries); err != nil {
			return fmt.Errorf("record history: %w", err)
		}

		updated = step
		return s.markUnsynced(txCtx, doc, now)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// RemoveStep deletes a step and marks the parent out of sync. The step's
// history rows remain; history is append-only.
func (s *Service) RemoveStep(ctx context.Context, documentID, stepID uuid.UUID) error {
	if _, ok := ctxutil.ActorFromCtx(ctx); !ok {
		return domain.NewValidationError("actor", "required")
	}

	now := s.clock.Now().UTC()
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		doc, err := s.structured.GetByID(txCtx, documentID)
		if err != nil {
			return err
		}

		if err := s.structured.RemoveStep(txCtx, stepID); err != nil {
			return err
		}

		return s.markUnsynced(txCtx, doc, now)
	})
}

// markUnsynced flags the parent so the next Sync propagates the new content.
func (s *Service) markUnsynced(ctx context.Context, doc *domain.StructuredDocument, now time.Time) error {
	if !doc.IsSyncedToDocRegister {
		return nil
	}
	doc.IsSyncedToDocRegister = false
	doc.SyncedDate = nil
	doc.UpdatedAt = now
	return s.structured.Update(ctx, doc)
}
