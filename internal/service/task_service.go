package service

import (
	"context"
	"errors"
	"strings"

	"taskflow/internal/domain"
	"taskflow/internal/logger"
	"taskflow/internal/storage"
)

// TaskService validates input, applies task mutations and triggers the
// synchronous stats recompute for the affected date.
type TaskService struct {
	store storage.Storage
	stats *StatsService
}

func NewTaskService(store storage.Storage, stats *StatsService) *TaskService {
	return &TaskService{store: store, stats: stats}
}

func (s *TaskService) ListByDate(ctx context.Context, date string) ([]*domain.Task, error) {
	if err := validateDate("date", date); err != nil {
		return nil, err
	}
	return s.store.Tasks().ListByDate(ctx, date)
}

func (s *TaskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	return s.store.Tasks().Get(ctx, id)
}

func (s *TaskService) Create(ctx context.Context, in domain.TaskInput) (*domain.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, domain.NewValidationError("title", "must not be empty")
	}
	if err := validateDate("date", in.Date); err != nil {
		return nil, err
	}

	t, err := s.store.Tasks().Create(ctx, in)
	if err != nil {
		return nil, err
	}

	s.recompute(ctx, t.Date)
	return t, nil
}

// Update merges the supplied fields only. The completed/completedAt pair is
// trusted as given; consistency between the two is the caller's job.
func (s *TaskService) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, domain.NewValidationError("title", "must not be empty")
	}
	if patch.Empty() {
		// nothing to merge; skip the write and the recompute
		return s.store.Tasks().Get(ctx, id)
	}

	t, err := s.store.Tasks().Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.recompute(ctx, t.Date)
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) (bool, error) {
	t, err := s.store.Tasks().Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	deleted, err := s.store.Tasks().Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	s.recompute(ctx, t.Date)
	return true, nil
}

// recompute runs after a committed mutation. A failure here does not undo
// the mutation; stats are a derived view and the next mutation or an
// explicit recompute call heals them.
func (s *TaskService) recompute(ctx context.Context, date string) {
	if _, err := s.stats.Recompute(ctx, date); err != nil {
		logger.Warn("stats recompute failed", "date", date, "error", err)
	}
}
