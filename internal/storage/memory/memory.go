package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"taskflow/internal/domain"
	"taskflow/internal/storage"

	"github.com/google/uuid"
)

// Storage is the in-memory backend. It keeps tasks keyed by id and stats
// keyed by date, each behind its own RWMutex.
type Storage struct {
	tasks *taskStore
	stats *statsStore
}

func New() *Storage {
	return &Storage{
		tasks: &taskStore{tasks: make(map[string]*domain.Task)},
		stats: &statsStore{stats: make(map[string]*domain.DailyStats)},
	}
}

func (s *Storage) Tasks() storage.TaskStore { return s.tasks }

func (s *Storage) Stats() storage.StatsStore { return s.stats }

func (s *Storage) Ping(ctx context.Context) error { return nil }

func (s *Storage) Close() {}

type taskStore struct {
	mu    sync.RWMutex
	tasks map[string]*domain.Task
}

func (s *taskStore) ListByDate(ctx context.Context, date string) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var res []*domain.Task
	for _, t := range s.tasks {
		if t.Date == date {
			cp := *t
			res = append(res, &cp)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].ID < res[j].ID
		}
		return res[i].CreatedAt.Before(res[j].CreatedAt)
	})
	return res, nil
}

func (s *taskStore) Get(ctx context.Context, id string) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *taskStore) Create(ctx context.Context, in domain.TaskInput) (*domain.Task, error) {
	t := &domain.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
		Date:        in.Date,
		CreatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	s.tasks[t.ID] = t
	s.mu.Unlock()

	cp := *t
	return &cp, nil
}

func (s *taskStore) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	patch.Apply(t)
	cp := *t
	return &cp, nil
}

func (s *taskStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return false, nil
	}
	delete(s.tasks, id)
	return true, nil
}

type statsStore struct {
	mu    sync.RWMutex
	stats map[string]*domain.DailyStats
}

func (s *statsStore) Get(ctx context.Context, date string) (*domain.DailyStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ds, ok := s.stats[date]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *ds
	return &cp, nil
}

func (s *statsStore) GetRange(ctx context.Context, start, end string) ([]*domain.DailyStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var res []*domain.DailyStats
	for date, ds := range s.stats {
		// ISO dates compare lexicographically in chronological order.
		if date >= start && date <= end {
			cp := *ds
			res = append(res, &cp)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Date < res[j].Date })
	return res, nil
}

func (s *statsStore) Upsert(ctx context.Context, in domain.DailyStatsInput) (*domain.DailyStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, ok := s.stats[in.Date]
	if !ok {
		ds = &domain.DailyStats{ID: uuid.NewString(), Date: in.Date}
		s.stats[in.Date] = ds
	}
	ds.TotalTasks = in.TotalTasks
	ds.CompletedTasks = in.CompletedTasks
	ds.CompletionRate = in.CompletionRate

	cp := *ds
	return &cp, nil
}
