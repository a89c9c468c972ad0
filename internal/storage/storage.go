package storage

import (
	"context"

	"taskflow/internal/domain"
)

// TaskStore holds task records.
type TaskStore interface {
	// ListByDate returns all tasks assigned to the given date, oldest first.
	ListByDate(ctx context.Context, date string) ([]*domain.Task, error)
	// Get returns the task with the given id, or domain.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Task, error)
	// Create inserts a new task, assigning id and createdAt.
	Create(ctx context.Context, in domain.TaskInput) (*domain.Task, error)
	// Update merges the patch into the stored task, or domain.ErrNotFound.
	Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	// Delete removes the task; false if no such id existed.
	Delete(ctx context.Context, id string) (bool, error)
}

// StatsStore holds at most one derived summary record per calendar date.
// It is only ever written through the stats recomputation path.
type StatsStore interface {
	// Get returns the stats record for the date, or domain.ErrNotFound.
	Get(ctx context.Context, date string) (*domain.DailyStats, error)
	// GetRange returns records with start <= date <= end, ascending by date.
	// Dates without a record are simply absent from the result.
	GetRange(ctx context.Context, start, end string) ([]*domain.DailyStats, error)
	// Upsert overwrites the counters for the date, preserving the existing
	// record's id, or inserts a new record with a fresh id.
	Upsert(ctx context.Context, in domain.DailyStatsInput) (*domain.DailyStats, error)
}

// Storage is the capability set a backend must provide. Exactly one backend
// is constructed at startup and injected into the service layer.
type Storage interface {
	Tasks() TaskStore
	Stats() StatsStore
	Ping(ctx context.Context) error
	Close()
}
