package postgres

import (
	"context"

	"taskflow/internal/storage"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Storage is the postgres backend, a thin aggregate over the two repositories.
type Storage struct {
	pool  *pgxpool.Pool
	tasks *TaskRepository
	stats *StatsRepository
}

func New(pool *pgxpool.Pool) *Storage {
	return &Storage{
		pool:  pool,
		tasks: NewTaskRepository(pool),
		stats: NewStatsRepository(pool),
	}
}

func (s *Storage) Tasks() storage.TaskStore { return s.tasks }

func (s *Storage) Stats() storage.StatsStore { return s.stats }

func (s *Storage) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

func (s *Storage) Close() { s.pool.Close() }
