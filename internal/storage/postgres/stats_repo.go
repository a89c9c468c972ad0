package postgres

import (
	"context"
	"errors"

	"taskflow/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StatsRepository struct {
	db *pgxpool.Pool
}

func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) Get(ctx context.Context, date string) (*domain.DailyStats, error) {
	var ds domain.DailyStats
	err := r.db.QueryRow(ctx,
		`SELECT id, date, total_tasks, completed_tasks, completion_rate
		 FROM daily_stats
		 WHERE date = $1`,
		date,
	).Scan(&ds.ID, &ds.Date, &ds.TotalTasks, &ds.CompletedTasks, &ds.CompletionRate)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get stats", Err: err}
	}
	return &ds, nil
}

func (r *StatsRepository) GetRange(ctx context.Context, start, end string) ([]*domain.DailyStats, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, date, total_tasks, completed_tasks, completion_rate
		 FROM daily_stats
		 WHERE date >= $1 AND date <= $2
		 ORDER BY date`,
		start, end,
	)
	if err != nil {
		return nil, &domain.StorageError{Op: "range stats", Err: err}
	}
	defer rows.Close()

	var res []*domain.DailyStats
	for rows.Next() {
		var ds domain.DailyStats
		if err := rows.Scan(&ds.ID, &ds.Date, &ds.TotalTasks, &ds.CompletedTasks, &ds.CompletionRate); err != nil {
			return nil, &domain.StorageError{Op: "scan stats", Err: err}
		}
		res = append(res, &ds)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "range stats", Err: err}
	}
	return res, nil
}

// Upsert relies on the UNIQUE constraint on date; an existing row keeps its id.
func (r *StatsRepository) Upsert(ctx context.Context, in domain.DailyStatsInput) (*domain.DailyStats, error) {
	var ds domain.DailyStats
	err := r.db.QueryRow(ctx,
		`INSERT INTO daily_stats (id, date, total_tasks, completed_tasks, completion_rate)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (date) DO UPDATE
		 SET total_tasks = EXCLUDED.total_tasks,
		     completed_tasks = EXCLUDED.completed_tasks,
		     completion_rate = EXCLUDED.completion_rate
		 RETURNING id, date, total_tasks, completed_tasks, completion_rate`,
		uuid.NewString(), in.Date, in.TotalTasks, in.CompletedTasks, in.CompletionRate,
	).Scan(&ds.ID, &ds.Date, &ds.TotalTasks, &ds.CompletedTasks, &ds.CompletionRate)

	if err != nil {
		return nil, &domain.StorageError{Op: "upsert stats", Err: err}
	}
	return &ds, nil
}
