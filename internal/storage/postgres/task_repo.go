package postgres

import (
	"context"
	"errors"
	"time"

	"taskflow/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) ListByDate(ctx context.Context, date string) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, description, completed, date, completed_at, created_at
		 FROM tasks
		 WHERE date = $1
		 ORDER BY created_at, id`,
		date,
	)
	if err != nil {
		return nil, &domain.StorageError{Op: "list tasks", Err: err}
	}
	defer rows.Close()

	var res []*domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.Date, &t.CompletedAt, &t.CreatedAt); err != nil {
			return nil, &domain.StorageError{Op: "scan task", Err: err}
		}
		res = append(res, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list tasks", Err: err}
	}
	return res, nil
}

func (r *TaskRepository) Get(ctx context.Context, id string) (*domain.Task, error) {
	var t domain.Task
	err := r.db.QueryRow(ctx,
		`SELECT id, title, description, completed, date, completed_at, created_at
		 FROM tasks
		 WHERE id = $1`,
		id,
	).Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.Date, &t.CompletedAt, &t.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get task", Err: err}
	}
	return &t, nil
}

func (r *TaskRepository) Create(ctx context.Context, in domain.TaskInput) (*domain.Task, error) {
	t := &domain.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
		Date:        in.Date,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO tasks (id, title, description, completed, date, completed_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.Title, t.Description, t.Completed, t.Date, t.CompletedAt, t.CreatedAt,
	)
	if err != nil {
		return nil, &domain.StorageError{Op: "create task", Err: err}
	}
	return t, nil
}

// Update reads the current row, merges the patch and writes the mutable
// columns back. Concurrent updates to the same task are last-write-wins;
// the stats recompute that follows every mutation re-reads current state.
func (r *TaskRepository) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	t, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(t)

	_, err = r.db.Exec(ctx,
		`UPDATE tasks
		 SET title = $1, description = $2, completed = $3, completed_at = $4
		 WHERE id = $5`,
		t.Title, t.Description, t.Completed, t.CompletedAt, t.ID,
	)
	if err != nil {
		return nil, &domain.StorageError{Op: "update task", Err: err}
	}
	return t, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return false, &domain.StorageError{Op: "delete task", Err: err}
	}
	return tag.RowsAffected() > 0, nil
}
