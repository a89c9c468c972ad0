package postgres

import (
	"context"
	"os"
	"testing"

	"taskflow/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Integration tests: run only when DATABASE_URL points at a database with
// the migrations applied.
func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set; skipping integration test")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return New(pool)
}

func cleanupTask(t *testing.T, s *Storage, id string) {
	t.Helper()
	t.Cleanup(func() {
		_, _ = s.pool.Exec(context.Background(), `DELETE FROM tasks WHERE id = $1`, id)
	})
}

func cleanupStats(t *testing.T, s *Storage, date string) {
	t.Helper()
	t.Cleanup(func() {
		_, _ = s.pool.Exec(context.Background(), `DELETE FROM daily_stats WHERE date = $1`, date)
	})
}

func TestTaskRepository_Lifecycle(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	desc := "integration"
	created, err := s.Tasks().Create(ctx, domain.TaskInput{
		Title:       "pg task",
		Description: &desc,
		Date:        "2030-06-15",
	})
	require.NoError(t, err)
	cleanupTask(t, s, created.ID)

	got, err := s.Tasks().Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "pg task", got.Title)

	done := true
	updated, err := s.Tasks().Update(ctx, created.ID, domain.TaskPatch{Completed: &done})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	require.NotNil(t, updated.Description)
	assert.Equal(t, desc, *updated.Description)

	list, err := s.Tasks().ListByDate(ctx, "2030-06-15")
	require.NoError(t, err)
	require.NotEmpty(t, list)

	deleted, err := s.Tasks().Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = s.Tasks().Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStatsRepository_UpsertPreservesID(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	date := "2030-06-16"
	cleanupStats(t, s, date)

	first, err := s.Stats().Upsert(ctx, domain.DailyStatsInput{
		Date: date, TotalTasks: 1, CompletedTasks: 0, CompletionRate: 0,
	})
	require.NoError(t, err)

	second, err := s.Stats().Upsert(ctx, domain.DailyStatsInput{
		Date: date, TotalTasks: 2, CompletedTasks: 1, CompletionRate: 50,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 50, second.CompletionRate)

	got, err := s.Stats().Get(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestStatsRepository_Range(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	for _, date := range []string{"2030-07-01", "2030-07-03"} {
		cleanupStats(t, s, date)
		_, err := s.Stats().Upsert(ctx, domain.DailyStatsInput{Date: date, TotalTasks: 1})
		require.NoError(t, err)
	}

	res, err := s.Stats().GetRange(ctx, "2030-07-01", "2030-07-04")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "2030-07-01", res[0].Date)
	assert.Equal(t, "2030-07-03", res[1].Date)
}
