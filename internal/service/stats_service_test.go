package service

import (
	"context"
	"sync"
	"testing"

	"taskflow/internal/domain"
	"taskflow/internal/storage/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServices(t *testing.T) (*TaskService, *StatsService) {
	t.Helper()
	store := memory.New()
	stats := NewStatsService(store)
	return NewTaskService(store, stats), stats
}

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{"no tasks", 0, 0, 0},
		{"none done", 0, 4, 0},
		{"all done", 4, 4, 100},
		{"one third rounds down", 1, 3, 33},
		{"two thirds rounds up", 2, 3, 67},
		{"half away from zero", 1, 8, 13},
		{"half", 1, 2, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, completionRate(tt.completed, tt.total))
		})
	}
}

func TestRecompute_CountsTasksForDate(t *testing.T) {
	tasks, stats := newServices(t)
	ctx := context.Background()

	_, err := tasks.Create(ctx, domain.TaskInput{Title: "a", Date: "2024-01-01"})
	require.NoError(t, err)
	_, err = tasks.Create(ctx, domain.TaskInput{Title: "b", Date: "2024-01-01", Completed: true})
	require.NoError(t, err)
	_, err = tasks.Create(ctx, domain.TaskInput{Title: "other day", Date: "2024-01-02", Completed: true})
	require.NoError(t, err)

	ds, err := stats.Recompute(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, 2, ds.TotalTasks)
	assert.Equal(t, 1, ds.CompletedTasks)
	assert.Equal(t, 50, ds.CompletionRate)
}

func TestRecompute_Idempotent(t *testing.T) {
	tasks, stats := newServices(t)
	ctx := context.Background()

	_, err := tasks.Create(ctx, domain.TaskInput{Title: "a", Date: "2024-01-01", Completed: true})
	require.NoError(t, err)

	first, err := stats.Recompute(ctx, "2024-01-01")
	require.NoError(t, err)
	second, err := stats.Recompute(ctx, "2024-01-01")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// After concurrent mutations for one date settle, the stored summary must
// equal a fresh recomputation from the then-current task set; same-date
// recomputes serialize on the per-date lock.
func TestRecompute_ConcurrentMutationsSettle(t *testing.T) {
	tasks, stats := newServices(t)
	ctx := context.Background()
	date := "2024-01-01"

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := tasks.Create(ctx, domain.TaskInput{Title: "t", Date: date, Completed: i%2 == 0})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	stored, err := stats.Get(ctx, date)
	require.NoError(t, err)

	fresh, err := stats.Recompute(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, fresh, stored)

	assert.Equal(t, n, stored.TotalTasks)
	assert.Equal(t, n/2, stored.CompletedTasks)
	assert.Equal(t, 50, stored.CompletionRate)
}

func TestRecompute_RejectsMalformedDate(t *testing.T) {
	_, stats := newServices(t)

	_, err := stats.Recompute(context.Background(), "01/02/2024")
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

// The full lifecycle from the progress tracker: create, complete, add,
// delete, with stats following every step.
func TestStats_FollowTaskMutations(t *testing.T) {
	tasks, stats := newServices(t)
	ctx := context.Background()
	date := "2024-01-01"

	a, err := tasks.Create(ctx, domain.TaskInput{Title: "Workout", Date: date})
	require.NoError(t, err)

	ds, err := stats.Get(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 0}, []int{ds.TotalTasks, ds.CompletedTasks, ds.CompletionRate})

	completed := true
	_, err = tasks.Update(ctx, a.ID, domain.TaskPatch{Completed: &completed})
	require.NoError(t, err)

	ds, err = stats.Get(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 100}, []int{ds.TotalTasks, ds.CompletedTasks, ds.CompletionRate})

	b, err := tasks.Create(ctx, domain.TaskInput{Title: "Read", Date: date})
	require.NoError(t, err)

	ds, err = stats.Get(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 50}, []int{ds.TotalTasks, ds.CompletedTasks, ds.CompletionRate})

	deleted, err := tasks.Delete(ctx, b.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	ds, err = stats.Get(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 100}, []int{ds.TotalTasks, ds.CompletedTasks, ds.CompletionRate})
}

func TestStats_IDStableAcrossRecomputes(t *testing.T) {
	tasks, stats := newServices(t)
	ctx := context.Background()

	_, err := tasks.Create(ctx, domain.TaskInput{Title: "a", Date: "2024-01-01"})
	require.NoError(t, err)
	first, err := stats.Get(ctx, "2024-01-01")
	require.NoError(t, err)

	_, err = tasks.Create(ctx, domain.TaskInput{Title: "b", Date: "2024-01-01"})
	require.NoError(t, err)
	second, err := stats.Get(ctx, "2024-01-01")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}

func TestRange_Validation(t *testing.T) {
	_, stats := newServices(t)
	ctx := context.Background()

	var verr *domain.ValidationError

	_, err := stats.Range(ctx, "2024-1-1", "2024-01-05")
	assert.ErrorAs(t, err, &verr)

	_, err = stats.Range(ctx, "2024-01-05", "2024-01-01")
	assert.ErrorAs(t, err, &verr)
}

func TestRange_OmitsUnrecordedDates(t *testing.T) {
	tasks, stats := newServices(t)
	ctx := context.Background()

	_, err := tasks.Create(ctx, domain.TaskInput{Title: "a", Date: "2024-01-01"})
	require.NoError(t, err)
	_, err = tasks.Create(ctx, domain.TaskInput{Title: "b", Date: "2024-01-03"})
	require.NoError(t, err)

	res, err := stats.Range(ctx, "2024-01-01", "2024-01-04")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "2024-01-01", res[0].Date)
	assert.Equal(t, "2024-01-03", res[1].Date)
}

func createCompleted(t *testing.T, tasks *TaskService, date string, completed bool) {
	t.Helper()
	_, err := tasks.Create(context.Background(), domain.TaskInput{Title: "t", Date: date, Completed: completed})
	require.NoError(t, err)
}

func TestSummary_StreaksAndPerfectDays(t *testing.T) {
	tasks, stats := newServices(t)
	ctx := context.Background()

	// Jan 1-2 kept, Jan 3 recorded but nothing done, Jan 4-6 kept.
	createCompleted(t, tasks, "2024-01-01", true)
	createCompleted(t, tasks, "2024-01-02", true)
	createCompleted(t, tasks, "2024-01-02", false)
	createCompleted(t, tasks, "2024-01-03", false)
	createCompleted(t, tasks, "2024-01-04", true)
	createCompleted(t, tasks, "2024-01-05", true)
	createCompleted(t, tasks, "2024-01-06", true)

	sum, err := stats.Summary(ctx, "2024-01-01", "2024-01-06")
	require.NoError(t, err)

	assert.Equal(t, 6, sum.DaysRecorded)
	assert.Equal(t, 7, sum.TotalTasks)
	assert.Equal(t, 5, sum.TotalCompleted)
	assert.Equal(t, 3, sum.LongestStreak)
	assert.Equal(t, 3, sum.CurrentStreak)
	// Jan 2 is 1/2 done; Jan 1, 4, 5, 6 are perfect
	assert.Equal(t, 4, sum.PerfectDays)
	// rates: 100, 50, 0, 100, 100, 100 -> avg 75
	assert.Equal(t, 75, sum.AverageRate)
}

func TestSummary_TrailingUnrecordedDaysKeepStreak(t *testing.T) {
	tasks, stats := newServices(t)
	ctx := context.Background()

	createCompleted(t, tasks, "2024-01-01", true)
	createCompleted(t, tasks, "2024-01-02", true)

	// Jan 3 never logged: the streak through Jan 2 still counts as current.
	sum, err := stats.Summary(ctx, "2024-01-01", "2024-01-03")
	require.NoError(t, err)
	assert.Equal(t, 2, sum.CurrentStreak)
	assert.Equal(t, 2, sum.LongestStreak)
}

func TestSummary_InteriorGapBreaksStreak(t *testing.T) {
	tasks, stats := newServices(t)
	ctx := context.Background()

	createCompleted(t, tasks, "2024-01-01", true)
	// Jan 2 never logged
	createCompleted(t, tasks, "2024-01-03", true)

	sum, err := stats.Summary(ctx, "2024-01-01", "2024-01-03")
	require.NoError(t, err)
	assert.Equal(t, 1, sum.LongestStreak)
	assert.Equal(t, 1, sum.CurrentStreak)
}

func TestSummary_EmptyRange(t *testing.T) {
	_, stats := newServices(t)

	sum, err := stats.Summary(context.Background(), "2024-01-01", "2024-01-07")
	require.NoError(t, err)
	assert.Equal(t, 0, sum.DaysRecorded)
	assert.Equal(t, 0, sum.AverageRate)
	assert.Equal(t, 0, sum.CurrentStreak)
	assert.Equal(t, 0, sum.LongestStreak)
}
