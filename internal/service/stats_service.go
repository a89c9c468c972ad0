package service

import (
	"context"
	"math"
	"sync"
	"time"

	"taskflow/internal/domain"
	"taskflow/internal/storage"
)

const dateLayout = "2006-01-02"

// StatsService owns every write to the daily stats store. A summary row is a
// deterministic function of the tasks on its date, recomputed after each task
// mutation; nothing else may upsert it.
type StatsService struct {
	store storage.Storage

	// Per-date locks so concurrent recomputes for the same date serialize
	// while distinct dates proceed independently.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewStatsService(store storage.Storage) *StatsService {
	return &StatsService{
		store: store,
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *StatsService) dateLock(date string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[date]
	if !ok {
		l = &sync.Mutex{}
		s.locks[date] = l
	}
	return l
}

// Recompute re-derives the summary for one date from a full scan of its
// tasks and upserts it. Idempotent: with no intervening task mutation two
// runs produce identical counters.
func (s *StatsService) Recompute(ctx context.Context, date string) (*domain.DailyStats, error) {
	if err := validateDate("date", date); err != nil {
		return nil, err
	}

	l := s.dateLock(date)
	l.Lock()
	defer l.Unlock()

	tasks, err := s.store.Tasks().ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	total := len(tasks)
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}

	return s.store.Stats().Upsert(ctx, domain.DailyStatsInput{
		Date:           date,
		TotalTasks:     total,
		CompletedTasks: completed,
		CompletionRate: completionRate(completed, total),
	})
}

// completionRate rounds half away from zero: 1/3 -> 33, 12.5 -> 13.
func completionRate(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

func (s *StatsService) Get(ctx context.Context, date string) (*domain.DailyStats, error) {
	if err := validateDate("date", date); err != nil {
		return nil, err
	}
	return s.store.Stats().Get(ctx, date)
}

// Range returns recorded summaries within [start, end] ascending by date.
// Dates that never saw a task mutation are absent, not zero-valued.
func (s *StatsService) Range(ctx context.Context, start, end string) ([]*domain.DailyStats, error) {
	if err := validateDate("start", start); err != nil {
		return nil, err
	}
	if err := validateDate("end", end); err != nil {
		return nil, err
	}
	if start > end {
		return nil, domain.NewValidationError("range", "start date is after end date")
	}
	return s.store.Stats().GetRange(ctx, start, end)
}

// Summary aggregates a range into the progress-page metrics. A day counts
// toward a streak when at least one of its tasks was completed; a perfect
// day has tasks and a 100% rate.
func (s *StatsService) Summary(ctx context.Context, start, end string) (*domain.ProgressSummary, error) {
	recorded, err := s.Range(ctx, start, end)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*domain.DailyStats, len(recorded))
	for _, ds := range recorded {
		byDate[ds.Date] = ds
	}

	sum := &domain.ProgressSummary{StartDate: start, EndDate: end}
	rateSum := 0
	for _, ds := range recorded {
		sum.DaysRecorded++
		sum.TotalTasks += ds.TotalTasks
		sum.TotalCompleted += ds.CompletedTasks
		rateSum += ds.CompletionRate
		if ds.TotalTasks > 0 && ds.CompletionRate == 100 {
			sum.PerfectDays++
		}
	}
	if sum.DaysRecorded > 0 {
		sum.AverageRate = int(math.Round(float64(rateSum) / float64(sum.DaysRecorded)))
	}

	startDay, _ := time.Parse(dateLayout, start)
	endDay, _ := time.Parse(dateLayout, end)

	run := 0
	for d := startDay; !d.After(endDay); d = d.AddDate(0, 0, 1) {
		if ds, ok := byDate[d.Format(dateLayout)]; ok && ds.CompletedTasks > 0 {
			run++
			if run > sum.LongestStreak {
				sum.LongestStreak = run
			}
		} else {
			run = 0
		}
	}

	// Current streak counts back from the end of the range. Trailing days
	// with no record at all (not yet logged) are skipped; a recorded day
	// with nothing completed, or an interior gap, ends the streak.
	skipping := true
	for d := endDay; !d.Before(startDay); d = d.AddDate(0, 0, -1) {
		ds, ok := byDate[d.Format(dateLayout)]
		if !ok {
			if skipping {
				continue
			}
			break
		}
		skipping = false
		if ds.CompletedTasks == 0 {
			break
		}
		sum.CurrentStreak++
	}

	return sum, nil
}

func validateDate(field, value string) error {
	if len(value) != len(dateLayout) {
		return domain.NewValidationError(field, "must be a yyyy-mm-dd date")
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		return domain.NewValidationError(field, "must be a yyyy-mm-dd date")
	}
	return nil
}
