package domain

// DailyStats is the materialized per-date aggregate of task counts.
// It is derived from tasks by recomputation and never edited directly.
type DailyStats struct {
	ID             string `json:"id"`
	Date           string `json:"date"`
	TotalTasks     int    `json:"totalTasks"`
	CompletedTasks int    `json:"completedTasks"`
	CompletionRate int    `json:"completionRate"`
}

// DailyStatsInput is the upsert payload; the store preserves the existing
// record's id when one exists for the date.
type DailyStatsInput struct {
	Date           string
	TotalTasks     int
	CompletedTasks int
	CompletionRate int
}

// ProgressSummary aggregates a stats range for the progress page:
// streaks, perfect days and the average completion rate.
type ProgressSummary struct {
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	DaysRecorded   int    `json:"daysRecorded"`
	TotalTasks     int    `json:"totalTasks"`
	TotalCompleted int    `json:"totalCompleted"`
	AverageRate    int    `json:"averageRate"`
	LongestStreak  int    `json:"longestStreak"`
	CurrentStreak  int    `json:"currentStreak"`
	PerfectDays    int    `json:"perfectDays"`
}
