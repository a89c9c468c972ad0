package domain

import "time"

// Task is a single to-do item assigned to one calendar date.
// Date is an ISO yyyy-mm-dd string and never changes after creation.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Completed   bool       `json:"completed"`
	Date        string     `json:"date"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// TaskInput carries the fields a client may supply when creating a task.
type TaskInput struct {
	Title       string
	Description *string
	Date        string
	Completed   bool
}

// TaskPatch is a partial update. Nil pointers mean "leave unchanged";
// Description and CompletedAt are nullable on the wire, so an explicit
// null is carried via the Set* flags.
type TaskPatch struct {
	Title          *string
	Description    *string
	SetDescription bool
	Completed      *bool
	CompletedAt    *time.Time
	SetCompletedAt bool
}

// Empty reports whether the patch touches no fields.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && !p.SetDescription && p.Completed == nil && !p.SetCompletedAt
}

// Apply merges the patch into t. The completed/completedAt pair is taken
// as supplied; the store does not derive one from the other.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.SetDescription {
		t.Description = p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.SetCompletedAt {
		t.CompletedAt = p.CompletedAt
	}
}
