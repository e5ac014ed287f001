package model

import (
	"encoding/json"
	"time"
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Statuses lists the known statuses in lifecycle order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Task is the domain model for a tracked task.
// Field order here is the field order on disk.
type Task struct {
	ID          int       `json:"id"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Timestamp normalizes t to the stored precision: UTC, milliseconds.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// TimeLayout is the on-disk timestamp form: UTC with exactly three
// fractional digits, e.g. 2024-01-02T03:04:05.000Z.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTime renders a stored timestamp the way it appears on disk.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// MarshalJSON writes timestamps in TimeLayout. Decoding uses the
// default time.Time parser, which accepts any RFC 3339 form.
func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
		Status      Status `json:"status"`
		CreatedAt   string `json:"createdAt"`
		UpdatedAt   string `json:"updatedAt"`
	}{t.ID, t.Description, t.Status, FormatTime(t.CreatedAt), FormatTime(t.UpdatedAt)})
}
