package domain

import "time"

// TimeEntry represents a Toggl time entry in the domain.
type TimeEntry struct {
	ID          int64
	WorkspaceID int64
	ProjectID   *int64
	TaskID      *int64
	UserID      int64
	Description string
	Tags        []string
	Billable    bool
	Start       time.Time
	Stop        *time.Time // nil while running
	DurationSec int64
	At          *time.Time
}

// Running reports whether the timer had not been stopped when fetched.
func (e TimeEntry) Running() bool { return e.Stop == nil }
