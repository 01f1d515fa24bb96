package domain

import "time"

const (
	RunSucceeded = "ok"
	RunFailed    = "failed"
)

// SyncRun records one pass of the sync use case.
type SyncRun struct {
	ID         string
	From       time.Time
	To         time.Time
	StartedAt  time.Time
	FinishedAt time.Time
	Status     string
	Error      string
	Entries    int
	Projects   int
	Clients    int
	Tags       int
}
