package domain

import "time"

// Project represents a Toggl project in the domain layer.
type Project struct {
	ID          int64
	WorkspaceID int64
	ClientID    *int64
	Name        string
	Active      bool
	Private     bool
	Billable    bool
	Color       string
	At          time.Time // last update on the Toggl side
}
