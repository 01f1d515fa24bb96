package domain

import "time"

// Client is the customer a project is billed to.
type Client struct {
	ID          int64
	WorkspaceID int64
	Name        string
	Archived    bool
	At          time.Time
}
