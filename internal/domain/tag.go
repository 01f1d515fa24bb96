package domain

import "time"

type Tag struct {
	ID          int64
	WorkspaceID int64
	Name        string
	At          time.Time
}
