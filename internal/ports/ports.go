package ports

import (
	"context"
	"time"

	"toggl-track/internal/domain"
)

// TogglClient fetches time tracking data from Toggl Track.
type TogglClient interface {
	ListTimeEntries(ctx context.Context, from, to time.Time) ([]domain.TimeEntry, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
	ListClients(ctx context.Context) ([]domain.Client, error)
	ListTags(ctx context.Context) ([]domain.Tag, error)
}

// Sink persists fetched records. Every Sync method is an idempotent upsert.
type Sink interface {
	SyncEntries(ctx context.Context, entries []domain.TimeEntry) error
	SyncProjects(ctx context.Context, projects []domain.Project) error
	SyncClients(ctx context.Context, clients []domain.Client) error
	SyncTags(ctx context.Context, tags []domain.Tag) error
	RecordRun(ctx context.Context, run domain.SyncRun) error
}
