package toggl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"toggl-track/internal/domain"
	track "toggl-track/toggl"
)

// Client implements ports.TogglClient on top of the Toggl Track API client.
type Client struct {
	api *track.Client
	log *slog.Logger

	mu        sync.Mutex
	workspace int64
}

// NewClient scopes api to workspaceID. Zero means the user's default
// workspace, looked up on first use.
func NewClient(api *track.Client, workspaceID int64, log *slog.Logger) *Client {
	return &Client{api: api, workspace: workspaceID, log: log}
}

// ListTimeEntries fetches the user's entries started in [from, to]. The
// endpoint returns the whole range in one response and ignores paging, so a
// single request is made.
func (c *Client) ListTimeEntries(ctx context.Context, from, to time.Time) ([]domain.TimeEntry, error) {
	raw, err := c.api.TimeEntries.List(ctx, track.TimeEntryListOptions{
		StartDate: from.UTC().Format(time.RFC3339),
		EndDate:   to.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}
	out := make([]domain.TimeEntry, 0, len(raw))
	seen := make(map[int64]struct{}, len(raw))
	for _, e := range raw {
		if e.ServerDeletedAt != nil {
			continue
		}
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, domain.TimeEntry{
			ID:          e.ID,
			WorkspaceID: e.WorkspaceID,
			ProjectID:   e.ProjectID,
			TaskID:      e.TaskID,
			UserID:      e.UserID,
			Description: e.Description,
			Tags:        e.Tags,
			Billable:    e.Billable,
			Start:       e.Start,
			Stop:        e.Stop,
			DurationSec: e.Duration,
			At:          e.At,
		})
	}
	return out, nil
}

// ListProjects fetches every project in the workspace.
func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	wid, err := c.workspaceID(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := c.api.Projects.List(ctx, wid, track.ProjectListOptions{
		PageOptions: track.PageOptions{AutoPaginate: true},
	})
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	out := make([]domain.Project, 0, len(raw))
	for _, p := range raw {
		out = append(out, domain.Project{
			ID:          p.ID,
			WorkspaceID: p.WorkspaceID,
			ClientID:    p.ClientID,
			Name:        p.Name,
			Active:      p.Active,
			Private:     p.IsPrivate,
			Billable:    p.Billable != nil && *p.Billable,
			Color:       p.Color,
			At:          deref(p.At),
		})
	}
	return out, nil
}

// ListClients fetches active and archived clients.
func (c *Client) ListClients(ctx context.Context) ([]domain.Client, error) {
	wid, err := c.workspaceID(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := c.api.Clients.List(ctx, wid, "both")
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	out := make([]domain.Client, 0, len(raw))
	for _, cl := range raw {
		out = append(out, domain.Client{
			ID:          cl.ID,
			WorkspaceID: cl.WorkspaceID,
			Name:        cl.Name,
			Archived:    cl.Archived,
			At:          deref(cl.At),
		})
	}
	return out, nil
}

// ListTags fetches every tag in the workspace.
func (c *Client) ListTags(ctx context.Context) ([]domain.Tag, error) {
	wid, err := c.workspaceID(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := c.api.Tags.List(ctx, wid)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	out := make([]domain.Tag, 0, len(raw))
	for _, t := range raw {
		out = append(out, domain.Tag{ID: t.ID, WorkspaceID: t.WorkspaceID, Name: t.Name, At: deref(t.At)})
	}
	return out, nil
}

// Quota reports the API quota seen on the latest response.
func (c *Client) Quota() track.Quota { return c.api.Quota() }

func (c *Client) workspaceID(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.workspace != 0 {
		return c.workspace, nil
	}
	me, err := c.api.Me.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("resolve default workspace: %w", err)
	}
	if me.DefaultWorkspaceID == 0 {
		return 0, errors.New("resolve default workspace: account has none")
	}
	c.workspace = me.DefaultWorkspaceID
	c.log.Info("using default workspace", slog.Int64("workspace_id", c.workspace))
	return c.workspace, nil
}

func deref(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.UTC()
}
