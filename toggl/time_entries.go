package toggl

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultTimeEntriesPerPage = 50
	defaultCreatedWith        = "toggl-track-go"
)

// TimeEntry is a tracked interval or a running timer. Stop is nil exactly when
// the entry is running; Duration is then negative, as the API encodes it.
type TimeEntry struct {
	ID              int64      `json:"id"`
	WorkspaceID     int64      `json:"workspace_id"`
	ProjectID       *int64     `json:"project_id,omitempty"`
	TaskID          *int64     `json:"task_id,omitempty"`
	UserID          int64      `json:"user_id"`
	Description     string     `json:"description"`
	Start           time.Time  `json:"start"`
	Stop            *time.Time `json:"stop"`
	Duration        int64      `json:"duration"`
	Tags            []string   `json:"tags"`
	TagIDs          []int64    `json:"tag_ids"`
	Billable        bool       `json:"billable"`
	CreatedWith     string     `json:"created_with,omitempty"`
	ProjectName     string     `json:"project_name,omitempty"`
	ClientName      string     `json:"client_name,omitempty"`
	TaskName        string     `json:"task_name,omitempty"`
	At              *time.Time `json:"at,omitempty"`
	ServerDeletedAt *time.Time `json:"server_deleted_at,omitempty"`
}

// IsRunning reports whether the timer is still running.
func (e *TimeEntry) IsRunning() bool { return e.Stop == nil }

// Elapsed returns the tracked time, measured up to now for a running entry.
func (e *TimeEntry) Elapsed(now time.Time) time.Duration {
	if e.IsRunning() {
		return now.Sub(e.Start)
	}
	return time.Duration(e.Duration) * time.Second
}

// UnmarshalJSON accepts legacy id names and derives Duration from Stop, or
// Stop from Duration, so the two always agree for a stopped entry.
func (e *TimeEntry) UnmarshalJSON(b []byte) error {
	type plain TimeEntry
	var raw struct {
		plain
		legacyIDs
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*e = TimeEntry(raw.plain)
	e.WorkspaceID = raw.workspace(e.WorkspaceID)
	if e.ProjectID == nil {
		e.ProjectID = raw.Pid
	}
	if e.TaskID == nil {
		e.TaskID = raw.Tid
	}
	if e.UserID == 0 && raw.UID != nil {
		e.UserID = *raw.UID
	}

	switch {
	case e.Stop != nil:
		e.Duration = int64(e.Stop.Sub(e.Start) / time.Second)
	case e.Duration >= 0 && !e.Start.IsZero():
		stop := e.Start.Add(time.Duration(e.Duration) * time.Second)
		e.Stop = &stop
	}
	return nil
}

// TimeEntryParams describes a new entry. Leave Stop nil and set a negative
// Duration to create a running entry; Start does that for you.
type TimeEntryParams struct {
	Description string     `json:"description,omitempty"`
	Start       time.Time  `json:"start"`
	Stop        *time.Time `json:"stop,omitempty"`
	Duration    int64      `json:"duration"`
	ProjectID   *int64     `json:"project_id,omitempty"`
	TaskID      *int64     `json:"task_id,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	TagIDs      []int64    `json:"tag_ids,omitempty"`
	Billable    bool       `json:"billable"`
	CreatedWith string     `json:"created_with"`
}

// StartParams describes a timer to start now.
type StartParams struct {
	Description string
	ProjectID   *int64
	TaskID      *int64
	Tags        []string
	TagIDs      []int64
	Billable    bool
}

// TimeEntryListOptions filters /me/time_entries. Without PerPage or
// AutoPaginate a single unpaged request is made.
type TimeEntryListOptions struct {
	StartDate      string
	EndDate        string
	Since          int64
	Before         string
	Meta           bool
	IncludeSharing bool
	PageOptions
}

// PatchOp is one JSON Patch operation, e.g. {"replace", "/description", "x"}.
type PatchOp struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

// PatchResult lists which ids a bulk patch applied to.
type PatchResult struct {
	Success []int64        `json:"success"`
	Failure []PatchFailure `json:"failure"`
}

// PatchFailure is one id a bulk patch could not apply to.
type PatchFailure struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// TimeEntriesService handles /me/time_entries and
// /workspaces/{wid}/time_entries.
type TimeEntriesService struct{ c *Client }

// List returns the current user's time entries.
func (s *TimeEntriesService) List(ctx context.Context, opts TimeEntryListOptions) ([]TimeEntry, error) {
	q := url.Values{}
	setString(q, "start_date", opts.StartDate)
	setString(q, "end_date", opts.EndDate)
	setInt64(q, "since", opts.Since)
	setString(q, "before", opts.Before)
	setTrue(q, "meta", opts.Meta)
	setTrue(q, "include_sharing", opts.IncludeSharing)
	target := s.c.apiURL("/me/time_entries")

	if opts.PerPage == 0 && !opts.AutoPaginate {
		data, err := s.c.send(ctx, http.MethodGet, target, q, nil)
		if err != nil {
			return nil, err
		}
		return decodeList[TimeEntry]("me.time_entries", data)
	}

	page := opts.PageOptions.normalized(defaultTimeEntriesPerPage, 0)
	return walkPages(ctx, page, func(ctx context.Context, p, perPage int) ([]TimeEntry, error) {
		data, err := s.c.send(ctx, http.MethodGet, target, setPage(cloneValues(q), p, perPage), nil)
		if err != nil {
			return nil, err
		}
		return decodeList[TimeEntry]("me.time_entries", data)
	})
}

// Get returns one of the current user's entries. A missing id yields a
// *NotFoundError.
func (s *TimeEntriesService) Get(ctx context.Context, id int64) (*TimeEntry, error) {
	if err := checkID("time entry", id); err != nil {
		return nil, err
	}
	var e TimeEntry
	if err := s.c.getJSON(ctx, s.c.apiURL("/me/time_entries/%d", id), nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Current returns the running entry, or nil when no timer is running.
func (s *TimeEntriesService) Current(ctx context.Context) (*TimeEntry, error) {
	data, err := s.c.send(ctx, http.MethodGet, s.c.apiURL("/me/time_entries/current"), nil, nil)
	if err != nil {
		return nil, err
	}
	if isNull(data) {
		return nil, nil
	}
	var e TimeEntry
	if err := decodeObject(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Create adds an entry to a workspace.
func (s *TimeEntriesService) Create(ctx context.Context, workspaceID int64, p TimeEntryParams) (*TimeEntry, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	if p.CreatedWith == "" {
		p.CreatedWith = defaultCreatedWith
	}
	body := struct {
		WorkspaceID int64 `json:"workspace_id"`
		TimeEntryParams
	}{workspaceID, p}

	var e TimeEntry
	if err := s.c.postJSON(ctx, s.c.apiURL("/workspaces/%d/time_entries", workspaceID), body, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Start creates a running entry beginning now.
func (s *TimeEntriesService) Start(ctx context.Context, workspaceID int64, p StartParams) (*TimeEntry, error) {
	now := time.Now().UTC().Truncate(time.Second)
	return s.Create(ctx, workspaceID, TimeEntryParams{
		Description: p.Description,
		Start:       now,
		Duration:    -now.Unix(),
		ProjectID:   p.ProjectID,
		TaskID:      p.TaskID,
		Tags:        p.Tags,
		TagIDs:      p.TagIDs,
		Billable:    p.Billable,
	})
}

// Stop stops a running entry. The server sets stop and the final duration.
func (s *TimeEntriesService) Stop(ctx context.Context, workspaceID, id int64) (*TimeEntry, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	if err := checkID("time entry", id); err != nil {
		return nil, err
	}
	var e TimeEntry
	if err := s.c.patchJSON(ctx, s.c.apiURL("/workspaces/%d/time_entries/%d/stop", workspaceID, id), nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Update replaces the given fields of an entry.
func (s *TimeEntriesService) Update(ctx context.Context, workspaceID, id int64, fields Fields) (*TimeEntry, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	if err := checkID("time entry", id); err != nil {
		return nil, err
	}
	var e TimeEntry
	if err := s.c.putJSON(ctx, s.c.apiURL("/workspaces/%d/time_entries/%d", workspaceID, id), fields.canonical(), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Patch applies JSON Patch operations to up to 100 entries at once. Id lists
// outside 1..100 are rejected without contacting the server.
func (s *TimeEntriesService) Patch(ctx context.Context, workspaceID int64, ids []int64, ops []PatchOp) (*PatchResult, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	csv, err := joinIDs("time entry ids", ids, maxPatchIDs)
	if err != nil {
		return nil, err
	}
	var res PatchResult
	if err := s.c.patchJSON(ctx, s.c.apiURL("/workspaces/%d/time_entries/%s", workspaceID, csv), ops, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Delete removes an entry.
func (s *TimeEntriesService) Delete(ctx context.Context, workspaceID, id int64) error {
	if err := checkID("workspace", workspaceID); err != nil {
		return err
	}
	if err := checkID("time entry", id); err != nil {
		return err
	}
	return s.c.deleteJSON(ctx, s.c.apiURL("/workspaces/%d/time_entries/%d", workspaceID, id))
}
