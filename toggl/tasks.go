package toggl

import (
	"context"
	"net/http"
	"net/url"
)

// TaskListOptions filters a workspace's tasks.
type TaskListOptions struct {
	ProjectID int64
	Active    *bool
	Search    string
	// Since limits the result to tasks modified after this unix timestamp.
	Since int64
}

// TaskParams describes a new task.
type TaskParams struct {
	ProjectID        int64  `json:"project_id"`
	Name             string `json:"name"`
	Active           *bool  `json:"active,omitempty"`
	EstimatedSeconds *int64 `json:"estimated_seconds,omitempty"`
	UserID           *int64 `json:"user_id,omitempty"`
}

// TasksService handles workspace tasks.
type TasksService struct{ c *Client }

// List returns a workspace's tasks.
func (s *TasksService) List(ctx context.Context, workspaceID int64, opts TaskListOptions) ([]Task, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	q := url.Values{}
	setInt64(q, "project_id", opts.ProjectID)
	setBool(q, "active", opts.Active)
	setString(q, "search", opts.Search)
	setInt64(q, "since", opts.Since)
	data, err := s.c.send(ctx, http.MethodGet, s.c.apiURL("/workspaces/%d/tasks", workspaceID), q, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[Task]("workspace.tasks", data)
}

// Get returns one task of a project.
func (s *TasksService) Get(ctx context.Context, workspaceID, projectID, id int64) (*Task, error) {
	if err := checkProjectScope(workspaceID, projectID); err != nil {
		return nil, err
	}
	if err := checkID("task", id); err != nil {
		return nil, err
	}
	var t Task
	if err := s.c.getJSON(ctx, s.c.apiURL("/workspaces/%d/projects/%d/tasks/%d", workspaceID, projectID, id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create adds a task to the project named in params.
func (s *TasksService) Create(ctx context.Context, workspaceID int64, params TaskParams) (*Task, error) {
	if err := checkProjectScope(workspaceID, params.ProjectID); err != nil {
		return nil, err
	}
	var t Task
	if err := s.c.postJSON(ctx, s.c.apiURL("/workspaces/%d/projects/%d/tasks", workspaceID, params.ProjectID), params, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Update replaces the given fields of a task.
func (s *TasksService) Update(ctx context.Context, workspaceID, projectID, id int64, fields Fields) (*Task, error) {
	if err := checkProjectScope(workspaceID, projectID); err != nil {
		return nil, err
	}
	if err := checkID("task", id); err != nil {
		return nil, err
	}
	var t Task
	if err := s.c.putJSON(ctx, s.c.apiURL("/workspaces/%d/projects/%d/tasks/%d", workspaceID, projectID, id), fields.canonical(), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete removes a task.
func (s *TasksService) Delete(ctx context.Context, workspaceID, projectID, id int64) error {
	if err := checkProjectScope(workspaceID, projectID); err != nil {
		return err
	}
	if err := checkID("task", id); err != nil {
		return err
	}
	return s.c.deleteJSON(ctx, s.c.apiURL("/workspaces/%d/projects/%d/tasks/%d", workspaceID, projectID, id))
}

func checkProjectScope(workspaceID, projectID int64) error {
	if err := checkID("workspace", workspaceID); err != nil {
		return err
	}
	return checkID("project", projectID)
}
