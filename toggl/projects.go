package toggl

import (
	"context"
	"net/http"
	"net/url"
)

const (
	defaultProjectsPerPage = 151
	maxProjectsPerPage     = 200
)

// ProjectListOptions filters a workspace's projects.
type ProjectListOptions struct {
	Active        *bool
	Billable      *bool
	Since         int64
	UserIDs       []int64
	ClientIDs     []int64
	GroupIDs      []int64
	ProjectIDs    []int64
	Statuses      []string
	Name          string
	Search        string
	SortField     string
	SortOrder     string
	OnlyTemplates bool
	OnlyMe        bool
	OnlyEditable  bool
	SortPinned    bool
	PageOptions
}

func (o ProjectListOptions) values() url.Values {
	q := url.Values{}
	setBool(q, "active", o.Active)
	setBool(q, "billable", o.Billable)
	setInt64(q, "since", o.Since)
	setIDs(q, "user_ids", o.UserIDs)
	setIDs(q, "client_ids", o.ClientIDs)
	setIDs(q, "group_ids", o.GroupIDs)
	setIDs(q, "project_ids", o.ProjectIDs)
	setStrings(q, "statuses", o.Statuses)
	setString(q, "name", o.Name)
	setString(q, "search", o.Search)
	setString(q, "sort_field", o.SortField)
	setString(q, "sort_order", o.SortOrder)
	setTrue(q, "only_templates", o.OnlyTemplates)
	setTrue(q, "only_me", o.OnlyMe)
	setTrue(q, "only_editable", o.OnlyEditable)
	setTrue(q, "sort_pinned", o.SortPinned)
	return q
}

// ProjectParams describes a new project.
type ProjectParams struct {
	Name           string   `json:"name"`
	ClientID       *int64   `json:"client_id,omitempty"`
	Color          string   `json:"color,omitempty"`
	IsPrivate      bool     `json:"is_private"`
	Active         *bool    `json:"active,omitempty"`
	Billable       *bool    `json:"billable,omitempty"`
	Rate           *float64 `json:"rate,omitempty"`
	EstimatedHours *int64   `json:"estimated_hours,omitempty"`
}

// ProjectsService handles /workspaces/{wid}/projects.
type ProjectsService struct{ c *Client }

// List returns a workspace's projects. PerPage is capped at 200.
func (s *ProjectsService) List(ctx context.Context, workspaceID int64, opts ProjectListOptions) ([]Project, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	q := opts.values()
	target := s.c.apiURL("/workspaces/%d/projects", workspaceID)
	page := opts.PageOptions.normalized(defaultProjectsPerPage, maxProjectsPerPage)
	return walkPages(ctx, page, func(ctx context.Context, p, perPage int) ([]Project, error) {
		data, err := s.c.send(ctx, http.MethodGet, target, setPage(cloneValues(q), p, perPage), nil)
		if err != nil {
			return nil, err
		}
		return decodeList[Project]("workspace.projects", data)
	})
}

// Get returns one project.
func (s *ProjectsService) Get(ctx context.Context, workspaceID, id int64) (*Project, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	if err := checkID("project", id); err != nil {
		return nil, err
	}
	var p Project
	if err := s.c.getJSON(ctx, s.c.apiURL("/workspaces/%d/projects/%d", workspaceID, id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create adds a project.
func (s *ProjectsService) Create(ctx context.Context, workspaceID int64, params ProjectParams) (*Project, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	var p Project
	if err := s.c.postJSON(ctx, s.c.apiURL("/workspaces/%d/projects", workspaceID), params, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update replaces the given fields of a project.
func (s *ProjectsService) Update(ctx context.Context, workspaceID, id int64, fields Fields) (*Project, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	if err := checkID("project", id); err != nil {
		return nil, err
	}
	var p Project
	if err := s.c.putJSON(ctx, s.c.apiURL("/workspaces/%d/projects/%d", workspaceID, id), fields.canonical(), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a project.
func (s *ProjectsService) Delete(ctx context.Context, workspaceID, id int64) error {
	if err := checkID("workspace", workspaceID); err != nil {
		return err
	}
	if err := checkID("project", id); err != nil {
		return err
	}
	return s.c.deleteJSON(ctx, s.c.apiURL("/workspaces/%d/projects/%d", workspaceID, id))
}

// ProjectUserListOptions filters project memberships.
type ProjectUserListOptions struct {
	// ProjectIDs holds at most 200 ids.
	ProjectIDs       []int64
	UserID           int64
	WithGroupMembers bool
}

// ProjectUserParams adds a user to a project.
type ProjectUserParams struct {
	ProjectID           int64    `json:"project_id"`
	UserID              int64    `json:"user_id"`
	Manager             bool     `json:"manager"`
	Rate                *float64 `json:"rate,omitempty"`
	LaborCost           *float64 `json:"labor_cost,omitempty"`
	RateChangeMode      string   `json:"rate_change_mode,omitempty"`
	LaborCostChangeMode string   `json:"labor_cost_change_mode,omitempty"`
}

// ProjectUsersService handles /workspaces/{wid}/project_users.
type ProjectUsersService struct{ c *Client }

// List returns project memberships in a workspace.
func (s *ProjectUsersService) List(ctx context.Context, workspaceID int64, opts ProjectUserListOptions) ([]ProjectUser, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	q := url.Values{}
	if len(opts.ProjectIDs) > 0 {
		csv, err := joinIDs("project ids", opts.ProjectIDs, maxProjectIDs)
		if err != nil {
			return nil, err
		}
		q.Set("project_ids", csv)
	}
	setInt64(q, "user_id", opts.UserID)
	setTrue(q, "with_group_members", opts.WithGroupMembers)

	data, err := s.c.send(ctx, http.MethodGet, s.c.apiURL("/workspaces/%d/project_users", workspaceID), q, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[ProjectUser]("workspace.project_users", data)
}

// Add adds a user to a project.
func (s *ProjectUsersService) Add(ctx context.Context, workspaceID int64, params ProjectUserParams) (*ProjectUser, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	var pu ProjectUser
	if err := s.c.postJSON(ctx, s.c.apiURL("/workspaces/%d/project_users", workspaceID), params, &pu); err != nil {
		return nil, err
	}
	return &pu, nil
}

// Update replaces the given fields of a membership.
func (s *ProjectUsersService) Update(ctx context.Context, workspaceID, id int64, fields Fields) (*ProjectUser, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	if err := checkID("project user", id); err != nil {
		return nil, err
	}
	var pu ProjectUser
	if err := s.c.putJSON(ctx, s.c.apiURL("/workspaces/%d/project_users/%d", workspaceID, id), fields.canonical(), &pu); err != nil {
		return nil, err
	}
	return &pu, nil
}

// Patch applies JSON Patch operations to several memberships.
func (s *ProjectUsersService) Patch(ctx context.Context, workspaceID int64, ids []int64, ops []PatchOp) (*PatchResult, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	csv, err := joinIDs("project user ids", ids, 0)
	if err != nil {
		return nil, err
	}
	var res PatchResult
	if err := s.c.patchJSON(ctx, s.c.apiURL("/workspaces/%d/project_users/%s", workspaceID, csv), ops, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Delete removes a user from a project.
func (s *ProjectUsersService) Delete(ctx context.Context, workspaceID, id int64) error {
	if err := checkID("workspace", workspaceID); err != nil {
		return err
	}
	if err := checkID("project user", id); err != nil {
		return err
	}
	return s.c.deleteJSON(ctx, s.c.apiURL("/workspaces/%d/project_users/%d", workspaceID, id))
}
