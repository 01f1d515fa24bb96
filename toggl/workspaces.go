package toggl

import (
	"context"
	"net/http"
	"net/url"
)

const defaultWorkspaceUsersPerPage = 50

// WorkspaceParams describes a new workspace.
type WorkspaceParams struct {
	Name                        string `json:"name"`
	DefaultCurrency             string `json:"default_currency,omitempty"`
	ProjectsBillableByDefault   *bool  `json:"projects_billable_by_default,omitempty"`
	OnlyAdminsMayCreateProjects *bool  `json:"only_admins_may_create_projects,omitempty"`
}

// WorkspacesService handles /workspaces.
type WorkspacesService struct{ c *Client }

// List returns every workspace the user belongs to.
func (s *WorkspacesService) List(ctx context.Context) ([]Workspace, error) {
	data, err := s.c.send(ctx, http.MethodGet, s.c.apiURL("/workspaces"), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[Workspace]("workspaces", data)
}

// Get returns one workspace.
func (s *WorkspacesService) Get(ctx context.Context, id int64) (*Workspace, error) {
	if err := checkID("workspace", id); err != nil {
		return nil, err
	}
	var w Workspace
	if err := s.c.getJSON(ctx, s.c.apiURL("/workspaces/%d", id), nil, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// Create adds a workspace to an organization.
func (s *WorkspacesService) Create(ctx context.Context, organizationID int64, params WorkspaceParams) (*Workspace, error) {
	if err := checkID("organization", organizationID); err != nil {
		return nil, err
	}
	var w Workspace
	if err := s.c.postJSON(ctx, s.c.apiURL("/organizations/%d/workspaces", organizationID), params, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// Update replaces the given fields of a workspace.
func (s *WorkspacesService) Update(ctx context.Context, id int64, fields Fields) (*Workspace, error) {
	if err := checkID("workspace", id); err != nil {
		return nil, err
	}
	var w Workspace
	if err := s.c.putJSON(ctx, s.c.apiURL("/workspaces/%d", id), fields.canonical(), &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// Users returns the users of a workspace.
func (s *WorkspacesService) Users(ctx context.Context, id int64) ([]WorkspaceUser, error) {
	if err := checkID("workspace", id); err != nil {
		return nil, err
	}
	data, err := s.c.send(ctx, http.MethodGet, s.c.apiURL("/workspaces/%d/users", id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[WorkspaceUser]("workspace.users", data)
}

// WorkspaceUserListOptions filters workspace memberships.
type WorkspaceUserListOptions struct {
	Active      *bool
	CustomRates *bool
	Name        string
	Search      string
	PageOptions
}

// WorkspaceUsersService handles
// /organizations/{org}/workspaces/{wid}/workspace_users.
type WorkspaceUsersService struct{ c *Client }

// List returns workspace memberships, page by page.
func (s *WorkspaceUsersService) List(ctx context.Context, organizationID, workspaceID int64, opts WorkspaceUserListOptions) ([]WorkspaceUser, error) {
	if err := checkID("organization", organizationID); err != nil {
		return nil, err
	}
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	q := url.Values{}
	setBool(q, "active", opts.Active)
	setBool(q, "custom_rates", opts.CustomRates)
	setString(q, "name", opts.Name)
	setString(q, "search", opts.Search)
	target := s.c.apiURL("/organizations/%d/workspaces/%d/workspace_users", organizationID, workspaceID)

	page := opts.PageOptions.normalized(defaultWorkspaceUsersPerPage, 0)
	return walkPages(ctx, page, func(ctx context.Context, p, perPage int) ([]WorkspaceUser, error) {
		data, err := s.c.send(ctx, http.MethodGet, target, setPage(cloneValues(q), p, perPage), nil)
		if err != nil {
			return nil, err
		}
		return decodeList[WorkspaceUser]("organization.workspace_users", data)
	})
}

// Remove deletes the given workspace users in one request.
func (s *WorkspaceUsersService) Remove(ctx context.Context, organizationID, workspaceID int64, ids []int64) error {
	if err := checkID("organization", organizationID); err != nil {
		return err
	}
	if err := checkID("workspace", workspaceID); err != nil {
		return err
	}
	if _, err := joinIDs("workspace user ids", ids, 0); err != nil {
		return err
	}
	body := map[string][]int64{"delete": ids}
	return s.c.patchJSON(ctx, s.c.apiURL("/organizations/%d/workspaces/%d/workspace_users", organizationID, workspaceID), body, nil)
}
