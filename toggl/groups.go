package toggl

import (
	"context"
	"net/http"
	"net/url"
)

const defaultGroupsPerPage = 50

// GroupParams describes a group.
type GroupParams struct {
	Name    string  `json:"name"`
	UserIDs []int64 `json:"user_ids,omitempty"`
}

// GroupsService handles /workspaces/{wid}/groups.
type GroupsService struct{ c *Client }

// List returns a workspace's groups.
func (s *GroupsService) List(ctx context.Context, workspaceID int64, opts PageOptions) ([]Group, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	target := s.c.apiURL("/workspaces/%d/groups", workspaceID)
	page := opts.normalized(defaultGroupsPerPage, 0)
	return walkPages(ctx, page, func(ctx context.Context, p, perPage int) ([]Group, error) {
		data, err := s.c.send(ctx, http.MethodGet, target, setPage(url.Values{}, p, perPage), nil)
		if err != nil {
			return nil, err
		}
		return decodeList[Group]("workspace.groups", data)
	})
}

// Get returns one group.
func (s *GroupsService) Get(ctx context.Context, workspaceID, id int64) (*Group, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	if err := checkID("group", id); err != nil {
		return nil, err
	}
	var g Group
	if err := s.c.getJSON(ctx, s.c.apiURL("/workspaces/%d/groups/%d", workspaceID, id), nil, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// Create adds a group.
func (s *GroupsService) Create(ctx context.Context, workspaceID int64, params GroupParams) (*Group, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	var g Group
	if err := s.c.postJSON(ctx, s.c.apiURL("/workspaces/%d/groups", workspaceID), params, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// Update replaces the given fields of a group.
func (s *GroupsService) Update(ctx context.Context, workspaceID, id int64, fields Fields) (*Group, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	if err := checkID("group", id); err != nil {
		return nil, err
	}
	var g Group
	if err := s.c.putJSON(ctx, s.c.apiURL("/workspaces/%d/groups/%d", workspaceID, id), fields.canonical(), &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// Delete removes a group.
func (s *GroupsService) Delete(ctx context.Context, workspaceID, id int64) error {
	if err := checkID("workspace", workspaceID); err != nil {
		return err
	}
	if err := checkID("group", id); err != nil {
		return err
	}
	return s.c.deleteJSON(ctx, s.c.apiURL("/workspaces/%d/groups/%d", workspaceID, id))
}
