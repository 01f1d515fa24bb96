package toggl

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

const defaultOrganizationUsersPerPage = 50

// InviteParams invites people to an organization and optionally to some of
// its workspaces.
type InviteParams struct {
	Emails     []string          `json:"emails"`
	Workspaces []InviteWorkspace `json:"workspaces,omitempty"`
}

// InviteWorkspace grants an invitee access to one workspace.
type InviteWorkspace struct {
	WorkspaceID int64 `json:"workspace_id"`
	Admin       bool  `json:"admin"`
}

// OrganizationsService handles /organizations.
type OrganizationsService struct{ c *Client }

// Get returns an organization.
func (s *OrganizationsService) Get(ctx context.Context, id int64) (*Organization, error) {
	if err := checkID("organization", id); err != nil {
		return nil, err
	}
	var o Organization
	if err := s.c.getJSON(ctx, s.c.apiURL("/organizations/%d", id), nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Update replaces the given fields of an organization.
func (s *OrganizationsService) Update(ctx context.Context, id int64, fields Fields) (*Organization, error) {
	if err := checkID("organization", id); err != nil {
		return nil, err
	}
	var o Organization
	if err := s.c.putJSON(ctx, s.c.apiURL("/organizations/%d", id), fields.canonical(), &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Users returns an organization's members.
func (s *OrganizationsService) Users(ctx context.Context, id int64, opts PageOptions) ([]OrganizationUser, error) {
	if err := checkID("organization", id); err != nil {
		return nil, err
	}
	target := s.c.apiURL("/organizations/%d/users", id)
	page := opts.normalized(defaultOrganizationUsersPerPage, 0)
	return walkPages(ctx, page, func(ctx context.Context, p, perPage int) ([]OrganizationUser, error) {
		data, err := s.c.send(ctx, http.MethodGet, target, setPage(url.Values{}, p, perPage), nil)
		if err != nil {
			return nil, err
		}
		return decodeList[OrganizationUser]("organization.users", data)
	})
}

// Invite sends invitations and returns the server's response as is.
func (s *OrganizationsService) Invite(ctx context.Context, id int64, params InviteParams) (json.RawMessage, error) {
	if err := checkID("organization", id); err != nil {
		return nil, err
	}
	if len(params.Emails) == 0 {
		return nil, ErrNoEmails
	}
	data, err := s.c.send(ctx, http.MethodPost, s.c.apiURL("/organizations/%d/invitations", id), nil, params)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}
