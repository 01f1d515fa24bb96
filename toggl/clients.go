package toggl

import (
	"context"
	"net/http"
	"net/url"
)

// CustomerParams describes a new client.
type CustomerParams struct {
	Name  string `json:"name"`
	Notes string `json:"notes,omitempty"`
}

// ClientsService handles /workspaces/{wid}/clients.
type ClientsService struct{ c *Client }

// List returns a workspace's clients. Status filters archived ones: "active",
// "archived" or "both".
func (s *ClientsService) List(ctx context.Context, workspaceID int64, status string) ([]Customer, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	q := url.Values{}
	setString(q, "status", status)
	data, err := s.c.send(ctx, http.MethodGet, s.c.apiURL("/workspaces/%d/clients", workspaceID), q, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[Customer]("workspace.clients", data)
}

// Get returns one client.
func (s *ClientsService) Get(ctx context.Context, workspaceID, id int64) (*Customer, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	if err := checkID("client", id); err != nil {
		return nil, err
	}
	var cu Customer
	if err := s.c.getJSON(ctx, s.c.apiURL("/workspaces/%d/clients/%d", workspaceID, id), nil, &cu); err != nil {
		return nil, err
	}
	return &cu, nil
}

// Create adds a client.
func (s *ClientsService) Create(ctx context.Context, workspaceID int64, params CustomerParams) (*Customer, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	var cu Customer
	if err := s.c.postJSON(ctx, s.c.apiURL("/workspaces/%d/clients", workspaceID), params, &cu); err != nil {
		return nil, err
	}
	return &cu, nil
}

// Update replaces the given fields of a client.
func (s *ClientsService) Update(ctx context.Context, workspaceID, id int64, fields Fields) (*Customer, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	if err := checkID("client", id); err != nil {
		return nil, err
	}
	var cu Customer
	if err := s.c.putJSON(ctx, s.c.apiURL("/workspaces/%d/clients/%d", workspaceID, id), fields.canonical(), &cu); err != nil {
		return nil, err
	}
	return &cu, nil
}

// Delete removes a client.
func (s *ClientsService) Delete(ctx context.Context, workspaceID, id int64) error {
	if err := checkID("workspace", workspaceID); err != nil {
		return err
	}
	if err := checkID("client", id); err != nil {
		return err
	}
	return s.c.deleteJSON(ctx, s.c.apiURL("/workspaces/%d/clients/%d", workspaceID, id))
}
