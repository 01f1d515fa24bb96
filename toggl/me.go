package toggl

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

// MeService handles the authenticated user.
type MeService struct{ c *Client }

// Get returns the current user.
func (s *MeService) Get(ctx context.Context) (*User, error) {
	var u User
	if err := s.c.getJSON(ctx, s.c.apiURL("/me"), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetWithRelatedData returns the current user together with their clients,
// projects, tags, tasks, time entries and workspaces.
func (s *MeService) GetWithRelatedData(ctx context.Context) (*RelatedData, error) {
	q := url.Values{"with_related_data": {"true"}}
	data, err := s.c.send(ctx, http.MethodGet, s.c.apiURL("/me"), q, nil)
	if err != nil {
		return nil, err
	}
	return decodeRelated(data)
}

// Update changes profile fields such as fullname, timezone or
// beginning_of_week.
func (s *MeService) Update(ctx context.Context, fields Fields) (*User, error) {
	var u User
	if err := s.c.putJSON(ctx, s.c.apiURL("/me"), fields.canonical(), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// LoggedIn reports whether the credentials are accepted. Only auth failures
// map to false; other errors are returned.
func (s *MeService) LoggedIn(ctx context.Context) (bool, error) {
	_, err := s.c.send(ctx, http.MethodGet, s.c.apiURL("/me/logged"), nil, nil)
	if err == nil {
		return true, nil
	}
	var ae *AuthError
	if errors.As(err, &ae) {
		return false, nil
	}
	return false, err
}

// ResetToken invalidates the API token and returns a new one.
func (s *MeService) ResetToken(ctx context.Context) (string, error) {
	data, err := s.c.send(ctx, http.MethodPost, s.c.apiURL("/me/reset_token"), nil, nil)
	if err != nil {
		return "", err
	}
	var token string
	if err := decodeObject(data, &token); err == nil && token != "" {
		return token, nil
	}
	var obj struct {
		APIToken string `json:"api_token"`
	}
	if err := decodeObject(data, &obj); err != nil {
		return "", err
	}
	return obj.APIToken, nil
}
