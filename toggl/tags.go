package toggl

import (
	"context"
	"net/http"
)

// TagsService handles /workspaces/{wid}/tags.
type TagsService struct{ c *Client }

// List returns a workspace's tags.
func (s *TagsService) List(ctx context.Context, workspaceID int64) ([]Tag, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	data, err := s.c.send(ctx, http.MethodGet, s.c.apiURL("/workspaces/%d/tags", workspaceID), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[Tag]("workspace.tags", data)
}

// Get returns one tag.
func (s *TagsService) Get(ctx context.Context, workspaceID, id int64) (*Tag, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	if err := checkID("tag", id); err != nil {
		return nil, err
	}
	var t Tag
	if err := s.c.getJSON(ctx, s.c.apiURL("/workspaces/%d/tags/%d", workspaceID, id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create adds a tag.
func (s *TagsService) Create(ctx context.Context, workspaceID int64, name string) (*Tag, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	body := map[string]string{"name": name}
	var t Tag
	if err := s.c.postJSON(ctx, s.c.apiURL("/workspaces/%d/tags", workspaceID), body, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Update replaces the given fields of a tag.
func (s *TagsService) Update(ctx context.Context, workspaceID, id int64, fields Fields) (*Tag, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	if err := checkID("tag", id); err != nil {
		return nil, err
	}
	var t Tag
	if err := s.c.putJSON(ctx, s.c.apiURL("/workspaces/%d/tags/%d", workspaceID, id), fields.canonical(), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete removes a tag.
func (s *TagsService) Delete(ctx context.Context, workspaceID, id int64) error {
	if err := checkID("workspace", workspaceID); err != nil {
		return err
	}
	if err := checkID("tag", id); err != nil {
		return err
	}
	return s.c.deleteJSON(ctx, s.c.apiURL("/workspaces/%d/tags/%d", workspaceID, id))
}
