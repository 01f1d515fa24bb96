package toggl

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// shape is how an endpoint wraps its list payload.
type shape int

const (
	// shapeArray is a bare JSON array.
	shapeArray shape = iota
	// shapeItems is an object carrying the list under "items".
	shapeItems
	// shapeData is an object carrying the list under "data".
	shapeData
)

// listShapes is keyed by endpoint. Every shape also accepts a bare array and
// null, since the server has changed wrapping between releases.
var listShapes = map[string]shape{
	"me.time_entries":              shapeArray,
	"workspaces":                   shapeArray,
	"workspace.users":              shapeArray,
	"workspace.projects":           shapeItems,
	"workspace.project_users":      shapeItems,
	"workspace.clients":            shapeArray,
	"workspace.tags":               shapeArray,
	"workspace.tasks":              shapeData,
	"workspace.groups":             shapeArray,
	"workspace.webhooks":           shapeArray,
	"workspace.expenses":           shapeArray,
	"organization.users":           shapeItems,
	"organization.workspace_users": shapeItems,
}

// decodeList decodes a list response for endpoint into []T.
func decodeList[T any](endpoint string, data []byte) ([]T, error) {
	s, ok := listShapes[endpoint]
	if !ok {
		return nil, fmt.Errorf("toggl: no decoder registered for %q", endpoint)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}

	if trimmed[0] == '[' {
		var out []T
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return nil, fmt.Errorf("decode %s: %w", endpoint, err)
		}
		return out, nil
	}

	var wrapped struct {
		Items []T `json:"items"`
		Data  []T `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, fmt.Errorf("decode %s: %w", endpoint, err)
	}
	out := wrapped.Items
	if s == shapeData || out == nil {
		if wrapped.Data != nil {
			out = wrapped.Data
		}
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// decodeObject decodes a single object. An empty or null body leaves dest
// untouched.
func decodeObject(data []byte, dest any) error {
	if dest == nil {
		return nil
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(trimmed, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// isNull reports whether a response body carries no value.
func isNull(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// RelatedData is the composite /me?with_related_data=true payload.
type RelatedData struct {
	User        User
	Clients     []Customer
	Projects    []Project
	Tags        []Tag
	Tasks       []Task
	TimeEntries []TimeEntry
	Workspaces  []Workspace
}

// decodeRelated splits the composite payload and decodes each sub-array with
// its own resource decoder.
func decodeRelated(data []byte) (*RelatedData, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode me: %w", err)
	}
	out := &RelatedData{}
	if err := json.Unmarshal(data, &out.User); err != nil {
		return nil, fmt.Errorf("decode me: %w", err)
	}

	var err error
	if out.Clients, err = decodeList[Customer]("workspace.clients", raw["clients"]); err != nil {
		return nil, err
	}
	if out.Projects, err = decodeList[Project]("workspace.projects", raw["projects"]); err != nil {
		return nil, err
	}
	if out.Tags, err = decodeList[Tag]("workspace.tags", raw["tags"]); err != nil {
		return nil, err
	}
	if out.Tasks, err = decodeList[Task]("workspace.tasks", raw["tasks"]); err != nil {
		return nil, err
	}
	if out.TimeEntries, err = decodeList[TimeEntry]("me.time_entries", raw["time_entries"]); err != nil {
		return nil, err
	}
	if out.Workspaces, err = decodeList[Workspace]("workspaces", raw["workspaces"]); err != nil {
		return nil, err
	}
	return out, nil
}
