package toggl

import (
	"encoding/json"
	"time"
)

// User is the authenticated account (/me).
type User struct {
	ID                 int64      `json:"id"`
	Email              string     `json:"email"`
	Fullname           string     `json:"fullname"`
	APIToken           string     `json:"api_token,omitempty"`
	DefaultWorkspaceID int64      `json:"default_workspace_id"`
	Timezone           string     `json:"timezone"`
	BeginningOfWeek    int        `json:"beginning_of_week"`
	ImageURL           string     `json:"image_url"`
	CreatedAt          *time.Time `json:"created_at,omitempty"`
	UpdatedAt          *time.Time `json:"at,omitempty"`
}

// Project belongs to a workspace and optionally to a client.
type Project struct {
	ID             int64      `json:"id"`
	WorkspaceID    int64      `json:"workspace_id"`
	ClientID       *int64     `json:"client_id,omitempty"`
	ClientName     string     `json:"client_name,omitempty"`
	Name           string     `json:"name"`
	Color          string     `json:"color"`
	Active         bool       `json:"active"`
	Billable       *bool      `json:"billable,omitempty"`
	IsPrivate      bool       `json:"is_private"`
	Rate           *float64   `json:"rate,omitempty"`
	EstimatedHours *int64     `json:"estimated_hours,omitempty"`
	ActualHours    *int64     `json:"actual_hours,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
	At             *time.Time `json:"at,omitempty"`
}

// UnmarshalJSON accepts legacy id names; the current name wins when both appear.
func (p *Project) UnmarshalJSON(b []byte) error {
	type plain Project
	var raw struct {
		plain
		legacyIDs
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*p = Project(raw.plain)
	p.WorkspaceID = raw.workspace(p.WorkspaceID)
	if p.ClientID == nil {
		p.ClientID = raw.Cid
	}
	return nil
}

// Customer is a Toggl Track client record, the party projects are billed to.
type Customer struct {
	ID          int64      `json:"id"`
	WorkspaceID int64      `json:"workspace_id"`
	Name        string     `json:"name"`
	Archived    bool       `json:"archived"`
	Notes       string     `json:"notes,omitempty"`
	At          *time.Time `json:"at,omitempty"`
}

// UnmarshalJSON accepts legacy id names; the current name wins when both appear.
func (c *Customer) UnmarshalJSON(b []byte) error {
	type plain Customer
	var raw struct {
		plain
		legacyIDs
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*c = Customer(raw.plain)
	c.WorkspaceID = raw.workspace(c.WorkspaceID)
	return nil
}

// Tag is a workspace-scoped label for time entries.
type Tag struct {
	ID          int64      `json:"id"`
	WorkspaceID int64      `json:"workspace_id"`
	Name        string     `json:"name"`
	At          *time.Time `json:"at,omitempty"`
}

// UnmarshalJSON accepts legacy id names; the current name wins when both appear.
func (t *Tag) UnmarshalJSON(b []byte) error {
	type plain Tag
	var raw struct {
		plain
		legacyIDs
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*t = Tag(raw.plain)
	t.WorkspaceID = raw.workspace(t.WorkspaceID)
	return nil
}

// Workspace is the top-level container for projects, clients, tags and
// entries.
type Workspace struct {
	ID                        int64      `json:"id"`
	OrganizationID            int64      `json:"organization_id"`
	Name                      string     `json:"name"`
	Premium                   bool       `json:"premium"`
	BusinessWS                bool       `json:"business_ws"`
	Admin                     bool       `json:"admin"`
	DefaultHourlyRate         *float64   `json:"default_hourly_rate,omitempty"`
	DefaultCurrency           string     `json:"default_currency"`
	ProjectsBillableByDefault bool       `json:"projects_billable_by_default"`
	Rounding                  *int       `json:"rounding,omitempty"`
	RoundingMinutes           *int       `json:"rounding_minutes,omitempty"`
	At                        *time.Time `json:"at,omitempty"`
}

// Task is a sub-unit of a project.
type Task struct {
	ID               int64      `json:"id"`
	WorkspaceID      int64      `json:"workspace_id"`
	ProjectID        int64      `json:"project_id"`
	UserID           *int64     `json:"user_id,omitempty"`
	Name             string     `json:"name"`
	Active           bool       `json:"active"`
	EstimatedSeconds *int64     `json:"estimated_seconds,omitempty"`
	TrackedSeconds   *int64     `json:"tracked_seconds,omitempty"`
	At               *time.Time `json:"at,omitempty"`
}

// UnmarshalJSON accepts legacy id names; the current name wins when both appear.
func (t *Task) UnmarshalJSON(b []byte) error {
	type plain Task
	var raw struct {
		plain
		legacyIDs
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*t = Task(raw.plain)
	t.WorkspaceID = raw.workspace(t.WorkspaceID)
	if t.ProjectID == 0 && raw.Pid != nil {
		t.ProjectID = *raw.Pid
	}
	if t.UserID == nil {
		t.UserID = raw.UID
	}
	return nil
}

// Group is a set of workspace users.
type Group struct {
	ID          int64      `json:"id"`
	WorkspaceID int64      `json:"workspace_id"`
	Name        string     `json:"name"`
	UserIDs     []int64    `json:"user_ids,omitempty"`
	At          *time.Time `json:"at,omitempty"`
}

// UnmarshalJSON accepts legacy id names; the current name wins when both appear.
func (g *Group) UnmarshalJSON(b []byte) error {
	type plain Group
	var raw struct {
		plain
		legacyIDs
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*g = Group(raw.plain)
	g.WorkspaceID = raw.workspace(g.WorkspaceID)
	return nil
}

// ProjectUser links a user to a project with optional rates.
type ProjectUser struct {
	ID          int64      `json:"id"`
	ProjectID   int64      `json:"project_id"`
	UserID      int64      `json:"user_id"`
	WorkspaceID int64      `json:"workspace_id"`
	Manager     bool       `json:"manager"`
	Rate        *float64   `json:"rate,omitempty"`
	LaborCost   *float64   `json:"labor_cost,omitempty"`
	At          *time.Time `json:"at,omitempty"`
}

// WorkspaceUser is a member of a workspace.
type WorkspaceUser struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	WorkspaceID int64      `json:"workspace_id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Admin       bool       `json:"admin"`
	Active      bool       `json:"active"`
	Rate        *float64   `json:"rate,omitempty"`
	LaborCost   *float64   `json:"labor_cost,omitempty"`
	GroupIDs    []int64    `json:"group_ids,omitempty"`
	At          *time.Time `json:"at,omitempty"`
}

// UnmarshalJSON accepts legacy id names; the current name wins when both appear.
func (u *WorkspaceUser) UnmarshalJSON(b []byte) error {
	type plain WorkspaceUser
	var raw struct {
		plain
		legacyIDs
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*u = WorkspaceUser(raw.plain)
	u.WorkspaceID = raw.workspace(u.WorkspaceID)
	if u.UserID == 0 && raw.UID != nil {
		u.UserID = *raw.UID
	}
	return nil
}

// Webhook is a workspace event subscription.
type Webhook struct {
	ID           int64      `json:"id"`
	WorkspaceID  int64      `json:"workspace_id"`
	URL          string     `json:"url"`
	Description  string     `json:"description,omitempty"`
	Enabled      bool       `json:"enabled"`
	EventFilters []string   `json:"event_filters"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

// Expense is a billable cost recorded against a workspace.
type Expense struct {
	ID          int64      `json:"id"`
	WorkspaceID int64      `json:"workspace_id"`
	ProjectID   *int64     `json:"project_id,omitempty"`
	UserID      *int64     `json:"user_id,omitempty"`
	Description string     `json:"description,omitempty"`
	Amount      float64    `json:"amount"`
	Currency    string     `json:"currency,omitempty"`
	Date        string     `json:"date,omitempty"`
	Billable    bool       `json:"billable"`
	At          *time.Time `json:"at,omitempty"`
}

// Organization groups workspaces under one billing account.
type Organization struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	PricingPlanID int64      `json:"pricing_plan_id,omitempty"`
	MaxWorkspaces int        `json:"max_workspaces,omitempty"`
	Admin         bool       `json:"admin"`
	Owner         bool       `json:"owner"`
	UserCount     int        `json:"user_count,omitempty"`
	IsMultiWS     bool       `json:"is_multi_workspace_enabled"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	At            *time.Time `json:"at,omitempty"`
}

// OrganizationUser is a member of an organization.
type OrganizationUser struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Admin    bool   `json:"admin"`
	Owner    bool   `json:"owner"`
	Inactive bool   `json:"inactive"`
}

// legacyIDs captures the short field names older payloads use.
type legacyIDs struct {
	Wid *int64 `json:"wid"`
	Pid *int64 `json:"pid"`
	Tid *int64 `json:"tid"`
	UID *int64 `json:"uid"`
	Cid *int64 `json:"cid"`
}

func (l legacyIDs) workspace(current int64) int64 {
	if current == 0 && l.Wid != nil {
		return *l.Wid
	}
	return current
}

// Fields is a free-form attribute set for update calls. Legacy names (wid,
// pid, tid, uid, cid) are accepted and sent under their current names; when
// both spellings are given the current name wins.
type Fields map[string]any

var legacyFieldNames = map[string]string{
	"wid": "workspace_id",
	"pid": "project_id",
	"tid": "task_id",
	"uid": "user_id",
	"cid": "client_id",
}

func (f Fields) canonical() map[string]any {
	out := make(map[string]any, len(f))
	for k, v := range f {
		if _, legacy := legacyFieldNames[k]; !legacy {
			out[k] = v
		}
	}
	for k, v := range f {
		name, legacy := legacyFieldNames[k]
		if !legacy {
			continue
		}
		if _, set := out[name]; !set {
			out[name] = v
		}
	}
	return out
}
