package toggl

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectsList_FiltersAndPerPageCap(t *testing.T) {
	var (
		mu      sync.Mutex
		queries []string
	)
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v9/workspaces/3/projects", r.URL.Path)
		q := r.URL.Query()
		mu.Lock()
		queries = append(queries, q.Encode())
		mu.Unlock()
		page, _ := strconv.Atoi(q.Get("page"))
		n := 200
		if page == 2 {
			n = 1
		}
		items := make([]map[string]any, n)
		for i := range items {
			items[i] = map[string]any{"id": page*1000 + i, "wid": 3, "name": "p"}
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	}))

	projects, err := c.Projects.List(testContext(t), 3, ProjectListOptions{
		Active:      Bool(false),
		ClientIDs:   []int64{7, 8},
		OnlyMe:      true,
		PageOptions: PageOptions{PerPage: 500, AutoPaginate: true},
	})
	require.NoError(t, err)
	assert.Len(t, projects, 201)
	assert.Equal(t, int64(3), projects[0].WorkspaceID)

	require.Len(t, queries, 2)
	assert.Equal(t, "active=false&client_ids=7%2C8&only_me=true&page=1&per_page=200", queries[0])
	assert.Equal(t, "active=false&client_ids=7%2C8&only_me=true&page=2&per_page=200", queries[1])
}

func TestProjectsCreate_SendsParams(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusOK, map[string]any{"id": 5, "workspace_id": 3, "name": body["name"], "client_id": 9})
	}))

	p, err := c.Projects.Create(testContext(t), 3, ProjectParams{Name: "Site", ClientID: Int64(9), IsPrivate: true})
	require.NoError(t, err)
	assert.Equal(t, "Site", p.Name)
	assert.Equal(t, map[string]any{"name": "Site", "client_id": float64(9), "is_private": true}, body)
}

func TestProjectUsersList_RejectsTooManyProjects(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusOK, []any{})
	}))

	ids := make([]int64, 201)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	_, err := c.ProjectUsers.List(testContext(t), 1, ProjectUserListOptions{ProjectIDs: ids})
	require.ErrorIs(t, err, ErrTooManyIDs)
	assert.Equal(t, int32(0), calls.Load())

	_, err = c.ProjectUsers.List(testContext(t), 1, ProjectUserListOptions{ProjectIDs: ids[:200]})
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWorkspaceUsers_ListAndRemove(t *testing.T) {
	var removed map[string][]int64
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v9/organizations/2/workspaces/3/workspace_users", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, []map[string]any{
				{"id": 1, "uid": 11, "wid": 3, "email": "a@example.com"},
				{"id": 2, "user_id": 12, "workspace_id": 3, "email": "b@example.com"},
			})
		case http.MethodPatch:
			_ = json.NewDecoder(r.Body).Decode(&removed)
			w.WriteHeader(http.StatusOK)
		}
	}))
	ctx := testContext(t)

	users, err := c.WorkspaceUsers.List(ctx, 2, 3, WorkspaceUserListOptions{PageOptions: PageOptions{AutoPaginate: true}})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, int64(11), users[0].UserID)
	assert.Equal(t, int64(3), users[0].WorkspaceID)

	require.NoError(t, c.WorkspaceUsers.Remove(ctx, 2, 3, []int64{1, 2}))
	assert.Equal(t, map[string][]int64{"delete": {1, 2}}, removed)
}

func TestReportsDetailed_PagesInBody(t *testing.T) {
	var (
		mu     sync.Mutex
		bodies []map[string]any
	)
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reports/api/v3/workspace/4/details/time_entries", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		mu.Lock()
		bodies = append(bodies, body)
		mu.Unlock()

		n := 2
		if body["page"] == float64(2) {
			n = 1
		}
		rows := make([]map[string]any, n)
		for i := range rows {
			rows[i] = map[string]any{"user_id": 1, "description": "row"}
		}
		writeJSON(w, http.StatusOK, rows)
	}))

	rep, err := c.Reports.Detailed(testContext(t), 4,
		ReportFilter{StartDate: "2024-01-01", EndDate: "2024-01-31", ProjectIDs: []int64{5}},
		PageOptions{PerPage: 2, AutoPaginate: true},
	)
	require.NoError(t, err)
	assert.Len(t, rep.Items, 3)

	require.Len(t, bodies, 2)
	assert.Equal(t, "2024-01-01", bodies[0]["start_date"])
	assert.Equal(t, []any{float64(5)}, bodies[0]["project_ids"])
	assert.Equal(t, float64(1), bodies[0]["page"])
	assert.Equal(t, float64(2), bodies[0]["per_page"])
	assert.Equal(t, float64(2), bodies[1]["page"])
}

func TestReportsSummary_DecodesTotals(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reports/api/v3/workspace/4/summary/time_entries", r.URL.Path)
		_, _ = w.Write([]byte(`{"total_grand":7200,"total_billable":3600,
			"total_currencies":[{"currency":"EUR","amount":120.5}],
			"groups":[{"id":1,"sub_groups":[]},{"id":2,"sub_groups":[]}]}`))
	}))

	rep, err := c.Reports.Summary(testContext(t), 4, ReportFilter{StartDate: "2024-01-01", EndDate: "2024-01-31"})
	require.NoError(t, err)
	require.NotNil(t, rep.TotalGrand)
	assert.Equal(t, int64(7200), *rep.TotalGrand)
	require.Len(t, rep.TotalCurrencies, 1)
	assert.Equal(t, "EUR", rep.TotalCurrencies[0].Currency)
	assert.Len(t, rep.Items, 2)
}

func TestWebhooks_CRUDAndPing(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v9/workspaces/1/webhooks":
			var p WebhookParams
			_ = json.NewDecoder(r.Body).Decode(&p)
			writeJSON(w, http.StatusOK, Webhook{ID: 8, WorkspaceID: 1, URL: p.URL, Enabled: p.Enabled, EventFilters: p.EventFilters})
		case r.Method == http.MethodPost && r.URL.Path == "/api/v9/workspaces/1/webhooks/8/ping":
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/v9/workspaces/1/webhooks/8":
			w.WriteHeader(http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	}))
	ctx := testContext(t)

	hook, err := c.Webhooks.Create(ctx, 1, WebhookParams{URL: "https://example.com/hook", Enabled: true})
	require.NoError(t, err)
	assert.Equal(t, int64(8), hook.ID)
	assert.NotNil(t, hook.EventFilters)

	raw, err := c.Webhooks.Ping(ctx, 1, hook.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok"}`, string(raw))

	require.NoError(t, c.Webhooks.Delete(ctx, 1, hook.ID))

	_, err = c.Webhooks.Get(ctx, 1, 99)
	assert.True(t, IsNotFound(err))
}

func TestOrganizationsInvite_RequiresEmail(t *testing.T) {
	c := newTestClient(t, http.NotFoundHandler())
	_, err := c.Organizations.Invite(testContext(t), 1, InviteParams{})
	require.ErrorIs(t, err, ErrNoEmails)
}

func TestTasks_ProjectScopedPaths(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.Method+" "+r.URL.Path+"?"+r.URL.RawQuery)
		mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			if r.URL.Path == "/api/v9/workspaces/1/tasks" {
				writeJSON(w, http.StatusOK, map[string]any{"data": []map[string]any{
					{"id": 5, "wid": 1, "pid": 2, "name": "write"},
				}})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"id": 5, "workspace_id": 1, "project_id": 2, "name": "write"})
		case http.MethodDelete:
			w.WriteHeader(http.StatusOK)
		default:
			writeJSON(w, http.StatusOK, map[string]any{"id": 5, "workspace_id": 1, "project_id": 2})
		}
	}))
	ctx := testContext(t)

	tasks, err := c.Tasks.List(ctx, 1, TaskListOptions{ProjectID: 2, Active: Bool(true)})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, int64(2), tasks[0].ProjectID)
	assert.Equal(t, int64(1), tasks[0].WorkspaceID)

	task, err := c.Tasks.Get(ctx, 1, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, "write", task.Name)

	_, err = c.Tasks.Create(ctx, 1, TaskParams{ProjectID: 2, Name: "write"})
	require.NoError(t, err)
	require.NoError(t, c.Tasks.Delete(ctx, 1, 2, 5))

	_, err = c.Tasks.Create(ctx, 1, TaskParams{Name: "orphan"})
	require.ErrorIs(t, err, ErrInvalidID)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"GET /api/v9/workspaces/1/tasks?active=true&project_id=2",
		"GET /api/v9/workspaces/1/projects/2/tasks/5?",
		"POST /api/v9/workspaces/1/projects/2/tasks?",
		"DELETE /api/v9/workspaces/1/projects/2/tasks/5?",
	}, paths)
}

func TestGroupsAndExpenses_AutoPaginate(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page, _ := strconv.Atoi(q.Get("page"))
		assert.Equal(t, "2", q.Get("per_page"))
		n := 2
		if page == 3 {
			n = 0
		}
		items := make([]map[string]any, n)
		for i := range items {
			items[i] = map[string]any{"id": page*10 + i, "wid": 4}
		}
		if r.URL.Path == "/api/v9/workspaces/4/expenses" {
			assert.Equal(t, "2024-01-01", q.Get("start_date"))
		}
		writeJSON(w, http.StatusOK, items)
	}))
	ctx := testContext(t)

	groups, err := c.Groups.List(ctx, 4, PageOptions{PerPage: 2, AutoPaginate: true})
	require.NoError(t, err)
	require.Len(t, groups, 4)
	assert.Equal(t, int64(10), groups[0].ID)
	assert.Equal(t, int64(21), groups[3].ID)
	assert.Equal(t, int64(4), groups[3].WorkspaceID)

	expenses, err := c.Expenses.List(ctx, 4, ExpenseListOptions{
		StartDate:   "2024-01-01",
		PageOptions: PageOptions{PerPage: 2, AutoPaginate: true, MaxPages: 1},
	})
	require.NoError(t, err)
	assert.Len(t, expenses, 2)
}
