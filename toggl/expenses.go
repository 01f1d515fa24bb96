package toggl

import (
	"context"
	"net/http"
	"net/url"
)

const defaultExpensesPerPage = 50

// ExpenseListOptions filters a workspace's expenses.
type ExpenseListOptions struct {
	StartDate  string
	EndDate    string
	ProjectIDs []int64
	PageOptions
}

// ExpenseParams describes an expense.
type ExpenseParams struct {
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description,omitempty"`
	ProjectID   *int64  `json:"project_id,omitempty"`
	Currency    string  `json:"currency,omitempty"`
	Billable    bool    `json:"billable"`
}

// ExpensesService handles /workspaces/{wid}/expenses.
type ExpensesService struct{ c *Client }

// List returns a workspace's expenses.
func (s *ExpensesService) List(ctx context.Context, workspaceID int64, opts ExpenseListOptions) ([]Expense, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	q := url.Values{}
	setString(q, "start_date", opts.StartDate)
	setString(q, "end_date", opts.EndDate)
	setIDs(q, "project_ids", opts.ProjectIDs)
	target := s.c.apiURL("/workspaces/%d/expenses", workspaceID)

	page := opts.PageOptions.normalized(defaultExpensesPerPage, 0)
	return walkPages(ctx, page, func(ctx context.Context, p, perPage int) ([]Expense, error) {
		data, err := s.c.send(ctx, http.MethodGet, target, setPage(cloneValues(q), p, perPage), nil)
		if err != nil {
			return nil, err
		}
		return decodeList[Expense]("workspace.expenses", data)
	})
}

// Get returns one expense.
func (s *ExpensesService) Get(ctx context.Context, workspaceID, id int64) (*Expense, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	if err := checkID("expense", id); err != nil {
		return nil, err
	}
	var e Expense
	if err := s.c.getJSON(ctx, s.c.apiURL("/workspaces/%d/expenses/%d", workspaceID, id), nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Create records an expense.
func (s *ExpensesService) Create(ctx context.Context, workspaceID int64, params ExpenseParams) (*Expense, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	var e Expense
	if err := s.c.postJSON(ctx, s.c.apiURL("/workspaces/%d/expenses", workspaceID), params, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Update replaces the given fields of an expense.
func (s *ExpensesService) Update(ctx context.Context, workspaceID, id int64, fields Fields) (*Expense, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	if err := checkID("expense", id); err != nil {
		return nil, err
	}
	var e Expense
	if err := s.c.putJSON(ctx, s.c.apiURL("/workspaces/%d/expenses/%d", workspaceID, id), fields.canonical(), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Delete removes an expense.
func (s *ExpensesService) Delete(ctx context.Context, workspaceID, id int64) error {
	if err := checkID("workspace", workspaceID); err != nil {
		return err
	}
	if err := checkID("expense", id); err != nil {
		return err
	}
	return s.c.deleteJSON(ctx, s.c.apiURL("/workspaces/%d/expenses/%d", workspaceID, id))
}
