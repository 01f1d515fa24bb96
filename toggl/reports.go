package toggl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const defaultReportPerPage = 50

// ReportFilter is the JSON body shared by the report endpoints. Dates are
// YYYY-MM-DD.
type ReportFilter struct {
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Description string  `json:"description,omitempty"`
	ProjectIDs  []int64 `json:"project_ids,omitempty"`
	ClientIDs   []int64 `json:"client_ids,omitempty"`
	TagIDs      []int64 `json:"tag_ids,omitempty"`
	UserIDs     []int64 `json:"user_ids,omitempty"`
	Billable    *bool   `json:"billable,omitempty"`
}

// Report is an aggregate produced per request. Items keep the row layout of
// the report type they came from.
type Report struct {
	TotalGrand      *int64            `json:"total_grand,omitempty"`
	TotalBillable   *int64            `json:"total_billable,omitempty"`
	TotalCurrencies []CurrencyTotal   `json:"total_currencies,omitempty"`
	Items           []json.RawMessage `json:"items"`
}

// CurrencyTotal is a billable amount in one currency.
type CurrencyTotal struct {
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}

// ReportsService handles the Reports API.
type ReportsService struct{ c *Client }

// Summary returns totals grouped by project or user.
func (s *ReportsService) Summary(ctx context.Context, workspaceID int64, f ReportFilter) (*Report, error) {
	return s.post(ctx, workspaceID, "summary", f)
}

// Weekly returns per-day totals for each week in range.
func (s *ReportsService) Weekly(ctx context.Context, workspaceID int64, f ReportFilter) (*Report, error) {
	return s.post(ctx, workspaceID, "weekly", f)
}

// Detailed returns individual entries. The page and page size travel in the
// request body; with AutoPaginate only Items are filled.
func (s *ReportsService) Detailed(ctx context.Context, workspaceID int64, f ReportFilter, opts PageOptions) (*Report, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	target := s.c.reportURL("/workspace/%d/details/time_entries", workspaceID)
	page := opts.normalized(defaultReportPerPage, 0)

	fetch := func(ctx context.Context, p, perPage int) (*Report, error) {
		body := struct {
			ReportFilter
			Page    int `json:"page"`
			PerPage int `json:"per_page"`
		}{f, p, perPage}
		data, err := s.c.send(ctx, http.MethodPost, target, nil, body)
		if err != nil {
			return nil, err
		}
		return decodeReport(data)
	}

	if !page.AutoPaginate {
		return fetch(ctx, page.Page, page.PerPage)
	}
	items, err := walkPages(ctx, page, func(ctx context.Context, p, perPage int) ([]json.RawMessage, error) {
		r, err := fetch(ctx, p, perPage)
		if err != nil {
			return nil, err
		}
		return r.Items, nil
	})
	if err != nil {
		return nil, err
	}
	return &Report{Items: items}, nil
}

func (s *ReportsService) post(ctx context.Context, workspaceID int64, kind string, f ReportFilter) (*Report, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	data, err := s.c.send(ctx, http.MethodPost, s.c.reportURL("/workspace/%d/%s/time_entries", workspaceID, kind), nil, f)
	if err != nil {
		return nil, err
	}
	return decodeReport(data)
}

// decodeReport accepts a bare row array or an object carrying rows under
// items, data or groups.
func decodeReport(data []byte) (*Report, error) {
	r := &Report{Items: []json.RawMessage{}}
	if isNull(data) {
		return r, nil
	}
	trimmed := bytes.TrimSpace(data)
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &r.Items); err != nil {
			return nil, fmt.Errorf("decode report: %w", err)
		}
		return r, nil
	}

	var raw struct {
		Report
		Data   []json.RawMessage `json:"data"`
		Groups []json.RawMessage `json:"groups"`
	}
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	*r = raw.Report
	switch {
	case r.Items != nil:
	case raw.Data != nil:
		r.Items = raw.Data
	case raw.Groups != nil:
		r.Items = raw.Groups
	default:
		r.Items = []json.RawMessage{}
	}
	return r, nil
}
