package toggl

import (
	"context"
	"net/url"
	"strconv"
)

// PageOptions controls list pagination.
type PageOptions struct {
	// Page is the first page to fetch, starting at 1.
	Page int
	// PerPage is the page size. Zero uses the endpoint default.
	PerPage int
	// AutoPaginate fetches successive pages until a short page and returns
	// all items in order.
	AutoPaginate bool
	// MaxPages bounds AutoPaginate. Zero means no bound.
	MaxPages int
}

func (o PageOptions) normalized(defaultPerPage, maxPerPage int) PageOptions {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.PerPage <= 0 {
		o.PerPage = defaultPerPage
	}
	if maxPerPage > 0 && o.PerPage > maxPerPage {
		o.PerPage = maxPerPage
	}
	return o
}

// walkPages returns the first page, or with AutoPaginate every page up to
// and including the first one shorter than PerPage. A failing page aborts the
// walk; partial results are never returned.
func walkPages[T any](ctx context.Context, opts PageOptions, fetch func(ctx context.Context, page, perPage int) ([]T, error)) ([]T, error) {
	if !opts.AutoPaginate {
		return fetch(ctx, opts.Page, opts.PerPage)
	}

	var all []T
	for page, fetched := opts.Page, 0; ; page++ {
		if opts.MaxPages > 0 && fetched >= opts.MaxPages {
			break
		}
		items, err := fetch(ctx, page, opts.PerPage)
		if err != nil {
			return nil, err
		}
		fetched++
		all = append(all, items...)
		if len(items) < opts.PerPage || len(items) == 0 {
			break
		}
	}
	if all == nil {
		all = []T{}
	}
	return all, nil
}

func setPage(q url.Values, page, perPage int) url.Values {
	if q == nil {
		q = url.Values{}
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	return q
}

func cloneValues(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	return out
}
