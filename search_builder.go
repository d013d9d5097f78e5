package lookup

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/lookup/internal/domain/search/result"
)

// QueryBuilder is a fluent builder for search queries.
type QueryBuilder struct {
	client *Client

	query string
	cats  []Category
	limit int
	quick bool
}

// Query starts a search for q.
func (c *Client) Query(q string) *QueryBuilder {
	return &QueryBuilder{client: c, query: q}
}

// Categories restricts the search to the given categories.
// Calling it more than once adds to the set.
func (b *QueryBuilder) Categories(cats ...Category) *QueryBuilder {
	b.cats = append(b.cats, cats...)
	return b
}

// Limit sets the maximum number of results.
func (b *QueryBuilder) Limit(n int) *QueryBuilder {
	b.limit = n
	return b
}

// Quick switches to autocomplete: all categories and the quick limit
// unless Limit is set. Categories are ignored.
func (b *QueryBuilder) Quick() *QueryBuilder {
	b.quick = true
	return b
}

// Do executes the search.
func (b *QueryBuilder) Do(ctx context.Context) ([]Result, error) {
	resp, err := b.DoWithReport(ctx)
	return resp.Results, err
}

// DoWithReport executes the search and also reports failed categories.
func (b *QueryBuilder) DoWithReport(ctx context.Context) (Response, error) {
	svc := b.client.searchSvc
	switch {
	case b.quick:
		return b.client.search(ctx, "quick", func(ctx context.Context) ([]result.Result, error) {
			return svc.Quick(ctx, b.query, b.limit)
		})
	case len(b.cats) == 1:
		return b.client.search(ctx, "search_category", func(ctx context.Context) ([]result.Result, error) {
			return svc.SearchCategory(ctx, b.cats[0], b.query, b.limit)
		})
	default:
		return b.client.search(ctx, "search", func(ctx context.Context) ([]result.Result, error) {
			return svc.Search(ctx, b.query, b.limit, b.cats)
		})
	}
}

// String describes the query for logs.
func (b *QueryBuilder) String() string {
	return fmt.Sprintf("query=%q categories=%v limit=%d quick=%t", b.query, b.cats, b.limit, b.quick)
}
