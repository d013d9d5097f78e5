package lookup

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/lookup/internal/domain"
	"github.com/kailas-cloud/lookup/internal/domain/search/result"
)

// Response is a search result list with the categories that could not be
// fetched. A non-empty Failed means the list is partial.
type Response struct {
	Results []Result
	Failed  []Category
}

// Partial reports whether any category was left out.
func (r Response) Partial() bool { return len(r.Failed) > 0 }

// Search runs a full search over cats (all categories when none are given).
// limit <= 0 selects the default limit.
func (c *Client) Search(ctx context.Context, query string, limit int, cats ...Category) ([]Result, error) {
	resp, err := c.search(ctx, "search", func(ctx context.Context) ([]result.Result, error) {
		return c.searchSvc.Search(ctx, query, limit, cats)
	})
	return resp.Results, err
}

// Quick runs an autocomplete search over all categories.
// limit <= 0 selects the quick limit.
func (c *Client) Quick(ctx context.Context, query string, limit int) ([]Result, error) {
	resp, err := c.search(ctx, "quick", func(ctx context.Context) ([]result.Result, error) {
		return c.searchSvc.Quick(ctx, query, limit)
	})
	return resp.Results, err
}

// SearchCategory runs a search restricted to one category.
func (c *Client) SearchCategory(ctx context.Context, cat Category, query string, limit int) ([]Result, error) {
	resp, err := c.search(ctx, "search_category", func(ctx context.Context) ([]result.Result, error) {
		return c.searchSvc.SearchCategory(ctx, cat, query, limit)
	})
	return resp.Results, err
}

func (c *Client) search(
	ctx context.Context, op string, run func(context.Context) ([]result.Result, error),
) (resp Response, err error) {
	start := time.Now()
	defer func() { c.obs.observe(op, start, err) }()

	ctx, report := domain.NewContextWithReport(c.scoped(ctx))
	results, err := run(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("%s: %w", op, err)
	}

	failed := report.Failed()
	c.obs.partial(op, failed)

	resp.Results = fromInternalResults(results)
	for _, name := range failed {
		if cat, perr := ParseCategory(name); perr == nil {
			resp.Failed = append(resp.Failed, cat)
		}
	}
	return resp, nil
}

func fromInternalResults(results []result.Result) []Result {
	out := make([]Result, len(results))
	for i := range results {
		r := &results[i]
		out[i] = Result{
			Category:    r.Category(),
			ID:          r.ID(),
			Title:       r.Title(),
			Subtitle:    r.Subtitle(),
			Description: r.Description(),
			URL:         r.URL(),
			Icon:        r.Icon(),
			Score:       r.Score(),
		}
	}
	return out
}
