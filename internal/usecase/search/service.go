package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/lookup/internal/domain"
	"github.com/kailas-cloud/lookup/internal/domain/record"
	"github.com/kailas-cloud/lookup/internal/domain/search/category"
	"github.com/kailas-cloud/lookup/internal/domain/search/request"
	"github.com/kailas-cloud/lookup/internal/domain/search/result"
	"github.com/kailas-cloud/lookup/internal/domain/search/score"
	"github.com/kailas-cloud/lookup/internal/logger"
)

// DefaultFetchTimeout bounds a single category fetch.
const DefaultFetchTimeout = 2 * time.Second

// Service aggregates per-category substring fetches into one ranked list.
// It holds no per-call state and is safe for concurrent use.
type Service struct {
	fetcher      Fetcher
	descriptors  []descriptor
	limits       request.Limits
	quickLimit   int
	fetchTimeout time.Duration
	observer     Observer
}

// New creates a search service.
func New(fetcher Fetcher) *Service {
	return &Service{
		fetcher:      fetcher,
		descriptors:  descriptors,
		limits:       request.DefaultLimits(),
		quickLimit:   request.QuickLimit,
		fetchTimeout: DefaultFetchTimeout,
		observer:     nopObserver{},
	}
}

// WithLimits configures request limits. Zero fields keep the defaults.
func (s *Service) WithLimits(lim request.Limits, quickLimit int) *Service {
	s.limits = lim
	if quickLimit > 0 {
		s.quickLimit = quickLimit
	}
	return s
}

// WithFetchTimeout bounds each category fetch.
func (s *Service) WithFetchTimeout(d time.Duration) *Service {
	if d > 0 {
		s.fetchTimeout = d
	}
	return s
}

// WithObserver sets the telemetry sink.
func (s *Service) WithObserver(o Observer) *Service {
	if o != nil {
		s.observer = o
	}
	return s
}

// Search runs a full search over the given categories (all when empty).
// limit <= 0 selects the default limit.
func (s *Service) Search(
	ctx context.Context, query string, limit int, categories []category.Category,
) ([]result.Result, error) {
	req, err := request.New(query, limit, categories, s.limits)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	return s.run(ctx, KindFull, &req)
}

// Quick runs an autocomplete search over all categories.
// limit <= 0 selects the quick limit.
func (s *Service) Quick(ctx context.Context, query string, limit int) ([]result.Result, error) {
	if limit <= 0 {
		limit = s.quickLimit
	}
	req, err := request.New(query, limit, nil, s.limits)
	if err != nil {
		return nil, fmt.Errorf("quick request: %w", err)
	}
	return s.run(ctx, KindQuick, &req)
}

// SearchCategory runs a search restricted to one category.
func (s *Service) SearchCategory(
	ctx context.Context, c category.Category, query string, limit int,
) ([]result.Result, error) {
	req, err := request.New(query, limit, []category.Category{c}, s.limits)
	if err != nil {
		return nil, fmt.Errorf("category request: %w", err)
	}
	return s.run(ctx, KindCategory, &req)
}

// EffectiveLimit returns the result limit a call of the given kind applies.
func (s *Service) EffectiveLimit(kind Kind, limit int) int {
	if kind == KindQuick && limit <= 0 {
		limit = s.quickLimit
	}
	return s.limits.Clamp(limit)
}

// run fans out one fetch per requested category, then merges and ranks.
// A failed category contributes no results; only cancellation of ctx
// itself is returned as an error.
func (s *Service) run(ctx context.Context, kind Kind, req *request.Request) ([]result.Result, error) {
	if req.IsEmpty() {
		return []result.Result{}, nil
	}

	start := time.Now()
	tenant := domain.TenantFromContext(ctx)

	slots := make([][]result.Result, len(s.descriptors))
	g, gctx := errgroup.WithContext(ctx)

	for i, d := range s.descriptors {
		if !req.Includes(d.category) {
			continue
		}
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(gctx, s.fetchTimeout)
			defer cancel()

			res, err := s.fetchCategory(fctx, tenant, d, req)
			if err != nil {
				s.fetchFailed(ctx, tenant, d.category, err)
				return nil
			}
			slots[i] = res
			return nil
		})
	}
	_ = g.Wait() // goroutines never return errors

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	results := rank(merge(slots), req.Limit())
	s.observer.SearchCompleted(kind, time.Since(start), len(results))
	return results, nil
}

// fetchCategory fetches one category and projects each record to a scored result.
func (s *Service) fetchCategory(
	ctx context.Context, tenant string, d descriptor, req *request.Request,
) ([]result.Result, error) {
	recs, err := s.fetcher.Fetch(ctx, tenant, d.category, record.FetchQuery{
		Fields:  d.fields,
		Pattern: req.Query(),
		Limit:   req.Limit(),
		SortBy:  d.sortBy,
	})
	if err != nil {
		return nil, err
	}

	out := make([]result.Result, 0, len(recs))
	for _, rec := range recs {
		v, ok := d.project(rec)
		if !ok {
			continue
		}
		id := rec.RecordID()
		out = append(out, result.New(
			d.category, id, v.title, v.subtitle, v.description,
			d.category.Target(id), d.category.Icon(),
			score.Score(req.Query(), matchText(rec, d.fields)),
		))
	}
	return out, nil
}

// fetchFailed logs and counts a category failure and notes it in the request report.
func (s *Service) fetchFailed(ctx context.Context, tenant string, c category.Category, err error) {
	logger.FromContext(ctx).Warn("Category fetch failed",
		zap.String("category", c.String()),
		zap.String("tenant", tenant),
		zap.Error(err),
	)
	s.observer.FetchFailed(c)
	domain.ReportFromContext(ctx).AddFailure(c.String())
}

// matchText concatenates the matchable field values in descriptor order.
func matchText(rec record.Record, fields []string) string {
	m := record.ToFields(rec)
	values := make([]string, len(fields))
	for i, f := range fields {
		values[i] = m[f]
	}
	return score.Text(values...)
}
