package domain

import (
	"context"
	"sync"
)

type searchReportKey struct{}

// SearchReport collects the categories that failed during a single search.
// The handler puts a pointer into the context before calling the service;
// the service records failures; the handler reads them for response headers.
type SearchReport struct {
	mu     sync.Mutex
	failed []string
}

// NewContextWithReport returns a context carrying a fresh report.
func NewContextWithReport(ctx context.Context) (context.Context, *SearchReport) {
	r := &SearchReport{}
	return context.WithValue(ctx, searchReportKey{}, r), r
}

// ReportFromContext extracts the report from context. Returns nil if not set.
func ReportFromContext(ctx context.Context) *SearchReport {
	r, _ := ctx.Value(searchReportKey{}).(*SearchReport)
	return r
}

// AddFailure records a category whose fetch failed. Safe on a nil report.
func (r *SearchReport) AddFailure(category string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.failed = append(r.failed, category)
	r.mu.Unlock()
}

// Failed returns a copy of the failed categories.
func (r *SearchReport) Failed() []string {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.failed))
	copy(out, r.failed)
	return out
}

// Partial reports whether any category failed.
func (r *SearchReport) Partial() bool {
	return len(r.Failed()) > 0
}
