package search

import (
	"context"
	"time"

	"github.com/kailas-cloud/lookup/internal/domain/record"
	"github.com/kailas-cloud/lookup/internal/domain/search/category"
)

// Fetcher is the record-query collaborator: a substring-filtered fetch over
// one category of one tenant.
type Fetcher interface {
	Fetch(ctx context.Context, tenant string, c category.Category, q record.FetchQuery) ([]record.Record, error)
}

// Observer receives search telemetry. Implementations must be safe for concurrent use.
type Observer interface {
	SearchCompleted(kind Kind, duration time.Duration, results int)
	FetchFailed(c category.Category)
}

// Kind names the search entry point for telemetry.
type Kind string

// Search kinds.
const (
	KindFull     Kind = "full"
	KindQuick    Kind = "quick"
	KindCategory Kind = "category"
)

type nopObserver struct{}

func (nopObserver) SearchCompleted(Kind, time.Duration, int) {}
func (nopObserver) FetchFailed(category.Category)            {}
