package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/lookup/internal/domain/search/category"
	"github.com/kailas-cloud/lookup/internal/usecase/search"
)

// Search implements search.Observer with Prometheus collectors.
type Search struct {
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	results     *prometheus.HistogramVec
	fetchErrors *prometheus.CounterVec
}

// Compile-time check: Search implements search.Observer.
var _ search.Observer = (*Search)(nil)

// NewSearch creates search collectors on reg. Collectors already registered
// on reg (a second client in the same process) are reused.
func NewSearch(reg prometheus.Registerer) (*Search, error) {
	s := &Search{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "search_requests_total",
			Help:      "Total search calls by kind.",
		}, []string{"kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "search_duration_seconds",
			Help:      "Search duration in seconds, fan-out included.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"kind"}),
		results: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "search_results",
			Help:      "Number of results returned per search.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		}, []string{"kind"}),
		fetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "category_fetch_errors_total",
			Help:      "Category fetches that failed and were dropped from results.",
		}, []string{"category"}),
	}

	if err := RegisterOrReuse(reg, &s.requests); err != nil {
		return nil, err
	}
	if err := RegisterOrReuse(reg, &s.duration); err != nil {
		return nil, err
	}
	if err := RegisterOrReuse(reg, &s.results); err != nil {
		return nil, err
	}
	if err := RegisterOrReuse(reg, &s.fetchErrors); err != nil {
		return nil, err
	}
	return s, nil
}

// SearchCompleted records one finished search.
func (s *Search) SearchCompleted(kind search.Kind, d time.Duration, results int) {
	k := string(kind)
	s.requests.WithLabelValues(k).Inc()
	s.duration.WithLabelValues(k).Observe(d.Seconds())
	s.results.WithLabelValues(k).Observe(float64(results))
}

// FetchFailed counts a dropped category.
func (s *Search) FetchFailed(c category.Category) {
	s.fetchErrors.WithLabelValues(c.String()).Inc()
}

// RegisterOrReuse registers a collector or swaps in the one already registered.
func RegisterOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("register metric: %w", err)
	}
	return nil
}
