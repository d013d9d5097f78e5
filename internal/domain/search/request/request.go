package request

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/lookup/internal/domain"
	"github.com/kailas-cloud/lookup/internal/domain/search/category"
)

// Search parameter defaults.
const (
	// MaxQueryLength is the default maximum query length in bytes.
	MaxQueryLength = 256
	DefaultLimit   = 10
	QuickLimit     = 5
	MaxLimit       = 100
)

// Limits bounds request parameters. Zero fields fall back to the package defaults.
type Limits struct {
	DefaultLimit   int
	MaxLimit       int
	MaxQueryLength int
}

// DefaultLimits returns the package defaults.
func DefaultLimits() Limits {
	return Limits{DefaultLimit: DefaultLimit, MaxLimit: MaxLimit, MaxQueryLength: MaxQueryLength}
}

func (l Limits) normalized() Limits {
	d := DefaultLimits()
	if l.DefaultLimit <= 0 {
		l.DefaultLimit = d.DefaultLimit
	}
	if l.MaxLimit <= 0 {
		l.MaxLimit = d.MaxLimit
	}
	if l.DefaultLimit > l.MaxLimit {
		l.DefaultLimit = l.MaxLimit
	}
	if l.MaxQueryLength <= 0 {
		l.MaxQueryLength = d.MaxQueryLength
	}
	return l
}

// Clamp applies the default (limit <= 0) and the maximum to limit.
func (l Limits) Clamp(limit int) int {
	l = l.normalized()
	if limit <= 0 {
		return l.DefaultLimit
	}
	return min(limit, l.MaxLimit)
}

// Request is a validated search query.
type Request struct {
	query      string
	limit      int
	categories []category.Category
}

// New validates and normalizes search parameters.
// The query is trimmed; an empty query is valid and yields no results.
// limit <= 0 selects the default; larger than max is clamped.
// Empty categories means all categories.
func New(query string, limit int, categories []category.Category, lim Limits) (Request, error) {
	lim = lim.normalized()

	query = strings.TrimSpace(query)
	if len(query) > lim.MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d bytes)", domain.ErrInvalidQuery, lim.MaxQueryLength)
	}
	limit = lim.Clamp(limit)
	for _, c := range categories {
		if !c.IsValid() {
			return Request{}, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, c)
		}
	}

	var cats []category.Category
	if len(categories) > 0 {
		cats = make([]category.Category, len(categories))
		copy(cats, categories)
	}

	return Request{query: query, limit: limit, categories: cats}, nil
}

// Query returns the trimmed query text.
func (r *Request) Query() string { return r.query }

// IsEmpty reports whether the query has no searchable text.
func (r *Request) IsEmpty() bool { return r.query == "" }

// Limit returns the maximum number of results.
func (r *Request) Limit() int { return r.limit }

// Categories returns the requested categories; nil means all.
func (r *Request) Categories() []category.Category { return r.categories }

// Includes reports whether results of c are wanted.
func (r *Request) Includes(c category.Category) bool {
	if len(r.categories) == 0 {
		return true
	}
	for _, rc := range r.categories {
		if rc == c {
			return true
		}
	}
	return false
}
