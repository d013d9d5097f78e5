package result

import "github.com/kailas-cloud/lookup/internal/domain/search/category"

// Result is a single ranked search hit in the uniform projection shared by
// every category.
type Result struct {
	category    category.Category
	id          string
	title       string
	subtitle    string
	description string
	url         string
	icon        string
	score       int
}

// New creates a search result.
func New(
	cat category.Category, id, title, subtitle, description, url, icon string,
	score int,
) Result {
	return Result{
		category: cat, id: id, title: title, subtitle: subtitle,
		description: description, url: url, icon: icon, score: score,
	}
}

// Category returns the category tag.
func (r *Result) Category() category.Category { return r.category }

// ID returns the record identifier.
func (r *Result) ID() string { return r.id }

// Title returns the primary display text.
func (r *Result) Title() string { return r.title }

// Subtitle returns the secondary display text, possibly empty.
func (r *Result) Subtitle() string { return r.subtitle }

// Description returns the longer display text, possibly empty.
func (r *Result) Description() string { return r.description }

// URL returns the navigation target.
func (r *Result) URL() string { return r.url }

// Icon returns the display icon name.
func (r *Result) Icon() string { return r.icon }

// Score returns the relevance score.
func (r *Result) Score() int { return r.score }
