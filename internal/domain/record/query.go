package record

// FetchQuery describes a substring-filtered fetch over one category:
// rows where any of Fields contains Pattern, sorted by SortBy, at most Limit.
type FetchQuery struct {
	Fields  []string
	Pattern string
	Limit   int
	SortBy  string
}
