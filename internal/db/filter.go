package db

import (
	"errors"
	"sort"
	"strings"
)

// FilterQuery is the input for a substring-filtered fetch.
// A row matches when any of Fields contains Pattern, case-insensitively.
type FilterQuery struct {
	Tenant     string
	Collection string
	Fields     []string
	Pattern    string
	Limit      int
	SortBy     string
}

// Validate checks the query shape shared by all drivers.
func (q *FilterQuery) Validate() error {
	if q.Tenant == "" {
		return errors.New("tenant is required")
	}
	if q.Collection == "" {
		return errors.New("collection is required")
	}
	if len(q.Fields) == 0 {
		return errors.New("at least one field is required")
	}
	if q.Limit <= 0 {
		return errors.New("limit must be positive")
	}
	return nil
}

// Row is a single record returned by a filtered fetch.
type Row struct {
	ID     string
	Fields map[string]string
}

// MatchRow reports whether any of fields in row contains the lowercased pattern.
// Drivers without server-side substring matching use it to filter in process.
func MatchRow(fields map[string]string, names []string, lowerPattern string) bool {
	if lowerPattern == "" {
		return true
	}
	for _, name := range names {
		if strings.Contains(strings.ToLower(fields[name]), lowerPattern) {
			return true
		}
	}
	return false
}

// SortRows orders rows by the sortBy field (case-insensitive), then by id.
func SortRows(rows []Row, sortBy string) {
	sort.SliceStable(rows, func(i, j int) bool {
		if sortBy != "" {
			a := strings.ToLower(rows[i].Fields[sortBy])
			b := strings.ToLower(rows[j].Fields[sortBy])
			if a != b {
				return a < b
			}
		}
		return rows[i].ID < rows[j].ID
	})
}
