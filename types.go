package lookup

import (
	"fmt"

	domrec "github.com/kailas-cloud/lookup/internal/domain/record"
	"github.com/kailas-cloud/lookup/internal/domain/search/category"
)

// Category is the entity type of a record or search result.
type Category = category.Category

// Supported categories.
const (
	CategoryPerson       = category.Person
	CategoryOrganization = category.Organization
	CategoryGroup        = category.Group
)

// Record is implemented by Person, Organization and Group.
type Record = domrec.Record

// Record variants.
type (
	Person       = domrec.Person
	Organization = domrec.Organization
	Group        = domrec.Group
)

// ParseCategory converts a name such as "person" or "people" into a Category.
func ParseCategory(name string) (Category, error) {
	return category.Parse(name)
}

// Result is a single ranked search hit.
type Result struct {
	Category    Category
	ID          string
	Title       string
	Subtitle    string
	Description string
	URL         string
	Icon        string
	Score       int
}

// BatchResult is the outcome of one item in a batch operation.
type BatchResult struct {
	ID  string
	OK  bool
	Err error
}

// RecordFromFields builds the record variant of cat from a flat field map.
// The "id" field is required; unknown fields are rejected.
func RecordFromFields(cat Category, fields map[string]string) (Record, error) {
	cols := domrec.Columns(cat)
	if cols == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, cat)
	}
	allowed := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		allowed[c] = struct{}{}
	}
	for name := range fields {
		if _, ok := allowed[name]; !ok {
			return nil, fmt.Errorf("%w: unknown field %q for %s", ErrInvalidRecord, name, cat)
		}
	}
	return domrec.FromFields(cat, "", fields)
}

// RecordFields flattens a record into its field map, id included.
func RecordFields(rec Record) map[string]string {
	return domrec.ToFields(rec)
}

// RecordColumns returns the field names of cat, id first.
func RecordColumns(cat Category) []string {
	return domrec.Columns(cat)
}
