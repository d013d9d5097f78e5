package category

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/lookup/internal/domain"
)

// Category is the entity type a search candidate belongs to.
type Category string

// Supported categories, in aggregation order.
const (
	Person       Category = "person"
	Organization Category = "organization"
	Group        Category = "group"
)

// All returns every supported category in aggregation order.
func All() []Category {
	return []Category{Person, Organization, Group}
}

// IsValid checks if the category is one of the supported values.
func (c Category) IsValid() bool {
	return c == Person || c == Organization || c == Group
}

// String implements fmt.Stringer.
func (c Category) String() string { return string(c) }

// Icon returns the display icon name for results of this category.
func (c Category) Icon() string {
	switch c {
	case Person:
		return "user"
	case Organization:
		return "building"
	case Group:
		return "users"
	default:
		return "search"
	}
}

// Collection returns the name of the backing collection.
func (c Category) Collection() string {
	switch c {
	case Person:
		return "people"
	case Organization:
		return "organizations"
	case Group:
		return "groups"
	default:
		return ""
	}
}

// Target returns the navigation path for a record of this category.
func (c Category) Target(id string) string {
	if coll := c.Collection(); coll != "" {
		return "/" + coll + "/" + id
	}
	return ""
}

// Parse converts a user-supplied name into a Category.
// Plural collection names ("people", "groups") are accepted as aliases.
func Parse(s string) (Category, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, c := range All() {
		if name == string(c) || name == c.Collection() {
			return c, nil
		}
	}
	switch name {
	case "employee", "employees":
		return Person, nil
	case "department", "departments":
		return Group, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownCategory, s)
}

// ParseList parses several names, dropping duplicates while keeping order.
// Empty input yields nil, which callers treat as "all categories".
func ParseList(names []string) ([]Category, error) {
	if len(names) == 0 {
		return nil, nil
	}
	seen := make(map[Category]bool, len(names))
	out := make([]Category, 0, len(names))
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		c, err := Parse(n)
		if err != nil {
			return nil, err
		}
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}
