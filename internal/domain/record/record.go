// Package record defines the searchable entities as explicit variants.
//
// Raw rows from storage are decoded into one of Person, Organization or
// Group at the repository boundary; nothing past that point handles
// untyped field maps.
package record

import (
	"regexp"
	"strings"

	"github.com/kailas-cloud/lookup/internal/domain"
	"github.com/kailas-cloud/lookup/internal/domain/search/category"
)

// Field names shared by storage drivers and search descriptors.
const (
	FieldID          = "id"
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldEmail       = "email"
	FieldEmployeeID  = "employee_id"
	FieldJobTitle    = "job_title"
	FieldDepartment  = "department"
	FieldName        = "name"
	FieldLegalName   = "legal_name"
	FieldDomain      = "domain"
	FieldDescription = "description"
	FieldCode        = "code"
	FieldParentID    = "parent_id"
)

// Limits for record validation.
const (
	MaxIDLength    = 128
	MaxFieldLength = 1024
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Record is implemented by every searchable variant.
type Record interface {
	RecordID() string
	Category() category.Category
	Validate() error
}

// Person is an employee or contact.
type Person struct {
	ID         string
	FirstName  string
	LastName   string
	Email      string
	EmployeeID string
	JobTitle   string
	Department string
}

// RecordID returns the stable identifier.
func (p *Person) RecordID() string { return p.ID }

// Category returns category.Person.
func (p *Person) Category() category.Category { return category.Person }

// FullName joins first and last name.
func (p *Person) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Validate checks identifier, required names and field sizes.
func (p *Person) Validate() error {
	if err := ValidateID(p.ID); err != nil {
		return err
	}
	if strings.TrimSpace(p.FirstName) == "" && strings.TrimSpace(p.LastName) == "" {
		return domain.NewFieldError(FieldFirstName, "first_name or last_name is required")
	}
	if p.Email != "" && !strings.Contains(p.Email, "@") {
		return domain.NewFieldError(FieldEmail, "must contain @")
	}
	return validateLengths(map[string]string{
		FieldFirstName:  p.FirstName,
		FieldLastName:   p.LastName,
		FieldEmail:      p.Email,
		FieldEmployeeID: p.EmployeeID,
		FieldJobTitle:   p.JobTitle,
		FieldDepartment: p.Department,
	})
}

// Organization is a company or customer account.
type Organization struct {
	ID          string
	Name        string
	LegalName   string
	Domain      string
	Description string
}

// RecordID returns the stable identifier.
func (o *Organization) RecordID() string { return o.ID }

// Category returns category.Organization.
func (o *Organization) Category() category.Category { return category.Organization }

// Validate checks identifier, name and field sizes.
func (o *Organization) Validate() error {
	if err := ValidateID(o.ID); err != nil {
		return err
	}
	if strings.TrimSpace(o.Name) == "" {
		return domain.NewFieldError(FieldName, "is required")
	}
	return validateLengths(map[string]string{
		FieldName:        o.Name,
		FieldLegalName:   o.LegalName,
		FieldDomain:      o.Domain,
		FieldDescription: o.Description,
	})
}

// Group is a department or team.
type Group struct {
	ID          string
	Name        string
	Code        string
	Description string
	ParentID    string
}

// RecordID returns the stable identifier.
func (g *Group) RecordID() string { return g.ID }

// Category returns category.Group.
func (g *Group) Category() category.Category { return category.Group }

// Validate checks identifier, name and field sizes.
func (g *Group) Validate() error {
	if err := ValidateID(g.ID); err != nil {
		return err
	}
	if strings.TrimSpace(g.Name) == "" {
		return domain.NewFieldError(FieldName, "is required")
	}
	if g.ParentID != "" && g.ParentID == g.ID {
		return domain.NewFieldError(FieldParentID, "group cannot be its own parent")
	}
	return validateLengths(map[string]string{
		FieldName:        g.Name,
		FieldCode:        g.Code,
		FieldDescription: g.Description,
		FieldParentID:    g.ParentID,
	})
}

// ValidateID checks a record identifier.
func ValidateID(id string) error {
	if id == "" {
		return domain.NewFieldError(FieldID, "is required")
	}
	if len(id) > MaxIDLength {
		return domain.NewFieldError(FieldID, "too long")
	}
	if !idRegex.MatchString(id) {
		return domain.NewFieldError(FieldID, "must be alphanumeric with underscores and hyphens")
	}
	return nil
}

func validateLengths(fields map[string]string) error {
	for name, v := range fields {
		if len(v) > MaxFieldLength {
			return domain.NewFieldError(name, "too long")
		}
	}
	return nil
}
