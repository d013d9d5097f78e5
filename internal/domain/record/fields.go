package record

import (
	"fmt"

	"github.com/kailas-cloud/lookup/internal/domain"
	"github.com/kailas-cloud/lookup/internal/domain/search/category"
)

// Columns returns the stored field names of a category, id first.
func Columns(c category.Category) []string {
	switch c {
	case category.Person:
		return []string{
			FieldID, FieldFirstName, FieldLastName, FieldEmail,
			FieldEmployeeID, FieldJobTitle, FieldDepartment,
		}
	case category.Organization:
		return []string{FieldID, FieldName, FieldLegalName, FieldDomain, FieldDescription}
	case category.Group:
		return []string{FieldID, FieldName, FieldCode, FieldDescription, FieldParentID}
	default:
		return nil
	}
}

// ToFields flattens a record into a field map for storage.
// Empty values are kept so that an upsert clears stale fields.
func ToFields(r Record) map[string]string {
	switch v := r.(type) {
	case *Person:
		return map[string]string{
			FieldID:         v.ID,
			FieldFirstName:  v.FirstName,
			FieldLastName:   v.LastName,
			FieldEmail:      v.Email,
			FieldEmployeeID: v.EmployeeID,
			FieldJobTitle:   v.JobTitle,
			FieldDepartment: v.Department,
		}
	case *Organization:
		return map[string]string{
			FieldID:          v.ID,
			FieldName:        v.Name,
			FieldLegalName:   v.LegalName,
			FieldDomain:      v.Domain,
			FieldDescription: v.Description,
		}
	case *Group:
		return map[string]string{
			FieldID:          v.ID,
			FieldName:        v.Name,
			FieldCode:        v.Code,
			FieldDescription: v.Description,
			FieldParentID:    v.ParentID,
		}
	default:
		return nil
	}
}

// FromFields decodes a stored field map into the variant for c.
// id overrides the id field when non-empty (keys carry the id for hashes).
func FromFields(c category.Category, id string, m map[string]string) (Record, error) {
	if id == "" {
		id = m[FieldID]
	}
	switch c {
	case category.Person:
		return &Person{
			ID:         id,
			FirstName:  m[FieldFirstName],
			LastName:   m[FieldLastName],
			Email:      m[FieldEmail],
			EmployeeID: m[FieldEmployeeID],
			JobTitle:   m[FieldJobTitle],
			Department: m[FieldDepartment],
		}, nil
	case category.Organization:
		return &Organization{
			ID:          id,
			Name:        m[FieldName],
			LegalName:   m[FieldLegalName],
			Domain:      m[FieldDomain],
			Description: m[FieldDescription],
		}, nil
	case category.Group:
		return &Group{
			ID:          id,
			Name:        m[FieldName],
			Code:        m[FieldCode],
			Description: m[FieldDescription],
			ParentID:    m[FieldParentID],
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, c)
	}
}

// New returns an empty record of the variant for c.
func New(c category.Category, id string) (Record, error) {
	return FromFields(c, id, nil)
}
