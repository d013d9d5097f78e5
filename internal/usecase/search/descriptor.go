package search

import (
	"github.com/kailas-cloud/lookup/internal/domain/record"
	"github.com/kailas-cloud/lookup/internal/domain/search/category"
)

// view is the display projection of a record.
type view struct {
	title       string
	subtitle    string
	description string
}

// descriptor binds a category to its matchable fields, sort field and projection.
// Field order is also the concatenation order used for scoring.
type descriptor struct {
	category category.Category
	fields   []string
	sortBy   string
	project  func(record.Record) (view, bool)
}

func describe[T record.Record](
	c category.Category, fields []string, sortBy string, project func(T) view,
) descriptor {
	return descriptor{
		category: c,
		fields:   fields,
		sortBy:   sortBy,
		project: func(r record.Record) (view, bool) {
			v, ok := r.(T)
			if !ok {
				return view{}, false
			}
			return project(v), true
		},
	}
}

// descriptors lists the searchable categories. Order is significant: it is
// the slot order for merging, so equal scores keep this category order.
var descriptors = []descriptor{
	describe(category.Person,
		[]string{record.FieldFirstName, record.FieldLastName, record.FieldEmail, record.FieldEmployeeID},
		record.FieldLastName,
		func(p *record.Person) view {
			subtitle := p.JobTitle
			if subtitle == "" {
				subtitle = p.Email
			}
			return view{title: p.FullName(), subtitle: subtitle, description: p.Email}
		},
	),
	describe(category.Organization,
		[]string{record.FieldName, record.FieldLegalName, record.FieldDomain, record.FieldDescription},
		record.FieldName,
		func(o *record.Organization) view {
			return view{title: o.Name, subtitle: o.Domain, description: o.Description}
		},
	),
	describe(category.Group,
		[]string{record.FieldName, record.FieldCode, record.FieldDescription},
		record.FieldName,
		func(g *record.Group) view {
			return view{title: g.Name, subtitle: g.Code, description: g.Description}
		},
	),
}
