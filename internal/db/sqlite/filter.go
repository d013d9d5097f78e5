package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/lookup/internal/db"
)

// likeEscaper escapes LIKE wildcards so the pattern matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Filter selects rows of the tenant collection where any of q.Fields
// contains q.Pattern. LIKE is case-insensitive for ASCII in SQLite.
func (s *Store) Filter(ctx context.Context, q *db.FilterQuery) ([]db.Row, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("filter %s: %w", q.Collection, err)
	}
	cols, err := s.fieldColumns(q.Collection)
	if err != nil {
		return nil, err
	}
	for _, f := range q.Fields {
		if !s.hasColumn(q.Collection, f) {
			return nil, fmt.Errorf("%w: %s.%s", db.ErrUnknownField, q.Collection, f)
		}
	}
	if q.SortBy != "" && !s.hasColumn(q.Collection, q.SortBy) {
		return nil, fmt.Errorf("%w: %s.%s", db.ErrUnknownField, q.Collection, q.SortBy)
	}

	query, args := filterSQL(q, cols)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	defer rows.Close()

	var out []db.Row
	for rows.Next() {
		m, err := scanFields(rows, cols)
		if err != nil {
			return nil, &db.Error{Op: db.OpSelect, Err: err}
		}
		out = append(out, db.Row{ID: m[colID], Fields: m})
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	return out, nil
}

// filterSQL builds the SELECT for q. Field names must already be validated.
func filterSQL(q *db.FilterQuery, cols []string) (string, []any) {
	var b strings.Builder
	args := []any{q.Tenant}

	b.WriteString("SELECT ")
	b.WriteString(selectList(cols))
	b.WriteString(" FROM ")
	b.WriteString(quote(q.Collection))
	b.WriteString(" WHERE ")
	b.WriteString(colTenant)
	b.WriteString(" = ?")

	if q.Pattern != "" {
		like := "%" + likeEscaper.Replace(q.Pattern) + "%"
		conds := make([]string, len(q.Fields))
		for i, f := range q.Fields {
			conds[i] = quote(f) + ` LIKE ? ESCAPE '\'`
			args = append(args, like)
		}
		b.WriteString(" AND (")
		b.WriteString(strings.Join(conds, " OR "))
		b.WriteString(")")
	}

	b.WriteString(" ORDER BY ")
	if q.SortBy != "" {
		b.WriteString(quote(q.SortBy))
		b.WriteString(" COLLATE NOCASE, ")
	}
	b.WriteString(colID)
	b.WriteString(" LIMIT ?")
	args = append(args, q.Limit)

	return b.String(), args
}
