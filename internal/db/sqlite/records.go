package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/kailas-cloud/lookup/internal/db"
)

// Put upserts a single record.
func (s *Store) Put(ctx context.Context, key db.Key, fields map[string]string) error {
	return s.PutMulti(ctx, []db.PutItem{{Key: key, Fields: fields}})
}

// PutMulti upserts records in one transaction. Columns missing from an
// item's fields are reset to empty, so a put always replaces the record.
func (s *Store) PutMulti(ctx context.Context, items []db.PutItem) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &db.Error{Op: db.OpBegin, Err: err}
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmts := make(map[string]*sql.Stmt)
	defer func() {
		for _, st := range stmts {
			st.Close()
		}
	}()

	for _, item := range items {
		cols, err := s.fieldColumns(item.Key.Collection)
		if err != nil {
			return err
		}
		for name := range item.Fields {
			if name != colID && !s.hasColumn(item.Key.Collection, name) {
				return fmt.Errorf("%w: %s.%s", db.ErrUnknownField, item.Key.Collection, name)
			}
		}

		st, ok := stmts[item.Key.Collection]
		if !ok {
			st, err = tx.PrepareContext(ctx, upsertSQL(item.Key.Collection, cols))
			if err != nil {
				return &db.Error{Op: db.OpInsert, Err: err}
			}
			stmts[item.Key.Collection] = st
		}

		args := make([]any, 0, len(cols)+2)
		args = append(args, item.Key.Tenant, item.Key.ID)
		for _, c := range cols {
			args = append(args, item.Fields[c])
		}
		if _, err := st.ExecContext(ctx, args...); err != nil {
			return &db.Error{Op: db.OpInsert, Err: fmt.Errorf("id %s: %w", item.Key.ID, err)}
		}
	}

	if err := tx.Commit(); err != nil {
		return &db.Error{Op: db.OpCommit, Err: err}
	}
	return nil
}

// upsertSQL builds INSERT ... ON CONFLICT(tenant, id) DO UPDATE for a collection.
func upsertSQL(collection string, cols []string) string {
	names := make([]string, 0, len(cols)+2)
	names = append(names, colTenant, colID)
	sets := make([]string, 0, len(cols))
	for _, c := range cols {
		names = append(names, quote(c))
		sets = append(sets, quote(c)+" = excluded."+quote(c))
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ")

	q := "INSERT INTO " + quote(collection) + " (" + strings.Join(names, ", ") + ") VALUES (" + placeholders + ")" +
		" ON CONFLICT(" + colTenant + ", " + colID + ")"
	if len(sets) == 0 {
		return q + " DO NOTHING"
	}
	return q + " DO UPDATE SET " + strings.Join(sets, ", ")
}

// Get returns the record's fields, id included. A missing row yields db.ErrKeyNotFound.
func (s *Store) Get(ctx context.Context, key db.Key) (map[string]string, error) {
	cols, err := s.fieldColumns(key.Collection)
	if err != nil {
		return nil, err
	}

	q := "SELECT " + selectList(cols) + " FROM " + quote(key.Collection) +
		" WHERE " + colTenant + " = ? AND " + colID + " = ?"
	row := s.db.QueryRowContext(ctx, q, key.Tenant, key.ID)

	m, err := scanFields(row, cols)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, db.ErrKeyNotFound
	}
	if err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	return m, nil
}

// Exists checks if a record exists.
func (s *Store) Exists(ctx context.Context, key db.Key) (bool, error) {
	if _, err := s.fieldColumns(key.Collection); err != nil {
		return false, err
	}

	q := "SELECT 1 FROM " + quote(key.Collection) + " WHERE " + colTenant + " = ? AND " + colID + " = ?"
	var one int
	err := s.db.QueryRowContext(ctx, q, key.Tenant, key.ID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, &db.Error{Op: db.OpSelect, Err: err}
	}
	return true, nil
}

// Delete removes a record. Deleting a missing record is not an error.
func (s *Store) Delete(ctx context.Context, key db.Key) error {
	if _, err := s.fieldColumns(key.Collection); err != nil {
		return err
	}

	q := "DELETE FROM " + quote(key.Collection) + " WHERE " + colTenant + " = ? AND " + colID + " = ?"
	if _, err := s.db.ExecContext(ctx, q, key.Tenant, key.ID); err != nil {
		return &db.Error{Op: db.OpDelete, Err: err}
	}
	return nil
}

// selectList returns "id", then the quoted field columns.
func selectList(cols []string) string {
	parts := make([]string, 0, len(cols)+1)
	parts = append(parts, colID)
	for _, c := range cols {
		parts = append(parts, quote(c))
	}
	return strings.Join(parts, ", ")
}

// scanner abstracts sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanFields reads a row produced by selectList into a field map.
func scanFields(sc scanner, cols []string) (map[string]string, error) {
	values := make([]string, len(cols)+1)
	dest := make([]any, len(values))
	for i := range values {
		dest[i] = &values[i]
	}
	if err := sc.Scan(dest...); err != nil {
		return nil, err
	}

	m := make(map[string]string, len(values))
	m[colID] = values[0]
	for i, c := range cols {
		m[c] = values[i+1]
	}
	return m, nil
}
