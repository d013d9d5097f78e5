package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"time"

	// Register sqlite driver
	_ "modernc.org/sqlite"

	"github.com/kailas-cloud/lookup/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

//go:embed sql/*.sql
var schemas embed.FS

// Reserved columns present in every collection table.
const (
	colTenant = "tenant"
	colID     = "id"
)

// Store implements db.Store on a single SQLite file.
// Each collection is a table keyed by (tenant, id) with one TEXT column per field.
type Store struct {
	db      *sql.DB
	columns map[string][]string // collection -> field columns, declaration order
}

// Open opens the database at path, applies the embedded schema and
// discovers the collection columns. Use ":memory:" only with a single connection.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	pragmas := []string{
		`PRAGMA journal_mode=WAL`,
		`PRAGMA busy_timeout=5000`,
		`PRAGMA synchronous=NORMAL`,
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}

	if err := execEmbedded(conn, schemas, "sql"); err != nil {
		conn.Close()
		return nil, err
	}

	columns, err := loadColumns(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &Store{db: conn, columns: columns}, nil
}

// execEmbedded runs every .sql file of dir in alphabetical order.
// Files must be idempotent (IF NOT EXISTS).
func execEmbedded(conn *sql.DB, fsys embed.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read schema directory: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := dir + "/" + entry.Name()
		data, err := fsys.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if _, err := conn.Exec(string(data)); err != nil {
			return fmt.Errorf("exec %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// loadColumns reads table_info for every user table.
func loadColumns(conn *sql.DB) (map[string][]string, error) {
	rows, err := conn.Query(`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	columns := make(map[string][]string, len(tables))
	for _, table := range tables {
		info, err := conn.Query(`SELECT name FROM pragma_table_info(?) ORDER BY cid`, table)
		if err != nil {
			return nil, fmt.Errorf("table_info %s: %w", table, err)
		}
		var cols []string
		for info.Next() {
			var name string
			if err := info.Scan(&name); err != nil {
				info.Close()
				return nil, fmt.Errorf("scan column of %s: %w", table, err)
			}
			if name != colTenant && name != colID {
				cols = append(cols, name)
			}
		}
		info.Close()
		if err := info.Err(); err != nil {
			return nil, fmt.Errorf("table_info %s: %w", table, err)
		}
		columns[table] = cols
	}
	return columns, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() {
	_ = s.db.Close()
}

// WaitForReady pings once within timeout. The file is local so there is nothing to poll for.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := s.Ping(ctx); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}
	return nil
}

// fieldColumns returns the field columns of collection.
func (s *Store) fieldColumns(collection string) ([]string, error) {
	cols, ok := s.columns[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %s", db.ErrUnknownCollection, collection)
	}
	return cols, nil
}

// hasColumn reports whether name is a field column of collection.
func (s *Store) hasColumn(collection, name string) bool {
	for _, c := range s.columns[collection] {
		if c == name {
			return true
		}
	}
	return false
}

// quote returns a double-quoted SQL identifier. Callers only pass names
// already checked against the discovered schema.
func quote(ident string) string {
	return `"` + ident + `"`
}
