package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
type Store interface {
	Pinger
	RecordStore
	Filterer
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Key addresses a single record: tenant, collection and id.
type Key struct {
	Tenant     string
	Collection string
	ID         string
}

// PutItem holds a single key+fields pair for batched writes.
type PutItem struct {
	Key    Key
	Fields map[string]string
}

// RecordStore provides keyed record operations.
type RecordStore interface {
	Put(ctx context.Context, key Key, fields map[string]string) error
	PutMulti(ctx context.Context, items []PutItem) error
	Get(ctx context.Context, key Key) (map[string]string, error)
	Exists(ctx context.Context, key Key) (bool, error)
	Delete(ctx context.Context, key Key) error
}

// Filterer provides substring-filtered fetches over one collection.
type Filterer interface {
	Filter(ctx context.Context, q *FilterQuery) ([]Row, error)
}
