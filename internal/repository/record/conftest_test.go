package record

import (
	"context"
	"testing"

	"github.com/kailas-cloud/lookup/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	putFn      func(ctx context.Context, key db.Key, fields map[string]string) error
	putMultiFn func(ctx context.Context, items []db.PutItem) error
	getFn      func(ctx context.Context, key db.Key) (map[string]string, error)
	existsFn   func(ctx context.Context, key db.Key) (bool, error)
	deleteFn   func(ctx context.Context, key db.Key) error
	filterFn   func(ctx context.Context, q *db.FilterQuery) ([]db.Row, error)
}

func (m *mockStore) Put(ctx context.Context, key db.Key, fields map[string]string) error {
	if m.putFn != nil {
		return m.putFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) PutMulti(ctx context.Context, items []db.PutItem) error {
	if m.putMultiFn != nil {
		return m.putMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) Get(ctx context.Context, key db.Key) (map[string]string, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) Exists(ctx context.Context, key db.Key) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

func (m *mockStore) Delete(ctx context.Context, key db.Key) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, key)
	}
	return nil
}

func (m *mockStore) Filter(ctx context.Context, q *db.FilterQuery) ([]db.Row, error) {
	if m.filterFn != nil {
		return m.filterFn(ctx, q)
	}
	return nil, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}
