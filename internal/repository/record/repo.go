package record

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/lookup/internal/db"
	"github.com/kailas-cloud/lookup/internal/domain"
	domrec "github.com/kailas-cloud/lookup/internal/domain/record"
	"github.com/kailas-cloud/lookup/internal/domain/search/category"
)

// store is the consumer interface for records (ISP).
type store interface {
	Put(ctx context.Context, key db.Key, fields map[string]string) error
	PutMulti(ctx context.Context, items []db.PutItem) error
	Get(ctx context.Context, key db.Key) (map[string]string, error)
	Exists(ctx context.Context, key db.Key) (bool, error)
	Delete(ctx context.Context, key db.Key) error
	Filter(ctx context.Context, q *db.FilterQuery) ([]db.Row, error)
}

// Repo implements the record-query collaborator of the search and record use cases.
type Repo struct {
	store store
}

// New creates a record repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Fetch returns records of category c whose q.Fields contain q.Pattern,
// sorted by q.SortBy and capped at q.Limit.
func (r *Repo) Fetch(
	ctx context.Context, tenant string, c category.Category, q domrec.FetchQuery,
) ([]domrec.Record, error) {
	rows, err := r.store.Filter(ctx, &db.FilterQuery{
		Tenant:     tenant,
		Collection: c.Collection(),
		Fields:     q.Fields,
		Pattern:    q.Pattern,
		Limit:      q.Limit,
		SortBy:     q.SortBy,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", c, err)
	}

	out := make([]domrec.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := domrec.FromFields(c, row.ID, row.Fields)
		if err != nil {
			return nil, fmt.Errorf("decode %s %s: %w", c, row.ID, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// Upsert creates or replaces a record. Returns true if created.
func (r *Repo) Upsert(ctx context.Context, tenant string, rec domrec.Record) (bool, error) {
	key := recordKey(tenant, rec.Category(), rec.RecordID())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s/%s: %w", key.Collection, key.ID, err)
	}

	if err := r.store.Put(ctx, key, domrec.ToFields(rec)); err != nil {
		return false, fmt.Errorf("put %s/%s: %w", key.Collection, key.ID, err)
	}
	return !exists, nil
}

// BatchUpsert writes records in a single store round-trip.
func (r *Repo) BatchUpsert(ctx context.Context, tenant string, recs []domrec.Record) error {
	if len(recs) == 0 {
		return nil
	}

	items := make([]db.PutItem, len(recs))
	for i, rec := range recs {
		items[i] = db.PutItem{
			Key:    recordKey(tenant, rec.Category(), rec.RecordID()),
			Fields: domrec.ToFields(rec),
		}
	}

	if err := r.store.PutMulti(ctx, items); err != nil {
		return fmt.Errorf("put multi (%d records): %w", len(items), err)
	}
	return nil
}

// Get returns a record by category and id.
func (r *Repo) Get(ctx context.Context, tenant string, c category.Category, id string) (domrec.Record, error) {
	key := recordKey(tenant, c, id)

	m, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("get %s/%s: %w", key.Collection, id, err)
	}
	return domrec.FromFields(c, id, m)
}

// Delete removes a record.
func (r *Repo) Delete(ctx context.Context, tenant string, c category.Category, id string) error {
	key := recordKey(tenant, c, id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s/%s: %w", key.Collection, id, err)
	}
	if !exists {
		return domain.ErrRecordNotFound
	}

	if err := r.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete %s/%s: %w", key.Collection, id, err)
	}
	return nil
}

func recordKey(tenant string, c category.Category, id string) db.Key {
	return db.Key{Tenant: tenant, Collection: c.Collection(), ID: id}
}
