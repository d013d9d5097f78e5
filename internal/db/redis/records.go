package redis

import (
	"context"
	"fmt"
	"sort"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/lookup/internal/db"
)

// Put stores a record hash and registers its id in one DoMulti round-trip.
func (s *Store) Put(ctx context.Context, key db.Key, fields map[string]string) error {
	return s.PutMulti(ctx, []db.PutItem{{Key: key, Fields: fields}})
}

// PutMulti stores multiple records in a single DoMulti round-trip.
func (s *Store) PutMulti(ctx context.Context, items []db.PutItem) error {
	if len(items) == 0 {
		return nil
	}

	cmds := make([]rueidis.Completed, 0, len(items)*2)
	for _, item := range items {
		cmds = append(cmds, s.hsetCmd(s.recordKey(item.Key), item.Fields))
		cmds = append(cmds, s.b().Sadd().Key(s.idsKey(item.Key.Tenant, item.Key.Collection)).
			Member(item.Key.ID).Build())
	}

	results := s.client.DoMulti(ctx, cmds...)
	for i, res := range results {
		if err := res.Error(); err != nil {
			op := db.OpHSet
			if i%2 == 1 {
				op = db.OpSAdd
			}
			return &db.Error{Op: op, Err: fmt.Errorf("id %s: %w", items[i/2].Key.ID, err)}
		}
	}
	return nil
}

// hsetCmd builds HSET with fields in sorted order so commands are deterministic.
func (s *Store) hsetCmd(key string, fields map[string]string) rueidis.Completed {
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	sort.Strings(names)

	cmd := s.b().Hset().Key(key).FieldValue()
	for _, k := range names {
		cmd = cmd.FieldValue(k, fields[k])
	}
	return cmd.Build()
}

// Get returns all fields of a record. A missing hash yields db.ErrKeyNotFound.
func (s *Store) Get(ctx context.Context, key db.Key) (map[string]string, error) {
	cmd := s.b().Hgetall().Key(s.recordKey(key)).Build()
	m, err := s.do(ctx, cmd).AsStrMap()
	if err != nil {
		return nil, &db.Error{Op: db.OpHGetAll, Err: err}
	}
	if len(m) == 0 {
		return nil, db.ErrKeyNotFound
	}
	return m, nil
}

// Exists checks if a record exists.
func (s *Store) Exists(ctx context.Context, key db.Key) (bool, error) {
	cmd := s.b().Exists().Key(s.recordKey(key)).Build()
	count, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return false, &db.Error{Op: db.OpExists, Err: err}
	}
	return count > 0, nil
}

// Delete removes a record hash and its id registration.
func (s *Store) Delete(ctx context.Context, key db.Key) error {
	results := s.client.DoMulti(ctx,
		s.b().Del().Key(s.recordKey(key)).Build(),
		s.b().Srem().Key(s.idsKey(key.Tenant, key.Collection)).Member(key.ID).Build(),
	)
	if err := results[0].Error(); err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	if err := results[1].Error(); err != nil {
		return &db.Error{Op: db.OpSRem, Err: err}
	}
	return nil
}
