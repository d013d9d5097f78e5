package redis

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/lookup/internal/db"
)

// hgetallChunk bounds the number of HGETALL commands per DoMulti.
const hgetallChunk = 256

// Filter loads the tenant collection and keeps rows where any of q.Fields
// contains q.Pattern, case-insensitively. Rows are sorted by q.SortBy and
// capped at q.Limit. Ids whose hash has vanished are skipped.
func (s *Store) Filter(ctx context.Context, q *db.FilterQuery) ([]db.Row, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("filter %s: %w", q.Collection, err)
	}

	cmd := s.b().Smembers().Key(s.idsKey(q.Tenant, q.Collection)).Build()
	ids, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpSMembers, Err: err}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	pattern := strings.ToLower(q.Pattern)
	var rows []db.Row

	for start := 0; start < len(ids); start += hgetallChunk {
		end := min(start+hgetallChunk, len(ids))
		chunk := ids[start:end]

		cmds := make([]rueidis.Completed, len(chunk))
		for i, id := range chunk {
			key := db.Key{Tenant: q.Tenant, Collection: q.Collection, ID: id}
			cmds[i] = s.b().Hgetall().Key(s.recordKey(key)).Build()
		}

		for i, res := range s.client.DoMulti(ctx, cmds...) {
			m, err := res.AsStrMap()
			if err != nil {
				return nil, &db.Error{Op: db.OpHGetAll, Err: fmt.Errorf("id %s: %w", chunk[i], err)}
			}
			if len(m) == 0 || !db.MatchRow(m, q.Fields, pattern) {
				continue
			}
			rows = append(rows, db.Row{ID: chunk[i], Fields: m})
		}
	}

	db.SortRows(rows, q.SortBy)
	if len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}
	return rows, nil
}
