package lookup

import (
	"context"
	"fmt"
	"time"

	domrec "github.com/kailas-cloud/lookup/internal/domain/record"
)

// RecordService manages the records of a single category.
type RecordService struct {
	category Category
	client   *Client
}

// Upsert creates or replaces a record. Returns true if created.
func (s *RecordService) Upsert(ctx context.Context, rec Record) (created bool, err error) {
	start := time.Now()
	defer func() { s.client.obs.observe("record.upsert", start, err) }()

	if rec == nil {
		return false, fmt.Errorf("upsert: %w: nil record", ErrInvalidRecord)
	}
	if rec.Category() != s.category {
		return false, fmt.Errorf("upsert: %w: record is %s, expected %s",
			ErrCategoryMismatch, rec.Category(), s.category)
	}
	created, err = s.client.recordSvc.Upsert(s.client.scoped(ctx), rec)
	if err != nil {
		return false, fmt.Errorf("upsert: %w", err)
	}
	return created, nil
}

// Get retrieves a record by ID.
func (s *RecordService) Get(ctx context.Context, id string) (rec Record, err error) {
	start := time.Now()
	defer func() { s.client.obs.observe("record.get", start, err) }()

	rec, err = s.client.recordSvc.Get(s.client.scoped(ctx), s.category, id)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

// Delete removes a record by ID.
func (s *RecordService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.client.obs.observe("record.delete", start, err) }()

	if err = s.client.recordSvc.Delete(s.client.scoped(ctx), s.category, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// BatchUpsert creates or replaces records in one write. Results are
// positional; invalid records fail individually without blocking the rest.
func (s *RecordService) BatchUpsert(ctx context.Context, recs []Record) ([]BatchResult, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		s.client.obs.observe("record.batch_upsert", start, err)
		return nil, fmt.Errorf("batch upsert: %w", err)
	}

	items := make([]domrec.Record, 0, len(recs))
	idx := make([]int, 0, len(recs))
	out := make([]BatchResult, len(recs))
	for i, r := range recs {
		if r == nil {
			out[i] = BatchResult{Err: fmt.Errorf("%w: nil record", ErrInvalidRecord)}
			continue
		}
		items = append(items, r)
		idx = append(idx, i)
	}

	results := s.client.recordSvc.BatchUpsert(s.client.scoped(ctx), s.category, items)
	failed := 0
	for j, r := range results {
		out[idx[j]] = BatchResult{ID: r.ID(), OK: r.Err() == nil, Err: r.Err()}
	}
	for _, r := range out {
		if !r.OK {
			failed++
		}
	}

	var err error
	if failed == len(out) && len(out) > 0 {
		err = fmt.Errorf("batch upsert: all %d records failed", failed)
	}
	s.client.obs.observe("record.batch_upsert", start, err)
	return out, nil
}
