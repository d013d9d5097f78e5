package record

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/lookup/internal/domain"
	dombatch "github.com/kailas-cloud/lookup/internal/domain/batch"
	domrec "github.com/kailas-cloud/lookup/internal/domain/record"
	"github.com/kailas-cloud/lookup/internal/domain/search/category"
)

// MaxBatchSize is the maximum number of records per batch request.
const MaxBatchSize = 500

// Service handles record writes and reads for the tenant in the context.
type Service struct {
	repo         Repository
	maxBatchSize int
}

// New creates a record service.
func New(repo Repository) *Service {
	return &Service{repo: repo, maxBatchSize: MaxBatchSize}
}

// WithMaxBatchSize configures the maximum batch size.
func (s *Service) WithMaxBatchSize(size int) *Service {
	if size > 0 {
		s.maxBatchSize = size
	}
	return s
}

// Upsert validates and stores a record. Returns true if it was created.
func (s *Service) Upsert(ctx context.Context, rec domrec.Record) (bool, error) {
	if err := validate(rec.Category(), rec); err != nil {
		return false, err
	}
	created, err := s.repo.Upsert(ctx, domain.TenantFromContext(ctx), rec)
	if err != nil {
		return false, fmt.Errorf("upsert %s: %w", rec.Category(), err)
	}
	return created, nil
}

// Get returns a record by category and id.
func (s *Service) Get(ctx context.Context, c category.Category, id string) (domrec.Record, error) {
	if err := checkKey(c, id); err != nil {
		return nil, err
	}
	rec, err := s.repo.Get(ctx, domain.TenantFromContext(ctx), c, id)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", c, err)
	}
	return rec, nil
}

// Delete removes a record by category and id.
func (s *Service) Delete(ctx context.Context, c category.Category, id string) error {
	if err := checkKey(c, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, domain.TenantFromContext(ctx), c, id); err != nil {
		return fmt.Errorf("delete %s: %w", c, err)
	}
	return nil
}

// BatchUpsert validates every record and writes the valid ones in one store call.
// Results are positional; an invalid record does not block the others.
func (s *Service) BatchUpsert(ctx context.Context, c category.Category, recs []domrec.Record) []dombatch.Result {
	results := make([]dombatch.Result, len(recs))

	if len(recs) > s.maxBatchSize {
		for i, rec := range recs {
			results[i] = dombatch.NewError(
				rec.RecordID(),
				fmt.Errorf("batch size exceeds %d: %w", s.maxBatchSize, domain.ErrInvalidRecord),
			)
		}
		return results
	}

	valid := make([]domrec.Record, 0, len(recs))
	validIdx := make([]int, 0, len(recs))
	for i, rec := range recs {
		if err := validate(c, rec); err != nil {
			results[i] = dombatch.NewError(rec.RecordID(), err)
			continue
		}
		valid = append(valid, rec)
		validIdx = append(validIdx, i)
	}

	if len(valid) == 0 {
		return results
	}

	if err := s.repo.BatchUpsert(ctx, domain.TenantFromContext(ctx), valid); err != nil {
		for _, i := range validIdx {
			results[i] = dombatch.NewError(recs[i].RecordID(), fmt.Errorf("batch upsert: %w", err))
		}
		return results
	}

	for _, i := range validIdx {
		results[i] = dombatch.NewOK(recs[i].RecordID())
	}
	return results
}

// validate checks that rec belongs to c and is well formed.
func validate(c category.Category, rec domrec.Record) error {
	if !c.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownCategory, c)
	}
	if rec.Category() != c {
		return fmt.Errorf("%w: record is %s, expected %s", domain.ErrCategoryMismatch, rec.Category(), c)
	}
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("validate %s %q: %w", c, rec.RecordID(), err)
	}
	return nil
}

func checkKey(c category.Category, id string) error {
	if !c.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownCategory, c)
	}
	if err := domrec.ValidateID(id); err != nil {
		return fmt.Errorf("record id: %w", err)
	}
	return nil
}
