package record

import (
	"context"

	domrec "github.com/kailas-cloud/lookup/internal/domain/record"
	"github.com/kailas-cloud/lookup/internal/domain/search/category"
)

// Repository defines the storage contract for records.
type Repository interface {
	Upsert(ctx context.Context, tenant string, rec domrec.Record) (created bool, err error)
	BatchUpsert(ctx context.Context, tenant string, recs []domrec.Record) error
	Get(ctx context.Context, tenant string, c category.Category, id string) (domrec.Record, error)
	Delete(ctx context.Context, tenant string, c category.Category, id string) error
}
