package lookup

import "github.com/kailas-cloud/lookup/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrRecordNotFound   = domain.ErrRecordNotFound
	ErrInvalidQuery     = domain.ErrInvalidQuery
	ErrUnknownCategory  = domain.ErrUnknownCategory
	ErrInvalidRecord    = domain.ErrInvalidRecord
	ErrCategoryMismatch = domain.ErrCategoryMismatch
)
