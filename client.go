package lookup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/lookup/internal/db"
	"github.com/kailas-cloud/lookup/internal/db/driver"
	"github.com/kailas-cloud/lookup/internal/domain"
	dombatch "github.com/kailas-cloud/lookup/internal/domain/batch"
	domrec "github.com/kailas-cloud/lookup/internal/domain/record"
	"github.com/kailas-cloud/lookup/internal/domain/search/category"
	"github.com/kailas-cloud/lookup/internal/domain/search/request"
	"github.com/kailas-cloud/lookup/internal/domain/search/result"
	"github.com/kailas-cloud/lookup/internal/metrics"
	recordrepo "github.com/kailas-cloud/lookup/internal/repository/record"
	healthuc "github.com/kailas-cloud/lookup/internal/usecase/health"
	recorduc "github.com/kailas-cloud/lookup/internal/usecase/record"
	searchuc "github.com/kailas-cloud/lookup/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, swapped for mocks in tests.
type searchUseCase interface {
	Search(ctx context.Context, query string, limit int, cats []category.Category) ([]result.Result, error)
	Quick(ctx context.Context, query string, limit int) ([]result.Result, error)
	SearchCategory(ctx context.Context, c category.Category, query string, limit int) ([]result.Result, error)
}

type recordUseCase interface {
	Upsert(ctx context.Context, rec domrec.Record) (bool, error)
	Get(ctx context.Context, c category.Category, id string) (domrec.Record, error)
	Delete(ctx context.Context, c category.Category, id string) error
	BatchUpsert(ctx context.Context, c category.Category, recs []domrec.Record) []dombatch.Result
}

// Client is the lookup SDK entry point. It is safe for concurrent use.
type Client struct {
	store     db.Store
	tenant    string
	searchSvc searchUseCase
	recordSvc recordUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		keyPrefix:        "lookup:",
		readinessTimeout: defaultReadinessTimeout,
		tenant:           domain.DefaultTenant,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.db.Driver == "" {
		return nil, errors.New("lookup: database required (use WithRedis, WithValkey or WithSQLite)")
	}
	if err := domain.ValidateTenant(cfg.tenant); err != nil {
		return nil, fmt.Errorf("lookup: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := driver.Open(cfg.db, cfg.keyPrefix)
	if err != nil {
		return nil, fmt.Errorf("lookup: %w", err)
	}

	if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("lookup: database not ready: %w", err)
	}

	c, err := wireClient(store, cfg, obs)
	if err != nil {
		store.Close()
		return nil, err
	}
	return c, nil
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	repo := recordrepo.New(store)

	searchSvc := searchuc.New(repo).
		WithLimits(request.Limits{
			DefaultLimit:   cfg.defaultLimit,
			MaxLimit:       cfg.maxLimit,
			MaxQueryLength: cfg.maxQueryLength,
		}, cfg.quickLimit).
		WithFetchTimeout(cfg.fetchTimeout)
	if cfg.metricsReg != nil {
		m, err := metrics.NewSearch(cfg.metricsReg)
		if err != nil {
			return nil, fmt.Errorf("lookup: %w", err)
		}
		searchSvc = searchSvc.WithObserver(m)
	}

	recordSvc := recorduc.New(repo).WithMaxBatchSize(cfg.maxBatchSize)

	return &Client{
		store:     store,
		tenant:    cfg.tenant,
		searchSvc: searchSvc,
		recordSvc: recordSvc,
		healthSvc: healthuc.New(store),
		obs:       obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Tenant returns the tenant every call of the client is scoped to.
func (c *Client) Tenant() string {
	return c.tenant
}

// Records returns the record service for one category.
func (c *Client) Records(cat Category) *RecordService {
	return &RecordService{
		category: cat,
		client:   c,
	}
}

// scoped attaches the client's tenant to ctx.
func (c *Client) scoped(ctx context.Context) context.Context {
	if c.tenant == "" {
		return ctx
	}
	return domain.ContextWithTenant(ctx, c.tenant)
}
