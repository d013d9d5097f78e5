package lookup

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/lookup/internal/config"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	db               config.DatabaseConfig
	keyPrefix        string
	readinessTimeout time.Duration

	tenant string

	defaultLimit   int
	quickLimit     int
	maxLimit       int
	maxQueryLength int
	fetchTimeout   time.Duration
	maxBatchSize   int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.db.Driver = config.DriverRedis
		c.db.Addrs = []string{addr}
		c.db.Password = password
	})
}

// WithValkey configures the client to connect to a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.db.Driver = config.DriverValkey
		c.db.Addrs = []string{addr}
		c.db.Password = password
	})
}

// WithSQLite stores records in the SQLite database file at path.
// The schema is created on first use.
func WithSQLite(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.db.Driver = config.DriverSQLite
		c.db.Path = path
	})
}

// WithKeyPrefix sets the Redis/Valkey key prefix. Default: "lookup:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithReadinessTimeout bounds the initial database readiness check. Default: 10s.
func WithReadinessTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.readinessTimeout = d
	})
}

// WithTenant scopes every call of the client to tenant. Default: "default".
func WithTenant(tenant string) Option {
	return optionFunc(func(c *clientConfig) {
		c.tenant = tenant
	})
}

// WithLimits sets the default, quick and maximum result limits.
// Zero values keep the defaults (10, 5, 100).
func WithLimits(defaultLimit, quickLimit, maxLimit int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultLimit = defaultLimit
		c.quickLimit = quickLimit
		c.maxLimit = maxLimit
	})
}

// WithMaxQueryLength sets the maximum query length in bytes. Default: 256.
func WithMaxQueryLength(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxQueryLength = n
	})
}

// WithFetchTimeout bounds each per-category fetch. Default: 2s.
func WithFetchTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.fetchTimeout = d
	})
}

// WithMaxBatchSize sets the maximum number of records per batch operation.
// Default: 500.
func WithMaxBatchSize(size int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxBatchSize = size
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK and search metrics on the given registerer.
// Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
