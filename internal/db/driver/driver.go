// Package driver opens the configured db.Store implementation.
package driver

import (
	"fmt"

	"github.com/kailas-cloud/lookup/internal/config"
	"github.com/kailas-cloud/lookup/internal/db"
	dbRedis "github.com/kailas-cloud/lookup/internal/db/redis"
	"github.com/kailas-cloud/lookup/internal/db/sqlite"
)

// Open creates the store selected by cfg.Driver. Redis and Valkey share
// the rueidis store; keyPrefix applies to them only.
func Open(cfg config.DatabaseConfig, keyPrefix string) (db.Store, error) {
	switch cfg.Driver {
	case config.DriverRedis, config.DriverValkey, "":
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.Addrs,
			Username:  cfg.Username,
			Password:  cfg.Password,
			DB:        cfg.DB,
			KeyPrefix: keyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("%s store: %w", cfg.Driver, err)
		}
		return store, nil
	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("sqlite store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
