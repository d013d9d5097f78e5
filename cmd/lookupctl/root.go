package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/lookup"
	"github.com/kailas-cloud/lookup/internal/config"
	"github.com/kailas-cloud/lookup/internal/version"
)

// globalFlags are the connection and output flags shared by every command.
type globalFlags struct {
	config   string
	driver   string
	addr     string
	password string
	sqlite   string
	tenant   string
	json     bool
	timeout  time.Duration
}

// noClientCommands run without a database connection.
var noClientCommands = map[string]bool{
	"help":       true,
	"completion": true,
}

// app holds the state of one invocation.
type app struct {
	flags  globalFlags
	out    io.Writer
	client *lookup.Client
}

// execute runs one CLI invocation and closes the client it opened.
func execute(ctx context.Context, out, errOut io.Writer, args []string) error {
	a := &app{out: out}
	defer a.close()

	root := newRootCmd(a)
	root.SetErr(errOut)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "lookupctl",
		Short:         "Search and manage lookup records",
		Long:          `Search people, organizations and groups, and import or inspect records in a lookup database.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if noClientCommands[cmd.Name()] {
				return nil
			}
			return a.connect(cmd)
		},
	}
	root.SetOut(a.out)

	f := root.PersistentFlags()
	f.StringVar(&a.flags.config, "config", "", "Server config file to read database and tenancy settings from")
	f.StringVar(&a.flags.driver, "driver", "", "Database driver: redis, valkey or sqlite")
	f.StringVar(&a.flags.addr, "addr", "localhost:6379", "Redis/Valkey address")
	f.StringVar(&a.flags.password, "password", "", "Redis/Valkey password")
	f.StringVar(&a.flags.sqlite, "sqlite", "", "SQLite database file (implies --driver sqlite)")
	f.StringVar(&a.flags.tenant, "tenant", "", "Tenant to operate on (default \"default\")")
	f.BoolVar(&a.flags.json, "json", false, "Print JSON output")
	f.DurationVar(&a.flags.timeout, "timeout", 10*time.Second, "Database readiness timeout")

	root.AddCommand(
		a.newSearchCmd(),
		a.newQuickCmd(),
		a.newImportCmd(),
		a.newGetCmd(),
		a.newDeleteCmd(),
		a.newHealthCmd(),
	)
	return root
}

func (a *app) close() {
	if a.client != nil {
		a.client.Close()
		a.client = nil
	}
}

// connect opens the client from flags, falling back to --config values.
func (a *app) connect(cmd *cobra.Command) error {
	opts, err := a.options(cmd)
	if err != nil {
		return err
	}
	client, err := lookup.New(cmd.Context(), opts...)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	a.client = client
	return nil
}

func (a *app) options(cmd *cobra.Command) ([]lookup.Option, error) {
	fl := a.flags
	opts := []lookup.Option{lookup.WithReadinessTimeout(fl.timeout)}

	if fl.config != "" {
		cfg, err := config.LoadFile(fl.config)
		if err != nil {
			return nil, err
		}
		if fl.driver == "" && fl.sqlite == "" {
			fl.driver = cfg.Database.Driver
			fl.sqlite = cfg.Database.Path
			if len(cfg.Database.Addrs) > 0 && !cmd.Flags().Changed("addr") {
				fl.addr = cfg.Database.Addrs[0]
			}
			if fl.password == "" {
				fl.password = cfg.Database.Password
			}
		}
		if fl.tenant == "" {
			fl.tenant = cfg.Tenancy.DefaultTenant
		}
		opts = append(opts,
			lookup.WithKeyPrefix(cfg.Storage.KeyPrefix),
			lookup.WithLimits(cfg.Search.DefaultLimit, cfg.Search.QuickLimit, cfg.Search.MaxLimit),
			lookup.WithMaxQueryLength(cfg.Search.MaxQueryLength),
			lookup.WithFetchTimeout(cfg.Search.FetchTimeout()),
			lookup.WithMaxBatchSize(cfg.Records.MaxBatchSize),
		)
	}

	switch {
	case fl.sqlite != "" && (fl.driver == "" || fl.driver == config.DriverSQLite):
		opts = append(opts, lookup.WithSQLite(fl.sqlite))
	case fl.driver == config.DriverSQLite:
		return nil, errors.New("--sqlite is required with --driver sqlite")
	case fl.driver == config.DriverValkey:
		opts = append(opts, lookup.WithValkey(fl.addr, fl.password))
	case fl.driver == config.DriverRedis || fl.driver == "":
		opts = append(opts, lookup.WithRedis(fl.addr, fl.password))
	default:
		return nil, fmt.Errorf("unknown driver %q (valid: redis, valkey, sqlite)", fl.driver)
	}

	if fl.tenant != "" {
		opts = append(opts, lookup.WithTenant(fl.tenant))
	}
	return opts, nil
}
