package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/lookup"
)

// importFile is the YAML layout read by import: records keyed by category
// name ("people", "organizations", "groups" or their singular forms).
type importFile map[string][]map[string]string

func (a *app) newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Upsert records from a YAML file",
		Long: `Upsert records from a YAML file keyed by category:

  people:
    - id: e-1
      first_name: Jane
      last_name: Doe
  organizations:
    - id: o-1
      name: Acme`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(filepath.Clean(args[0]))
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			var file importFile
			if err := yaml.Unmarshal(data, &file); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			report := importReport{}
			for _, name := range sortedKeys(file) {
				rows := file[name]
				cat, err := lookup.ParseCategory(name)
				if err != nil {
					return err
				}
				if err := a.importCategory(cmd, cat, rows, &report); err != nil {
					return err
				}
			}

			if err := a.printImport(report); err != nil {
				return err
			}
			if report.Failed > 0 {
				return fmt.Errorf("import: %d of %d records failed", report.Failed, report.Failed+report.Succeeded)
			}
			return nil
		},
	}
}

// importReport summarizes an import.
type importReport struct {
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Errors    []importError `json:"errors,omitempty"`
}

type importError struct {
	Category string `json:"category"`
	ID       string `json:"id"`
	Error    string `json:"error"`
}

func (a *app) importCategory(cmd *cobra.Command, cat lookup.Category, rows []map[string]string, r *importReport) error {
	recs := make([]lookup.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := lookup.RecordFromFields(cat, row)
		if err != nil {
			r.Failed++
			r.Errors = append(r.Errors, importError{Category: cat.String(), ID: row["id"], Error: err.Error()})
			continue
		}
		recs = append(recs, rec)
	}
	if len(recs) == 0 {
		return nil
	}

	results, err := a.client.Records(cat).BatchUpsert(cmd.Context(), recs)
	if err != nil {
		return fmt.Errorf("import %s: %w", cat, err)
	}
	for _, res := range results {
		if res.OK {
			r.Succeeded++
			continue
		}
		r.Failed++
		r.Errors = append(r.Errors, importError{Category: cat.String(), ID: res.ID, Error: res.Err.Error()})
	}
	return nil
}

func (a *app) newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <category> <id>",
		Short: "Print one record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := lookup.ParseCategory(args[0])
			if err != nil {
				return err
			}
			rec, err := a.client.Records(cat).Get(cmd.Context(), args[1])
			if errors.Is(err, lookup.ErrRecordNotFound) {
				return fmt.Errorf("%s %q not found", cat, args[1])
			}
			if err != nil {
				return err
			}
			return a.printRecord(cat, rec)
		},
	}
}

func (a *app) newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <category> <id>",
		Short: "Delete one record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := lookup.ParseCategory(args[0])
			if err != nil {
				return err
			}
			if err := a.client.Records(cat).Delete(cmd.Context(), args[1]); err != nil {
				if errors.Is(err, lookup.ErrRecordNotFound) {
					return fmt.Errorf("%s %q not found", cat, args[1])
				}
				return err
			}
			if a.flags.json {
				return a.printJSON(map[string]string{"deleted": args[1], "category": cat.String()})
			}
			fmt.Fprintf(a.out, "deleted %s %s\n", cat, args[1])
			return nil
		},
	}
}

func (a *app) newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check database health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h := a.client.Health(cmd.Context())
			if a.flags.json {
				if err := a.printJSON(h); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(a.out, "status: %s\n", h.Status)
				for _, name := range sortedKeys(h.Checks) {
					fmt.Fprintf(a.out, "  %s: %s\n", name, h.Checks[name])
				}
			}
			if !h.Healthy() {
				return fmt.Errorf("unhealthy: %s", h.Status)
			}
			return nil
		},
	}
}
