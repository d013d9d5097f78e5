package main

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/kailas-cloud/lookup"
)

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// resultJSON is the JSON shape of one search hit.
type resultJSON struct {
	Category    string `json:"category"`
	ID          string `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	Icon        string `json:"icon"`
	Score       int    `json:"score"`
}

func (a *app) printResults(resp lookup.Response) error {
	if a.flags.json {
		items := make([]resultJSON, len(resp.Results))
		for i, r := range resp.Results {
			items[i] = resultJSON{
				Category:    r.Category.String(),
				ID:          r.ID,
				Title:       r.Title,
				Subtitle:    r.Subtitle,
				Description: r.Description,
				URL:         r.URL,
				Icon:        r.Icon,
				Score:       r.Score,
			}
		}
		failed := make([]string, len(resp.Failed))
		for i, c := range resp.Failed {
			failed[i] = c.String()
		}
		return a.printJSON(map[string]any{
			"items":             items,
			"total":             len(items),
			"failed_categories": failed,
		})
	}

	if len(resp.Results) == 0 {
		fmt.Fprintln(a.out, "no results")
	} else {
		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "SCORE\tCATEGORY\tID\tTITLE\tSUBTITLE")
		for _, r := range resp.Results {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.Score, r.Category, r.ID, r.Title, r.Subtitle)
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
	}
	if resp.Partial() {
		fmt.Fprintf(a.out, "warning: partial results, failed categories: %v\n", resp.Failed)
	}
	return nil
}

func (a *app) printRecord(cat lookup.Category, rec lookup.Record) error {
	fields := lookup.RecordFields(rec)
	if a.flags.json {
		return a.printJSON(fields)
	}
	for _, name := range lookup.RecordColumns(cat) {
		if v := fields[name]; v != "" {
			fmt.Fprintf(a.out, "%s: %s\n", name, v)
		}
	}
	return nil
}

func (a *app) printImport(r importReport) error {
	if a.flags.json {
		return a.printJSON(r)
	}
	fmt.Fprintf(a.out, "imported %d, failed %d\n", r.Succeeded, r.Failed)
	for _, e := range r.Errors {
		fmt.Fprintf(a.out, "  %s %s: %s\n", e.Category, e.ID, e.Error)
	}
	return nil
}

func sortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
