package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/lookup"
)

func (a *app) newSearchCmd() *cobra.Command {
	var (
		categories []string
		limit      int
	)
	c := &cobra.Command{
		Use:   "search <query>",
		Short: "Search across categories",
		Long: `Search people, organizations and groups for a substring.

Results are ranked by relevance; equal scores keep category order
(person, organization, group).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := a.client.Query(strings.Join(args, " ")).Limit(limit)
			for _, name := range categories {
				cat, err := lookup.ParseCategory(name)
				if err != nil {
					return err
				}
				q = q.Categories(cat)
			}
			resp, err := q.DoWithReport(cmd.Context())
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}
			return a.printResults(resp)
		},
	}
	c.Flags().StringSliceVarP(&categories, "category", "c", nil, "Restrict to categories (repeatable or comma separated)")
	c.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of results (default from server limits)")
	return c
}

func (a *app) newQuickCmd() *cobra.Command {
	var limit int
	c := &cobra.Command{
		Use:   "quick <query>",
		Short: "Autocomplete search across all categories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.Query(strings.Join(args, " ")).Quick().Limit(limit).DoWithReport(cmd.Context())
			if err != nil {
				return fmt.Errorf("quick: %w", err)
			}
			return a.printResults(resp)
		},
	}
	c.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of results (default 5)")
	return c
}
