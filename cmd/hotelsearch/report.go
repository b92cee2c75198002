package main

import (
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newReportCmd(a *app) *cobra.Command {
	var (
		dbPath string
		limit  int
		stats  bool
	)

	cmd := &cobra.Command{
		Use:     "report",
		Aliases: []string{"ls"},
		Short:   "List recorded runs",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.openStore(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			out := cmd.OutOrStdout()

			if stats {
				envStats, err := db.GetEnvironmentStats()
				if err != nil {
					return fmt.Errorf("failed to get statistics: %w", err)
				}

				table := tablewriter.NewWriter(out)
				table.Header("Environment", "Runs", "Pass rate", "Avg price", "Min", "Max", "Avg rating", "Last run")
				for _, s := range envStats {
					err := table.Append([]string{
						s.Environment,
						fmt.Sprint(s.Runs),
						fmt.Sprintf("%.0f%%", s.PassRate()),
						fmt.Sprintf("%.2f", s.AvgPrice),
						fmt.Sprintf("%.2f", s.MinPrice),
						fmt.Sprintf("%.2f", s.MaxPrice),
						fmt.Sprintf("%.2f", s.AvgRating),
						s.LastRunAt.Local().Format(time.DateTime),
					})
					if err != nil {
						return fmt.Errorf("failed to render statistics: %w", err)
					}
				}
				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render statistics: %w", err)
				}
				return nil
			}

			runs, err := db.ListRuns(limit)
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet.")
				return nil
			}

			table := tablewriter.NewWriter(out)
			table.Header("ID", "Started", "Env", "City", "Dates", "Price", "Rating", "Status")
			for _, r := range runs {
				status := "PASSED"
				if !r.Passed {
					status = "FAILED"
				}
				err := table.Append([]string{
					r.ID,
					r.StartedAt.Local().Format(time.DateTime),
					r.Environment,
					r.City,
					r.CheckIn + ".." + r.CheckOut,
					fmt.Sprintf("%.2f", r.Price),
					fmt.Sprintf("%.1f", r.Rating),
					status,
				})
				if err != nil {
					return fmt.Errorf("failed to render report: %w", err)
				}
			}
			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render report: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "run history database, overrides DB_PATH")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to show, 0 for all")
	cmd.Flags().BoolVar(&stats, "stats", false, "show per-environment statistics instead of runs")

	return cmd
}

func newPruneCmd(a *app) *cobra.Command {
	var (
		dbPath    string
		olderThan time.Duration
	)

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete recorded runs older than a given age",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if olderThan <= 0 {
				return fmt.Errorf("--older-than must be positive, got %s", olderThan)
			}

			db, err := a.openStore(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := db.DeleteRunsBefore(time.Now().Add(-olderThan))
			if err != nil {
				return fmt.Errorf("failed to prune runs: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d run(s)\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "run history database, overrides DB_PATH")
	cmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "minimum age of the runs to delete")

	return cmd
}
