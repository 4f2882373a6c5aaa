package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"sourcing-trainer/models"
)

func newLeaderboardCmd() *cobra.Command {
	var (
		window string
		limit  int
		format string
	)
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the projected leaderboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := models.ParseWindow(window)
			if err != nil {
				return err
			}
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			app, err := newApplication(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer app.Close()

			entries, err := app.leaderboards.Leaderboard(cmd.Context(), w, limit)
			if err != nil {
				return err
			}
			return writeLeaderboard(cmd.OutOrStdout(), format, entries)
		},
	}
	cmd.Flags().StringVar(&window, "window", "all", "all, daily, weekly or monthly")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum entries, 0 for all")
	cmd.Flags().StringVarP(&format, "output", "o", "table", "table, json or yaml")
	return cmd
}

func writeLeaderboard(out io.Writer, format string, entries []models.LeaderboardEntry) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(entries)
	case "table":
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "RANK\tNAME\tSCORE\tATTEMPTS\tACHIEVEMENTS")
		for _, e := range entries {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\n", e.Rank, e.Name, e.Score, e.AttemptCount, e.AchievementCount)
		}
		return tw.Flush()
	}
	return fmt.Errorf("unknown output format %q", format)
}
