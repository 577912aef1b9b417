package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopmetrics/schedconform/internal/chart"
	"github.com/shopmetrics/schedconform/internal/config"
	"github.com/shopmetrics/schedconform/internal/db"
	"github.com/shopmetrics/schedconform/internal/ingest"
	"github.com/shopmetrics/schedconform/internal/notify"
	"github.com/shopmetrics/schedconform/internal/pipeline"
	"github.com/shopmetrics/schedconform/internal/report"
	"github.com/shopmetrics/schedconform/internal/workorder"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var (
		configPath string
		week       int
		weekday    string
		noDB       bool
		noSlack    bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the daily conformance rollup",
		Long:  "Loads the week's exports from Monday through the current weekday, computes per-unit progress, and writes the reports.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return runRollup(cmd, cfg, week, weekday, noDB, noSlack, time.Now())
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "sc.yaml", "path to config file")
	cmd.Flags().IntVar(&week, "week", 0, "week number (overrides config)")
	cmd.Flags().StringVar(&weekday, "weekday", "", "weekday to roll up through (overrides config)")
	cmd.Flags().BoolVar(&noDB, "no-db", false, "skip saving run history")
	cmd.Flags().BoolVar(&noSlack, "no-slack", false, "skip the Slack summary")
	return cmd
}

func runRollup(cmd *cobra.Command, cfg *config.Config, week int, weekday string, noDB, noSlack bool, now time.Time) error {
	out := cmd.OutOrStdout()

	if week == 0 {
		week = cfg.Week
	}
	if weekday == "" {
		weekday = cfg.Weekday
	}
	if weekday == "" {
		weekday = now.Weekday().String()
	}
	if _, err := workorder.WeekdayIndex(weekday); err != nil {
		return err
	}

	snapshots, err := ingest.LoadWeek(cfg.DataDir, week, weekday)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Loaded %d daily exports for week %d\n", len(snapshots), week)

	result, err := pipeline.Execute(week, weekday, snapshots, now)
	if err != nil {
		return err
	}

	if err := writeReports(cmd, cfg.OutputDir, result); err != nil {
		return err
	}

	if !noDB {
		if err := saveRunHistory(cmd, cfg, result, now); err != nil {
			return err
		}
	}

	if !noSlack && cfg.Slack.Token != "" {
		// Best-effort: a Slack outage should not fail the rollup.
		if err := postSummary(cmd.Context(), cfg, result); err != nil {
			slog.Warn("slack summary failed", "error", err)
		}
	}

	fmt.Fprintf(out, "Rollup complete for week %d, %s\n", week, weekday)
	return nil
}

func writeReports(cmd *cobra.Command, dir string, result *pipeline.Result) error {
	out := cmd.OutOrStdout()

	if result.Weekday == "Monday" {
		if err := report.WriteMondayScheduled(dir, result.Week, result.MondayScheduled); err != nil {
			return err
		}
		fmt.Fprintln(out, "Wrote Monday scheduled workbooks")
	}

	if err := report.WriteStatus(dir, result.Week, result.Status); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s\n", report.StatusFileName(result.Week))

	if err := report.WriteNotScheduled(dir, result.Week, result.NotScheduled); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s\n", report.NotScheduledFileName(result.Week))

	if result.FridayScheduled != nil {
		if err := report.WriteReasons(dir, result.Week, result.FridayScheduled); err != nil {
			return err
		}
		fmt.Fprintln(out, "Wrote reasons workbooks")
	}

	if err := chart.WriteWeekly(dir, result.Week, result.Status); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s\n", chart.FileName(result.Week))
	return nil
}

func saveRunHistory(cmd *cobra.Command, cfg *config.Config, result *pipeline.Result, now time.Time) error {
	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}
	runID, err := db.SaveRun(gormDB, result, now)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved run %s\n", runID)
	return nil
}

func postSummary(ctx context.Context, cfg *config.Config, result *pipeline.Result) error {
	n, err := notify.New(notify.Opts{Token: cfg.Slack.Token, Channel: cfg.Slack.Channel})
	if err != nil {
		return err
	}
	return n.PostSummary(ctx, result)
}
