package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopmetrics/schedconform/internal/config"
	"github.com/spf13/cobra"
)

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

func newWatchCmd() *cobra.Command {
	var (
		configPath string
		noDB       bool
		noSlack    bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the rollup on a schedule",
		Long:  "Stays resident and runs the daily rollup on the configured cron schedule, after each morning's export lands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return runWatch(cmd, cfg, noDB, noSlack)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "sc.yaml", "path to config file")
	cmd.Flags().BoolVar(&noDB, "no-db", false, "skip saving run history")
	cmd.Flags().BoolVar(&noSlack, "no-slack", false, "skip the Slack summary")
	return cmd
}

func runWatch(cmd *cobra.Command, cfg *config.Config, noDB, noSlack bool) error {
	out := cmd.OutOrStdout()

	sched, err := cronParser.Parse(cfg.Watch.Cron)
	if err != nil {
		return fmt.Errorf("parse watch.cron %q: %w", cfg.Watch.Cron, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(out, "Watching on schedule %q (Ctrl+C to stop)\n", cfg.Watch.Cron)

	for {
		next := sched.Next(time.Now())
		fmt.Fprintf(out, "Next rollup at %s\n", next.Format("2006-01-02 15:04"))

		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "Stopping.")
			return nil
		case <-time.After(time.Until(next)):
			if err := runRollup(cmd, cfg, 0, "", noDB, noSlack, time.Now()); err != nil {
				// Keep watching: a bad morning export shouldn't kill the loop.
				fmt.Fprintf(out, "rollup failed: %v\n", err)
			}
		}
	}
}
