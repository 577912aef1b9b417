package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/shopmetrics/schedconform/internal/config"
	"github.com/shopmetrics/schedconform/internal/db"
	"github.com/spf13/cobra"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Run-history database management",
	}

	cmd.AddCommand(newDBInitCmd())
	cmd.AddCommand(newDBResetCmd())
	return cmd
}

func newDBInitCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the run-history database",
		Long:  "Creates the database (sqlite file or MySQL schema) and migrates all tables.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBInit(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "sc.yaml", "path to config file")
	return cmd
}

func runDBInit(cmd *cobra.Command, configPath string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cfg.Database.Driver == "mysql" {
		adminDB, err := db.ConnectAdmin(cfg.Database.Host, cfg.Database.Port)
		if err != nil {
			return err
		}
		if err := db.CreateDatabase(adminDB, cfg.Database.Name); err != nil {
			return err
		}
		fmt.Fprintf(out, "Database %s ready on %s:%d\n", cfg.Database.Name, cfg.Database.Host, cfg.Database.Port)
	}

	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrated %d tables\n", len(db.AllModels()))

	fmt.Fprintln(out, "\nRun-history database initialized successfully.")
	return nil
}

func newDBResetCmd() *cobra.Command {
	var (
		configPath string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop and re-initialize the run-history database",
		Long:  "Deletes all persisted runs (removes the sqlite file, or drops the MySQL schema) and re-creates the tables.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBReset(cmd, configPath, yes)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "sc.yaml", "path to config file")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

func runDBReset(cmd *cobra.Command, configPath string, skipConfirm bool) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	target := cfg.Database.Path
	if cfg.Database.Driver == "mysql" {
		target = cfg.Database.Name
	}
	if !skipConfirm && !confirmReset(cmd, target) {
		fmt.Fprintln(out, "Aborted.")
		return nil
	}

	switch cfg.Database.Driver {
	case "sqlite":
		if err := os.Remove(cfg.Database.Path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", cfg.Database.Path, err)
		}
		fmt.Fprintf(out, "Removed %s\n", cfg.Database.Path)
	case "mysql":
		adminDB, err := db.ConnectAdmin(cfg.Database.Host, cfg.Database.Port)
		if err != nil {
			return err
		}
		if err := db.DropDatabase(adminDB, cfg.Database.Name); err != nil {
			return err
		}
		fmt.Fprintf(out, "Dropped database %s\n", cfg.Database.Name)
		if err := db.CreateDatabase(adminDB, cfg.Database.Name); err != nil {
			return err
		}
	}

	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrated %d tables\n", len(db.AllModels()))

	fmt.Fprintln(out, "\nRun-history database reset successfully.")
	return nil
}

func confirmReset(cmd *cobra.Command, target string) bool {
	out := cmd.OutOrStdout()
	in := cmd.InOrStdin()

	fmt.Fprintf(out, "WARNING: This will permanently delete all run history in %q.\n", target)
	fmt.Fprintln(out, "This action cannot be undone.")
	fmt.Fprintln(out)
	fmt.Fprint(out, "Type \"yes\" to confirm: ")

	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()) == "yes"
	}
	return false
}
