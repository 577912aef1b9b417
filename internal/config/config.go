// Package config provides YAML-based configuration loading for the
// schedule-conformance pipeline.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopmetrics/schedconform/internal/workorder"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration, loaded from sc.yaml. The tracked
// facility list and facility→unit mapping are compiled in, not configured.
type Config struct {
	Week      int             `yaml:"week"`
	Weekday   string          `yaml:"weekday"`
	DataDir   string          `yaml:"data_dir"`
	OutputDir string          `yaml:"output_dir"`
	Database  DatabaseConfig  `yaml:"database"`
	Slack     SlackConfig     `yaml:"slack"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Watch     WatchConfig     `yaml:"watch"`
}

// DatabaseConfig selects where run history is stored: a local sqlite file
// (the default) or a MySQL-compatible server.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	Name   string `yaml:"name"`
}

// SlackConfig enables the daily summary post when a token is present.
type SlackConfig struct {
	Token   string `yaml:"token"`
	Channel string `yaml:"channel"`
}

// DashboardConfig holds settings for the read-only web dashboard.
type DashboardConfig struct {
	Port int `yaml:"port"`
}

// WatchConfig holds the cron expression for scheduled daily runs.
type WatchConfig struct {
	Cron string `yaml:"cron"`
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = "."
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Path == "" {
		c.Database.Path = "schedconform.db"
	}
	if c.Database.Host == "" {
		c.Database.Host = "127.0.0.1"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 3306
	}
	if c.Database.Name == "" {
		c.Database.Name = "schedconform"
	}
	if c.Dashboard.Port == 0 {
		c.Dashboard.Port = 8080
	}
	if c.Watch.Cron == "" {
		// Weekday mornings, after the nightly export lands.
		c.Watch.Cron = "30 6 * * 1-6"
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	if c.Week <= 0 {
		errs = append(errs, "week must be a positive week number")
	}
	if c.Weekday != "" {
		if _, err := workorder.WeekdayIndex(c.Weekday); err != nil {
			errs = append(errs, fmt.Sprintf("weekday %q is not a weekday name", c.Weekday))
		}
	}
	switch c.Database.Driver {
	case "sqlite", "mysql":
	default:
		errs = append(errs, fmt.Sprintf("database.driver %q must be sqlite or mysql", c.Database.Driver))
	}
	if c.Slack.Token != "" && c.Slack.Channel == "" {
		errs = append(errs, "slack.channel is required when slack.token is set")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
