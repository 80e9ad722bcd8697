// Command datatests discovers, runs and reports the data-quality tests
// registered for the application's domain types, and serves the admin API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"datatests/internal/datatest/registry"
	"datatests/internal/platform/config"
	"datatests/internal/platform/logger"
	"datatests/internal/sampledomain"
)

// Set by build flags.
var version = "dev"

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(sampledomain.Demo).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. models supplies the registered domain
// types; it is called once per invocation.
func newRootCmd(models func() []registry.Model) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "datatests",
		Short: "Data-quality tests for domain objects",
		Long: `datatests keeps one persisted pass/fail result per (test, object) pair
for every registered domain type. Runs reconcile the result rows with the
live objects, then evaluate each test.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", os.Getenv("DATATESTS_CONFIG"), "path to a YAML config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")

	root.AddCommand(newRunCmd(opts, models))
	root.AddCommand(newDiscoverCmd(opts, models))
	root.AddCommand(newResultsCmd(opts, models))
	root.AddCommand(newServeCmd(opts, models))
	root.AddCommand(newTokenCmd(opts))
	return root
}

// loadConfig reads the config file (if any) and builds the CLI logger.
func loadConfig(opts *rootOptions) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	return cfg, newCLILogger(cfg.Log), nil
}

// newCLILogger logs to stderr so stdout stays clean for reports: JSON lines
// for machines, charmbracelet/log otherwise.
func newCLILogger(cfg config.LogConfig) *slog.Logger {
	if cfg.Format == "json" {
		return logger.NewWithWriter(os.Stderr, cfg.Format, cfg.Level)
	}
	level, err := charmlog.ParseLevel(cfg.Level)
	if err != nil {
		level = charmlog.InfoLevel
	}
	handler := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	return slog.New(handler)
}
