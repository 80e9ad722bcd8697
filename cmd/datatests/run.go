package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"datatests/internal/datatest/models"
	"datatests/internal/datatest/registry"
)

// runParams holds the parsed flags for the run command.
type runParams struct {
	model  string
	test   string
	format string
	strict bool
	stdout io.Writer
}

// runRun is the testable body of the run command. A test name wins over a
// model name; with neither every descriptor runs. An ambiguous model name
// aborts before anything runs.
func runRun(ctx context.Context, a *app, p runParams) error {
	if err := checkFormat(p.format); err != nil {
		return err
	}

	var (
		summaries []*models.RunSummary
		err       error
	)
	switch {
	case p.test != "":
		if p.model != "" {
			a.logger.InfoContext(ctx, "--test given, ignoring --model", "model", p.model)
		}
		summaries, err = a.svc.RerunByMethodName(ctx, p.test)
	case p.model != "":
		typeName, resolveErr := a.svc.Catalog().ResolveType(p.model)
		if resolveErr != nil {
			return resolveErr
		}
		summaries, err = a.svc.RerunForDomainType(ctx, typeName)
	default:
		summaries, err = a.svc.RerunAll(ctx)
	}

	if len(summaries) > 0 {
		if werr := writeSummaries(p.stdout, p.format, summaries); werr != nil {
			return werr
		}
	}
	if err != nil {
		return err
	}
	if p.strict {
		if n := unexpectedFailures(summaries); n > 0 {
			return fmt.Errorf("%d unexpected data test failure(s)", n)
		}
	}
	return nil
}

func unexpectedFailures(summaries []*models.RunSummary) int {
	n := 0
	for _, s := range summaries {
		n += s.Counts.Failed - s.Counts.FailedXFail
	}
	return n
}

func newRunCmd(opts *rootOptions, models func() []registry.Model) *cobra.Command {
	var p runParams
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Reconcile and evaluate data tests",
		Long: `Run reconciles the result rows of each selected test with the live
objects of its domain type and evaluates the test.

With --test only tests whose method name matches run (exact name or glob).
With --model only the tests of that domain type run; the name may be the
full type name or its short name. With neither, every test runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, models, func(ctx context.Context, a *app) error {
				p.stdout = cmd.OutOrStdout()
				return runRun(ctx, a, p)
			})
		},
	}
	cmd.Flags().StringVarP(&p.model, "model", "m", "", "domain type to run tests for")
	cmd.Flags().StringVarP(&p.test, "test", "t", "", "test method name or glob to run")
	cmd.Flags().StringVar(&p.format, "format", "text", "output format: text or json")
	cmd.Flags().BoolVar(&p.strict, "strict", false, "exit non-zero when a failure is not marked xfail")
	return cmd
}

// withApp loads config, wires the app, runs fn and closes the app.
func withApp(ctx context.Context, opts *rootOptions, models func() []registry.Model, fn func(context.Context, *app) error) error {
	cfg, logger, err := loadConfig(opts)
	if err != nil {
		return err
	}
	a, err := newApp(ctx, cfg, logger, models())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			logger.WarnContext(ctx, "shutdown", "error", cerr)
		}
	}()
	return fn(ctx, a)
}

func checkFormat(format string) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format %q: must be 'text' or 'json'", format)
	}
	return nil
}
