package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"datatests/internal/datatest/models"
	"datatests/internal/datatest/registry"
	id "datatests/pkg/domain"
)

const resultsPageSize = 500

type resultsParams struct {
	failing bool
	format  string
	stdout  io.Writer
}

// runResults prints every stored row, or only the failing ones.
func runResults(ctx context.Context, a *app, p resultsParams) error {
	if err := checkFormat(p.format); err != nil {
		return err
	}
	methods, err := a.svc.ListMethods(ctx)
	if err != nil {
		return err
	}
	byID := make(map[id.TestMethodID]*models.TestMethod, len(methods))
	for _, m := range methods {
		byID[m.ID] = m
	}

	filter := models.ResultFilter{Limit: resultsPageSize}
	if p.failing {
		passed := false
		filter.Passed = &passed
	}
	var rows []*models.TestResult
	for {
		page, err := a.svc.ListResults(ctx, filter)
		if err != nil {
			return err
		}
		rows = append(rows, page.Results...)
		if len(page.Results) == 0 || len(rows) >= page.Total {
			break
		}
		filter.Offset += len(page.Results)
	}
	return writeResults(p.stdout, p.format, rows, byID)
}

func newResultsCmd(opts *rootOptions, models func() []registry.Model) *cobra.Command {
	var p resultsParams
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Report stored data test results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, models, func(ctx context.Context, a *app) error {
				p.stdout = cmd.OutOrStdout()
				return runResults(ctx, a, p)
			})
		},
	}
	cmd.Flags().BoolVar(&p.failing, "failing", false, "only show failing results")
	cmd.Flags().StringVar(&p.format, "format", "text", "output format: text or json")
	return cmd
}
