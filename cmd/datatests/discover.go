package main

import (
	"context"

	"github.com/spf13/cobra"

	"datatests/internal/datatest/registry"
)

func newDiscoverCmd(opts *rootOptions, models func() []registry.Model) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Persist a descriptor for every registered test",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			return withApp(cmd.Context(), opts, models, func(ctx context.Context, a *app) error {
				methods, err := a.svc.SyncCatalog(ctx)
				if err != nil {
					return err
				}
				a.logger.InfoContext(ctx, "catalog synced", "tests", len(methods))
				return writeMethods(cmd.OutOrStdout(), format, methods)
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")
	return cmd
}
