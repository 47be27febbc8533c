package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/measuretrack/measuretrack/internal/dashboard"
	"github.com/measuretrack/measuretrack/internal/filter"
	"github.com/measuretrack/measuretrack/internal/pipeline"
)

func newDashboardCommand(opts *rootOptions) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Browse the workbook interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The terminal belongs to the dashboard; logs only go to a file.
			var logOut io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("opening log file: %w", err)
				}
				defer f.Close()
				logOut = f
			}

			cfg, logger, err := opts.setup(logOut)
			if err != nil {
				return err
			}
			if cfg.SourceLocation() == "" {
				return errNoSource
			}
			rd, err := renderer(cfg.Export.Format)
			if err != nil {
				return err
			}

			load := func(ctx context.Context) (*pipeline.Dashboard, error) {
				return loadDashboard(ctx, cfg, logger)
			}
			exportFn := func(d *pipeline.Dashboard, state filter.State, filtered bool) (string, error) {
				return writeExport(d, state, filtered, cfg, rd, logger)
			}

			return dashboard.Run(dashboard.New(load, exportFn, logger))
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file")

	return cmd
}
