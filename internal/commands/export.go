package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/measuretrack/measuretrack/internal/config"
	"github.com/measuretrack/measuretrack/internal/export"
	"github.com/measuretrack/measuretrack/internal/filter"
	"github.com/measuretrack/measuretrack/internal/pipeline"
)

const exportTitle = "Measures"

func newExportCommand(opts *rootOptions) *cobra.Command {
	var filters filterFlags
	var filtered bool
	var format, dir, basename string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every sheet, or only matching records, to PDF, XLSX or Markdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if filters.set() && !filtered {
				return errors.New("filter flags require --filtered")
			}

			cfg, logger, err := opts.setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if format != "" {
				cfg.Export.Format = format
			}
			if dir != "" {
				cfg.Export.Dir = dir
			}
			if basename != "" {
				cfg.Export.Basename = basename
			}

			rd, err := renderer(cfg.Export.Format)
			if err != nil {
				return err
			}

			d, err := loadDashboard(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			state, err := d.ResolveState(filters.portfolios, filters.tags, filters.query)
			if err != nil {
				return err
			}

			path, err := writeExport(d, state, filtered, cfg, rd, logger)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	addFilterFlags(cmd, &filters)
	cmd.Flags().BoolVar(&filtered, "filtered", false, "export only records matching the filter flags")
	cmd.Flags().StringVar(&format, "format", "", "output format: pdf, xlsx, md (default from config)")
	cmd.Flags().StringVar(&dir, "dir", "", "output directory (default from config)")
	cmd.Flags().StringVar(&basename, "basename", "", "output file name without extension (default from config)")

	return cmd
}

func renderer(format string) (export.Renderer, error) {
	reg := export.DefaultRegistry()
	if rd := reg.Get(format); rd != nil {
		return rd, nil
	}
	formats := reg.Formats()
	sort.Strings(formats)
	return nil, fmt.Errorf("unknown export format %q (want one of %s)", format, strings.Join(formats, ", "))
}

// writeExport projects the dashboard and writes it with rd.
func writeExport(d *pipeline.Dashboard, state filter.State, filtered bool, cfg *config.Config, rd export.Renderer, logger *slog.Logger) (string, error) {
	doc := export.Project(exportTitle, d.Sheets, d.Columns, state, filtered)
	path, err := export.WriteFile(cfg.Export.Dir, cfg.Export.Basename, rd, doc)
	if err != nil {
		return "", err
	}
	logger.Info("export written", "path", path, "format", rd.Format(), "tables", len(doc.Tables), "filtered", filtered)
	return path, nil
}
