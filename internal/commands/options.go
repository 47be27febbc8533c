package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/measuretrack/measuretrack/internal/model"
	"github.com/measuretrack/measuretrack/internal/pipeline"
)

func newOptionsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List portfolio and tag filter options with their colors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			d, err := loadDashboard(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, optionsTable(d))
			if len(d.Diagnostics) > 0 {
				fmt.Fprintf(out, "\n%d problem(s) in the %s sheet:\n", len(d.Diagnostics), cfg.Sheets.Config)
				for _, diag := range d.Diagnostics {
					fmt.Fprintf(out, "  %s\n", diag.Error())
				}
			}
			return nil
		},
	}
}

func optionsTable(d *pipeline.Dashboard) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Kind", "Name", "Color")
	addRows := func(kind string, names []string, p model.Palette) {
		for _, n := range names {
			color, ok := p.Lookup(n)
			if !ok {
				color = p.Fallback() + " (fallback)"
			}
			t.Row(kind, n, color)
		}
	}
	addRows("portfolio", d.Lookups.Portfolios, d.Lookups.PortfolioColors)
	addRows("tag", d.Lookups.Tags, d.Lookups.TagColors)
	return t.String()
}
