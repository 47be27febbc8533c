package commands

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/measuretrack/measuretrack/internal/filter"
	"github.com/measuretrack/measuretrack/internal/pipeline"
)

func newSheetsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sheets",
		Short: "List data sheets with record counts",
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
			fmt.Fprintln(cmd.OutOrStdout(), sheetsTable(d))
			return nil
		},
	}
}

func sheetsTable(d *pipeline.Dashboard) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Sheet", "Records", "Columns")
	for _, c := range d.Counts(filter.State{}) {
		sheet, _ := d.Sheet(c.Sheet)
		t.Row(c.Sheet, strconv.Itoa(c.Total), strconv.Itoa(len(d.Columns(sheet))))
	}
	return t.String()
}
