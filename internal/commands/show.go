package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/measuretrack/measuretrack/internal/export"
)

const defaultWrap = 100

func newShowCommand(opts *rootOptions) *cobra.Command {
	var filters filterFlags
	var plain bool

	cmd := &cobra.Command{
		Use:   "show <sheet>",
		Short: "Print one sheet's records grouped by category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			d, err := loadDashboard(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			sheet, err := d.ResolveSheet(args[0])
			if err != nil {
				return err
			}
			state, err := d.ResolveState(filters.portfolios, filters.tags, filters.query)
			if err != nil {
				return err
			}

			view := d.View(sheet, state)
			logger.Debug("showing sheet", "sheet", sheet, "records", len(view.Records), "total", view.Total)

			var buf bytes.Buffer
			if err := export.WriteGroups(&buf, sheet, view.Groups, view.Columns, state); err != nil {
				return fmt.Errorf("rendering report: %w", err)
			}
			return writeReport(cmd.OutOrStdout(), buf.String(), plain)
		},
	}

	addFilterFlags(cmd, &filters)
	cmd.Flags().BoolVar(&plain, "plain", false, "print raw Markdown even on a terminal")

	return cmd
}

// writeReport styles Markdown for terminals and passes it through otherwise.
func writeReport(w io.Writer, md string, plain bool) error {
	width, tty := terminalWidth(w)
	if plain || !tty {
		_, err := io.WriteString(w, md)
		return err
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
		return width, true
	}
	return defaultWrap, true
}
