package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/measuretrack/measuretrack/internal/columns"
	"github.com/measuretrack/measuretrack/internal/model"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#9E9E9E"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#3F51B5"))
	groupStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E53935"))
	chipStyle   = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#000000"))
)

const (
	cursorMark = "› "
	noMark     = "  "
)

func (m Model) View() string {
	if m.loading {
		return fmt.Sprintf("\n %s Loading workbook…\n", m.spinner.View())
	}
	if m.err != nil {
		return fmt.Sprintf("\n %s\n\n %s\n",
			errorStyle.Render("Could not load workbook: "+m.err.Error()),
			dimStyle.Render("r retry • q quit"))
	}

	var b strings.Builder
	b.WriteString(m.tabsView())
	b.WriteString("\n")
	if m.mode == modeSearch {
		b.WriteString(m.search.View())
	} else {
		b.WriteString(dimStyle.Render(m.state.String()))
	}
	b.WriteString("\n\n")

	if m.mode == modePicker {
		b.WriteString(m.pickerView())
	} else {
		b.WriteString(m.listView())
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(dimStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) tabsView() string {
	if len(m.counts) == 0 {
		return titleStyle.Render("No data sheets")
	}
	tabs := make([]string, len(m.counts))
	for i, c := range m.counts {
		label := fmt.Sprintf("%s %d/%d", c.Sheet, c.Filtered, c.Total)
		if i == m.tab {
			tabs[i] = activeTabStyle.Render(label)
		} else {
			tabs[i] = tabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) listView() string {
	if len(m.view.Groups) == 0 {
		if m.view.Total == 0 {
			return dimStyle.Render("This sheet has no records.")
		}
		return dimStyle.Render("No records match the current filters.")
	}

	var b strings.Builder
	widths := m.columnWidths()
	b.WriteString(noMark + m.columnHeader(widths) + "\n")

	lines := m.lines()
	used, body := 0, m.bodyHeight()
	for i := m.offset; i < len(lines); i++ {
		l := lines[i]
		if used > 0 && used+l.height > body {
			break
		}
		used += l.height

		mark := noMark
		if i == m.cursor {
			mark = cursorMark
		}
		g := m.view.Groups[l.group]
		if l.record < 0 {
			b.WriteString(mark + m.groupLine(g) + "\n")
			continue
		}
		row := m.recordLine(g.Records[l.record], widths, l.height)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, mark, row) + "\n")
	}
	return b.String()
}

func (m Model) groupLine(g model.Group) string {
	arrow := "▾"
	if m.collapsed[m.groupID(g)] {
		arrow = "▸"
	}
	return groupStyle.Render(fmt.Sprintf("%s %s (%d)", arrow, g.Title, len(g.Records)))
}

func (m Model) columnHeader(widths []int) string {
	cells := make([]string, len(m.view.Columns))
	for i, c := range m.view.Columns {
		cells[i] = fit(headerStyle.Render(c.Label), widths[i])
	}
	return strings.Join(cells, " ")
}

// recordLine renders a record as a block of height lines. Only wrapped
// columns use more than the first line.
func (m Model) recordLine(r model.Record, widths []int, height int) string {
	var cells []string
	for i, c := range m.view.Columns {
		if i > 0 {
			cells = append(cells, " ")
		}
		w := widths[i]
		cell := c.Render(r, m.state)
		switch {
		case c.Kind == columns.Chips:
			chips := make([]string, len(cell.Chips))
			for j, ch := range cell.Chips {
				chips[j] = chip(ch.Label, ch.Color, ch.Active)
			}
			cells = append(cells, fit(strings.Join(chips, " "), w))
		case c.Kind == columns.Status:
			text := fit(cell.Text, w)
			if cell.Color != "" {
				text = lipgloss.NewStyle().Background(lipgloss.Color(cell.Color)).
					Foreground(lipgloss.Color("#000000")).Render(text)
			}
			cells = append(cells, text)
		case c.Wrap:
			cells = append(cells, lipgloss.NewStyle().Width(w).MaxWidth(w).MaxHeight(height).Render(cell.Text))
		default:
			cells = append(cells, fit(strings.ReplaceAll(cell.Text, "\n", " "), w))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m Model) pickerView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.pickerTitle) + "\n\n")
	if len(m.picker) == 0 {
		b.WriteString(dimStyle.Render("No options configured.") + "\n")
	}
	for i, it := range m.picker {
		mark := noMark
		if i == m.pickerIdx {
			mark = cursorMark
		}
		box := "[ ]"
		if m.selected(it.Action) {
			box = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", mark, box, chip(it.Label, it.Color, false)))
	}
	b.WriteString("\n" + dimStyle.Render("enter toggle • esc done"))
	return b.String()
}

func chip(label, color string, active bool) string {
	s := chipStyle.Background(lipgloss.Color(color))
	if active {
		s = s.Bold(true).Underline(true)
	}
	return s.Render(label)
}

// fit pads or truncates s to exactly width cells.
func fit(s string, width int) string {
	return lipgloss.NewStyle().Width(width).MaxWidth(width).MaxHeight(1).Render(s)
}
