package export

import (
	"fmt"
	"io"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/measuretrack/measuretrack/internal/columns"
	"github.com/measuretrack/measuretrack/internal/filter"
	"github.com/measuretrack/measuretrack/internal/model"
)

// MarkdownRenderer writes a document as Markdown tables.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Format() string    { return "md" }
func (r *MarkdownRenderer) Extension() string { return ".md" }

func (r *MarkdownRenderer) Render(w io.Writer, doc Document) error {
	m := md.NewMarkdown(w)
	m.H1(doc.Title)
	if doc.Filtered {
		m.PlainText(md.Italic("Filtered: " + doc.Filters))
	}
	if len(doc.Tables) == 0 {
		m.PlainText("No records")
	}

	for _, t := range doc.Tables {
		m.H2(t.Sheet)
		m.Table(md.TableSet{Header: escapeRow(t.Header), Rows: escapeRows(t.Rows)})
	}
	return m.Build()
}

// WriteGroups writes one sheet's grouped records as Markdown. Chip and
// status cells are written as plain text.
func WriteGroups(w io.Writer, sheet string, groups []model.Group, cols []columns.Column, state filter.State) error {
	m := md.NewMarkdown(w)
	m.H1(sheet)
	if state.Active() {
		m.PlainText(md.Italic(state.String()))
	}
	if len(groups) == 0 || len(cols) == 0 {
		m.PlainText("No records")
		return m.Build()
	}

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Label
	}

	for _, g := range groups {
		m.H2(fmt.Sprintf("%s (%d)", g.Title, len(g.Records)))
		rows := make([][]string, len(g.Records))
		for i, r := range g.Records {
			row := make([]string, len(cols))
			for j, c := range cols {
				row[j] = c.Render(r, state).Text
			}
			rows[i] = row
		}
		m.Table(md.TableSet{Header: escapeRow(header), Rows: escapeRows(rows)})
	}
	return m.Build()
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", "<br>", "\n", "<br>")

func escapeRow(row []string) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = cellEscaper.Replace(v)
	}
	return out
}

func escapeRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = escapeRow(r)
	}
	return out
}
