package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const maxSheetName = 31

// XLSXRenderer writes one worksheet per table.
type XLSXRenderer struct{}

func (r *XLSXRenderer) Format() string    { return "xlsx" }
func (r *XLSXRenderer) Extension() string { return ".xlsx" }

func (r *XLSXRenderer) Render(w io.Writer, doc Document) error {
	f := excelize.NewFile()
	defer f.Close()

	x := &xlsxWriter{f: f}
	if err := x.styles(); err != nil {
		return err
	}

	first := f.GetSheetName(0)
	if len(doc.Tables) == 0 {
		if err := f.SetSheetName(first, "No records"); err != nil {
			return fmt.Errorf("renaming sheet: %w", err)
		}
		return f.Write(w)
	}

	used := make(map[string]bool)
	for i, t := range doc.Tables {
		name := sheetName(t.Sheet, used)
		if i == 0 {
			if err := f.SetSheetName(first, name); err != nil {
				return fmt.Errorf("renaming sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %q: %w", name, err)
		}
		if err := x.table(name, t, doc.Title); err != nil {
			return fmt.Errorf("writing sheet %q: %w", name, err)
		}
	}
	f.SetActiveSheet(0)

	return f.Write(w)
}

type xlsxWriter struct {
	f      *excelize.File
	header int
	wrap   int
}

func (x *xlsxWriter) styles() error {
	var err error
	x.header, err = x.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	x.wrap, err = x.f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return fmt.Errorf("creating wrap style: %w", err)
	}
	return nil
}

func (x *xlsxWriter) table(sheet string, t Table, title string) error {
	f := x.f

	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if len(t.Header) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(t.Header), 1)
		if err := f.SetCellStyle(sheet, "A1", last, x.header); err != nil {
			return err
		}
	}

	for i, row := range t.Rows {
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	for i, c := range t.Columns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, float64(c.Width)); err != nil {
			return err
		}
		if c.Wrap && len(t.Rows) > 0 {
			top, _ := excelize.CoordinatesToCellName(i+1, 2)
			bottom, _ := excelize.CoordinatesToCellName(i+1, len(t.Rows)+1)
			if err := f.SetCellStyle(sheet, top, bottom, x.wrap); err != nil {
				return err
			}
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return err
	}

	landscape := "landscape"
	if err := f.SetPageLayout(sheet, &excelize.PageLayoutOptions{Orientation: &landscape}); err != nil {
		return err
	}
	return f.SetHeaderFooter(sheet, &excelize.HeaderFooterOptions{
		OddHeader: "&L" + escapeHeader(title) + "&R" + escapeHeader(t.Sheet),
		OddFooter: "&CPage &P of &N",
	})
}

// sheetName makes name a valid, unique worksheet name.
func sheetName(name string, used map[string]bool) string {
	clean := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if clean == "" {
		clean = "Sheet"
	}
	clean = truncateRunes(clean, maxSheetName)

	candidate := clean
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate = truncateRunes(clean, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func escapeHeader(s string) string {
	return strings.ReplaceAll(s, "&", "&&")
}
