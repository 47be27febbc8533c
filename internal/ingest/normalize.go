package ingest

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/measuretrack/measuretrack/internal/model"
	"github.com/measuretrack/measuretrack/internal/textnorm"
)

// headerMarker identifies the header row of a data sheet.
const headerMarker = "measure"

// maxSignificant is the number of significant digits a spreadsheet displays.
const maxSignificant = 15

// NormalizeSheet converts a raw sheet into records. The header is the first
// row with a cell containing "measure" (any case); rows above it are dropped.
// A sheet with no such row yields an empty Sheet, not an error.
func NormalizeSheet(raw model.RawSheet) model.Sheet {
	sheet := model.Sheet{Name: raw.Name}

	hdr := FindHeader(raw.Rows)
	if hdr < 0 {
		return sheet
	}

	fields, cols := headerFields(raw.Rows[hdr])
	sheet.Fields = fields

	for _, row := range raw.Rows[hdr+1:] {
		if blankRow(row) {
			continue
		}
		values := make(map[string]string, len(fields))
		for i, name := range fields {
			values[name] = canonicalCell(cellAt(row, cols[i]))
		}
		sheet.Records = append(sheet.Records, model.Record{
			ID:     len(sheet.Records),
			Fields: values,
		})
	}
	return sheet
}

// FindHeader returns the index of the header row, or -1.
func FindHeader(rows [][]string) int {
	for i, row := range rows {
		for _, cell := range row {
			if textnorm.ContainsFold(cell, headerMarker) {
				return i
			}
		}
	}
	return -1
}

// headerFields returns field names and their column indexes.
// Blank header cells are skipped; repeated names get a "_N" suffix.
func headerFields(row []string) ([]string, []int) {
	var fields []string
	var cols []int
	seen := make(map[string]int)
	for col, cell := range row {
		name := strings.TrimSpace(cell)
		if name == "" {
			continue
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n+1)
		} else {
			seen[name] = 0
		}
		fields = append(fields, name)
		cols = append(cols, col)
	}
	return fields, cols
}

func cellAt(row []string, col int) string {
	if col < len(row) {
		return row[col]
	}
	return ""
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// canonicalCell trims a cell and rounds binary floating point noise
// ("0.30000000000000004") to the digits a spreadsheet would display.
func canonicalCell(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, ".") {
		return s
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.NumDigits() <= maxSignificant {
		return s
	}
	intDigits := d.NumDigits() + int(d.Exponent())
	return d.Round(int32(maxSignificant - intDigits)).String()
}
