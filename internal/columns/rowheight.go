package columns

import (
	"unicode/utf8"

	"github.com/measuretrack/measuretrack/internal/model"
)

// Row sizing for variable-height rows.
const (
	WrapWidth  = 45 // characters per wrapped line
	LineHeight = 20
	BaseHeight = 12
)

// RowLines is the number of wrapped lines a measures text occupies.
func RowLines(text string) int {
	n := utf8.RuneCountInString(text)
	lines := (n + WrapWidth - 1) / WrapWidth
	if lines < 1 {
		lines = 1
	}
	return lines
}

// RowHeight is the display height hint of a record, driven by the length
// of its Measures value.
func RowHeight(r model.Record) int {
	return BaseHeight + RowLines(r.Get(MeasuresField))*LineHeight
}

// RowHeights computes RowHeight for each record, keyed by record id.
func RowHeights(records []model.Record) map[int]int {
	out := make(map[int]int, len(records))
	for _, r := range records {
		out[r.ID] = RowHeight(r)
	}
	return out
}
