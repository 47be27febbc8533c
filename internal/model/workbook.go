package model

// RawSheet is an untyped grid of cell text as decoded from the workbook.
type RawSheet struct {
	Name string
	Rows [][]string
}

// Cell returns the cell at (row, col), or "" when out of range.
func (s RawSheet) Cell(row, col int) string {
	if row < 0 || row >= len(s.Rows) {
		return ""
	}
	r := s.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// Workbook is the decoded source file. Sheets keep declaration order.
type Workbook struct {
	Sheets []RawSheet
}

// Sheet returns the sheet with the exact given name.
func (w Workbook) Sheet(name string) (RawSheet, bool) {
	for _, s := range w.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return RawSheet{}, false
}

// Names returns sheet names in declaration order.
func (w Workbook) Names() []string {
	names := make([]string, len(w.Sheets))
	for i, s := range w.Sheets {
		names[i] = s.Name
	}
	return names
}

// ConfigEntry is one row of the configuration sheet. Any field may be blank.
type ConfigEntry struct {
	Tag            string
	TagColor       string
	Portfolio      string
	PortfolioColor string
}
