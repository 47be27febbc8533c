package model

// IDField is the name of the synthetic position field every record carries.
const IDField = "id"

// Record is one data row of a sheet: field name -> trimmed cell text.
type Record struct {
	ID     int // 0-based position within its sheet, assigned at normalization
	Fields map[string]string
}

// Get returns the value of a field, or "" when the record lacks it.
func (r Record) Get(name string) string {
	return r.Fields[name]
}

// Has reports whether the record carries a field.
func (r Record) Has(name string) bool {
	_, ok := r.Fields[name]
	return ok
}

// Sheet is a normalized data sheet: its header-derived schema plus records.
type Sheet struct {
	Name    string
	Fields  []string // header order
	Records []Record
}

// Empty reports whether the sheet yielded no records.
func (s Sheet) Empty() bool {
	return len(s.Records) == 0
}
