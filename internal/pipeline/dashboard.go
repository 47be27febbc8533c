package pipeline

import (
	"github.com/measuretrack/measuretrack/internal/columns"
	"github.com/measuretrack/measuretrack/internal/filter"
	"github.com/measuretrack/measuretrack/internal/grouping"
	"github.com/measuretrack/measuretrack/internal/ingest"
	"github.com/measuretrack/measuretrack/internal/model"
)

// Dashboard is the result of one load cycle. It is not modified after
// Build; every view is recomputed from it in full.
type Dashboard struct {
	SessionID   string
	Source      string
	Lookups     ingest.Lookups
	Sheets      []model.Sheet // data sheets in workbook order
	Diagnostics []ingest.Diagnostic
}

// View is everything the presentation layer needs for one sheet.
type View struct {
	Sheet      string
	Total      int
	Records    []model.Record // filtered
	Groups     []model.Group
	Columns    []columns.Column
	RowHeights map[int]int
}

// SheetCount reports filtered and total record counts for a sheet.
type SheetCount struct {
	Sheet    string
	Filtered int
	Total    int
}

// SheetNames returns data sheet names in workbook order.
func (d *Dashboard) SheetNames() []string {
	names := make([]string, len(d.Sheets))
	for i, s := range d.Sheets {
		names[i] = s.Name
	}
	return names
}

// Sheet returns the data sheet with the given name.
func (d *Dashboard) Sheet(name string) (model.Sheet, bool) {
	for _, s := range d.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return model.Sheet{}, false
}

// Columns derives the column descriptors of a sheet.
func (d *Dashboard) Columns(sheet model.Sheet) []columns.Column {
	return columns.Derive(sheet, d.Lookups.PortfolioColors, d.Lookups.TagColors)
}

// View filters and groups one sheet. An unknown sheet yields an empty view.
func (d *Dashboard) View(name string, state filter.State) View {
	sheet, _ := d.Sheet(name)
	records := filter.Apply(sheet.Records, state)
	return View{
		Sheet:      name,
		Total:      len(sheet.Records),
		Records:    records,
		Groups:     grouping.Group(records),
		Columns:    d.Columns(sheet),
		RowHeights: columns.RowHeights(records),
	}
}

// Counts reports per-sheet record counts under state.
func (d *Dashboard) Counts(state filter.State) []SheetCount {
	out := make([]SheetCount, len(d.Sheets))
	for i, s := range d.Sheets {
		out[i] = SheetCount{
			Sheet:    s.Name,
			Filtered: len(filter.Apply(s.Records, state)),
			Total:    len(s.Records),
		}
	}
	return out
}

// ResolveState maps user-supplied names onto the configured option casing.
func (d *Dashboard) ResolveState(portfolios, tags []string, query string) (filter.State, error) {
	p, err := filter.ResolveAll("portfolio", portfolios, d.Lookups.Portfolios)
	if err != nil {
		return filter.State{}, err
	}
	t, err := filter.ResolveAll("tag", tags, d.Lookups.Tags)
	if err != nil {
		return filter.State{}, err
	}
	return filter.NewState(p, t, query), nil
}

// ResolveSheet maps a user-supplied sheet name onto a data sheet name.
func (d *Dashboard) ResolveSheet(name string) (string, error) {
	return filter.Resolve("sheet", name, d.SheetNames())
}
