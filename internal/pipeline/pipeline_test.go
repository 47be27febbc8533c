package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/measuretrack/measuretrack/internal/filter"
	"github.com/measuretrack/measuretrack/internal/groupkey"
	"github.com/measuretrack/measuretrack/internal/model"
	"github.com/measuretrack/measuretrack/internal/workbook"
)

type fakeLoader struct {
	wb  model.Workbook
	err error
}

func (f fakeLoader) Load(ctx context.Context, source string) (model.Workbook, error) {
	return f.wb, f.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleWorkbook() model.Workbook {
	return model.Workbook{Sheets: []model.RawSheet{
		{Name: "Introduction", Rows: [][]string{{"About these measures"}}},
		{Name: "Config", Rows: [][]string{
			{"Tag", "Tag color", "Portfolio", "Portfolio color"},
			{"Blue", "E3F2FD", "Education", "003399"},
			{"Red", "nope", "Health", ""},
			{"", "", "Labour", "FF0000"},
		}},
		{Name: "Goals", Rows: [][]string{
			{"Goals 2024"},
			{"Category", "Subcategory", "Measures", "Portfolio", "Tags", "24/25"},
			{"3.2 Curriculum Reform", "", "Write curricula", "Health, Labour", "Blue", "On Track"},
			{"", "", "1.1 Build schools", "Labour, Education", "Red", "delayed"},
			{"Other", "", "Train staff", "Education", "", ""},
		}},
		{Name: "Notes", Rows: [][]string{{"Nothing to see"}}},
	}}
}

func TestBuild(t *testing.T) {
	d, err := Build(sampleWorkbook(), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"Goals", "Notes"}, d.SheetNames(), "Introduction and Config are not data sheets")

	assert.Equal(t, "#E3F2FD", d.Lookups.TagColors.Color("blue"))
	assert.Equal(t, "#003399", d.Lookups.PortfolioColors.Color("education"))
	assert.Equal(t, []string{"Education", "Health", "Labour"}, d.Lookups.Portfolios)
	assert.Equal(t, []string{"Blue", "Red"}, d.Lookups.Tags)

	require.Len(t, d.Diagnostics, 1)
	assert.Equal(t, 3, d.Diagnostics[0].Row)

	goals, ok := d.Sheet("Goals")
	require.True(t, ok)
	assert.Len(t, goals.Records, 3)

	notes, ok := d.Sheet("Notes")
	require.True(t, ok)
	assert.True(t, notes.Empty(), "sheets without a header normalize to nothing")
}

func TestBuildMissingConfig(t *testing.T) {
	wb := model.Workbook{Sheets: []model.RawSheet{{Name: "Goals"}}}
	_, err := Build(wb, DefaultOptions())
	assert.ErrorIs(t, err, ErrConfigSheetMissing)
}

func TestSessionLoad(t *testing.T) {
	s := NewSession(fakeLoader{wb: sampleWorkbook()}, DefaultOptions(), quietLogger())

	d, err := s.Load(context.Background(), "https://example.test/export")
	require.NoError(t, err)
	assert.NotEmpty(t, d.SessionID)
	assert.Equal(t, "https://example.test/export", d.Source)

	again, err := s.Load(context.Background(), "https://example.test/export")
	require.NoError(t, err)
	assert.NotEqual(t, d.SessionID, again.SessionID, "each load is a new cycle")
}

func TestSessionLoadMissingConfigIsLoadError(t *testing.T) {
	wb := model.Workbook{Sheets: []model.RawSheet{{Name: "Goals"}}}
	s := NewSession(fakeLoader{wb: wb}, DefaultOptions(), quietLogger())

	_, err := s.Load(context.Background(), "src")
	var le *workbook.LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "config", le.Op)
	assert.ErrorIs(t, err, ErrConfigSheetMissing)
}

func TestSessionLoadPropagatesLoaderError(t *testing.T) {
	loadErr := &workbook.LoadError{Source: "src", Op: "fetch", Err: errors.New("boom")}
	s := NewSession(fakeLoader{err: loadErr}, DefaultOptions(), quietLogger())

	_, err := s.Load(context.Background(), "src")
	assert.ErrorIs(t, err, loadErr)
}

func TestView(t *testing.T) {
	d, err := Build(sampleWorkbook(), DefaultOptions())
	require.NoError(t, err)

	v := d.View("Goals", filter.NewState([]string{"Education"}, nil, ""))
	assert.Equal(t, 3, v.Total)
	require.Len(t, v.Records, 2, "Health, Labour is excluded; Labour, Education is kept")
	assert.Equal(t, 1, v.Records[0].ID)

	require.Len(t, v.Groups, 2)
	assert.Equal(t, "1.1", v.Groups[0].Key)
	assert.Equal(t, "Category 1.1", v.Groups[0].Title)
	assert.Equal(t, groupkey.Fallback, v.Groups[1].Key)
	assert.Equal(t, "Other", v.Groups[1].Title)

	var fields []string
	for _, c := range v.Columns {
		fields = append(fields, c.Field)
	}
	assert.Equal(t, []string{"Subcategory", "Measures", "Portfolio", "Tags", "24/25"}, fields)
	assert.Len(t, v.RowHeights, 2)
}

func TestViewUnfilteredGroups(t *testing.T) {
	d, err := Build(sampleWorkbook(), DefaultOptions())
	require.NoError(t, err)

	v := d.View("Goals", filter.State{})
	require.Len(t, v.Groups, 3)
	assert.Equal(t, "3.2", v.Groups[0].Key)
	assert.Equal(t, "3.2 Curriculum Reform", v.Groups[0].Title)
}

func TestViewUnknownSheet(t *testing.T) {
	d, err := Build(sampleWorkbook(), DefaultOptions())
	require.NoError(t, err)

	v := d.View("Nope", filter.State{})
	assert.Zero(t, v.Total)
	assert.Empty(t, v.Groups)
	assert.Empty(t, v.Columns)
}

func TestCounts(t *testing.T) {
	d, err := Build(sampleWorkbook(), DefaultOptions())
	require.NoError(t, err)

	counts := d.Counts(filter.NewState(nil, []string{"Blue"}, ""))
	assert.Equal(t, []SheetCount{
		{Sheet: "Goals", Filtered: 1, Total: 3},
		{Sheet: "Notes", Filtered: 0, Total: 0},
	}, counts)
}

func TestResolveState(t *testing.T) {
	d, err := Build(sampleWorkbook(), DefaultOptions())
	require.NoError(t, err)

	s, err := d.ResolveState([]string{"education"}, []string{"BLUE"}, "q")
	require.NoError(t, err)
	assert.Equal(t, []string{"Education"}, s.Portfolios)
	assert.Equal(t, []string{"Blue"}, s.Tags)
	assert.Equal(t, "q", s.Query)

	_, err = d.ResolveState([]string{"Helth"}, nil, "")
	assert.ErrorContains(t, err, `did you mean "Health"`)

	_, err = d.ResolveState(nil, []string{"Bleu"}, "")
	assert.Error(t, err)
}

func TestResolveSheet(t *testing.T) {
	d, err := Build(sampleWorkbook(), DefaultOptions())
	require.NoError(t, err)

	name, err := d.ResolveSheet("goals")
	require.NoError(t, err)
	assert.Equal(t, "Goals", name)

	_, err = d.ResolveSheet("Config")
	assert.Error(t, err)
}
