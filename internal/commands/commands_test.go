package commands_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/measuretrack/measuretrack/internal/config"
	"github.com/measuretrack/measuretrack/internal/workbook"
)

func TestSheets(t *testing.T) {
	t.Chdir(t.TempDir())
	src := writeWorkbook(t)

	out, err := runMeasuretrack(t, "sheets", "--source", src)
	require.NoError(t, err)
	assert.Contains(t, out, "Goals")
	assert.Contains(t, out, "Budget")
	assert.NotContains(t, out, "Introduction")
	assert.NotContains(t, out, "Config")
}

func TestOptions(t *testing.T) {
	t.Chdir(t.TempDir())
	src := writeWorkbook(t)

	out, err := runMeasuretrack(t, "options", "--source", src)
	require.NoError(t, err)
	assert.Contains(t, out, "#003399")
	assert.Contains(t, out, "#E3F2FD")
	assert.Contains(t, out, "#E0E0E0 (fallback)", "Health has no color")
	assert.Contains(t, out, "1 problem(s) in the Config sheet")
}

func TestShow(t *testing.T) {
	t.Chdir(t.TempDir())
	src := writeWorkbook(t)

	out, err := runMeasuretrack(t, "show", "goals", "--source", src)
	require.NoError(t, err)
	assert.Contains(t, out, "# Goals")
	assert.Contains(t, out, "## 1.1 Schools (1)")
	assert.Contains(t, out, "## 2.1 Clinics (1)")
	assert.Contains(t, out, "On Track")
}

func TestShowFiltered(t *testing.T) {
	t.Chdir(t.TempDir())
	src := writeWorkbook(t)

	out, err := runMeasuretrack(t, "show", "Goals", "--source", src, "--portfolio", "health")
	require.NoError(t, err)
	assert.Contains(t, out, "portfolios: Health")
	assert.Contains(t, out, "Hire nurses")
	assert.NotContains(t, out, "Build schools")
}

func TestShowSuggestsNames(t *testing.T) {
	t.Chdir(t.TempDir())
	src := writeWorkbook(t)

	_, err := runMeasuretrack(t, "show", "Goals", "--source", src, "--portfolio", "Helth")
	assert.ErrorContains(t, err, `did you mean "Health"`)

	_, err = runMeasuretrack(t, "show", "Goal", "--source", src)
	assert.ErrorContains(t, err, `did you mean "Goals"`)
}

func TestExportMarkdown(t *testing.T) {
	t.Chdir(t.TempDir())
	src := writeWorkbook(t)
	dir := t.TempDir()

	out, err := runMeasuretrack(t, "export", "--source", src, "--format", "md", "--dir", dir)
	require.NoError(t, err)
	path := filepath.Join(dir, "measures.md")
	assert.Contains(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## Goals")
	assert.Contains(t, string(data), "## Budget")
	assert.Contains(t, string(data), "| 0.3 |", "float noise is rounded away")
}

func TestExportFiltered(t *testing.T) {
	t.Chdir(t.TempDir())
	src := writeWorkbook(t)
	dir := t.TempDir()

	_, err := runMeasuretrack(t, "export", "--source", src, "--format", "xlsx", "--dir", dir, "--filtered", "--tag", "blue")
	require.NoError(t, err)

	f, err := excelize.OpenFile(filepath.Join(dir, "measures-filtered.xlsx"))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Goals"}, f.GetSheetList(), "Budget has no matching records")

	rows, err := f.GetRows("Goals")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestExportPDF(t *testing.T) {
	t.Chdir(t.TempDir())
	src := writeWorkbook(t)
	dir := t.TempDir()

	_, err := runMeasuretrack(t, "export", "--source", src, "--dir", dir, "--basename", "report")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "report.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(data[:5]))
}

func TestExportErrors(t *testing.T) {
	t.Chdir(t.TempDir())
	src := writeWorkbook(t)

	_, err := runMeasuretrack(t, "export", "--source", src, "--format", "docx")
	assert.ErrorContains(t, err, `unknown export format "docx"`)

	_, err = runMeasuretrack(t, "export", "--source", src, "--tag", "blue")
	assert.ErrorContains(t, err, "require --filtered")
}

func TestMissingSource(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := runMeasuretrack(t, "sheets")
	assert.ErrorContains(t, err, "no workbook source")
}

func TestUnreadableSourceIsLoadError(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := runMeasuretrack(t, "sheets", "--source", filepath.Join(t.TempDir(), "missing.xlsx"))
	var le *workbook.LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "read", le.Op)
}

func TestConfigFileSource(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	src := writeWorkbook(t)

	cfg := config.Default()
	cfg.Source.URL = src
	cfg.Export.Format = "md"
	require.NoError(t, config.Save(filepath.Join(dir, config.FileName), cfg))

	out, err := runMeasuretrack(t, "export")
	require.NoError(t, err)
	assert.Contains(t, out, "measures.md")

	_, err = os.Stat(filepath.Join(dir, "measures.md"))
	require.NoError(t, err)
}

func TestBadLogLevel(t *testing.T) {
	t.Chdir(t.TempDir())
	src := writeWorkbook(t)

	_, err := runMeasuretrack(t, "sheets", "--source", src, "--log-level", "loud")
	assert.ErrorContains(t, err, "unknown log level")
}
