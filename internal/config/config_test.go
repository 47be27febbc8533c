package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Source.SpreadsheetID = "abc123"
	cfg.Sheets.Skip = []string{"Introduction", "Config", "Archive"}
	cfg.Export.Format = "xlsx"

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "abc123", got.Source.SpreadsheetID)
	assert.Equal(t, []string{"Introduction", "Config", "Archive"}, got.Sheets.Skip)
	assert.Equal(t, "xlsx", got.Export.Format)
	assert.Equal(t, cfg.Colors.Fallback, got.Colors.Fallback)
	assert.Equal(t, cfg.Log, got.Log)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "Config", cfg.Sheets.Config)
	assert.Equal(t, []string{"Introduction", "Config"}, cfg.Sheets.Skip)
	assert.Equal(t, "#E0E0E0", cfg.Colors.Fallback)
	assert.Equal(t, ".", cfg.Export.Dir)
	assert.Equal(t, "measures", cfg.Export.Basename)
	assert.Equal(t, "pdf", cfg.Export.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.SourceLocation())
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("source:\n  url: https://example.test/book.xlsx\nlog:\n  level: debug\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/book.xlsx", cfg.SourceLocation())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "pdf", cfg.Export.Format, "unset keys keep defaults")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MEASURETRACK_SOURCE_SPREADSHEET_ID", "sheet-1")
	t.Setenv("MEASURETRACK_EXPORT_FORMAT", "md")
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "md", cfg.Export.Format)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/sheet-1/export?format=xlsx", cfg.SourceLocation())
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Colors.Fallback = "grey"
	assert.ErrorContains(t, cfg.Validate(), "colors.fallback")

	cfg = Default()
	cfg.Colors.Fallback = "ccc"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "#ccc", cfg.FallbackColor())

	cfg.Sheets.Config = " "
	assert.Error(t, cfg.Validate())
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "basename: measures")
	assert.Contains(t, contents, "- Introduction")
	assert.Contains(t, contents, "format: pdf")
	assert.Contains(t, contents, "#E0E0E0")
}
