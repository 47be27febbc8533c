package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/measuretrack/measuretrack/internal/model"
)

func configSheet(rows ...[]string) model.RawSheet {
	all := append([][]string{{"Tag", "Tag color", "Portfolio", "Portfolio color"}}, rows...)
	return model.RawSheet{Name: "Config", Rows: all}
}

func TestResolveConfig(t *testing.T) {
	raw := configSheet(
		[]string{"Blue", "E3F2FD", "Education", "003399"},
		[]string{"Green", "#C8E6C9", "Health", ""},
		[]string{"", "FFFFFF", "Labour", "FF0000"},
		[]string{"Urgent", "", "", "123456"},
	)

	l := ResolveConfig(raw, "")

	c, ok := l.TagColors.Lookup("blue")
	require.True(t, ok)
	assert.Equal(t, "#E3F2FD", c)
	assert.Equal(t, "#003399", l.PortfolioColors.Color("education"))
	assert.Equal(t, "#C8E6C9", l.TagColors.Color("GREEN"))
	assert.Equal(t, "#FF0000", l.PortfolioColors.Color("Labour"))

	_, ok = l.PortfolioColors.Lookup("Health")
	assert.False(t, ok, "blank color is not stored")
	_, ok = l.TagColors.Lookup("Urgent")
	assert.False(t, ok)

	assert.Equal(t, 2, l.TagColors.Len(), "a blank tag name skips its color")
	assert.Equal(t, 2, l.PortfolioColors.Len(), "a blank portfolio name skips its color")

	assert.Equal(t, []string{"Education", "Health", "Labour"}, l.Portfolios)
	assert.Equal(t, []string{"Blue", "Green", "Urgent"}, l.Tags)
}

func TestResolveConfigSkipsFirstRow(t *testing.T) {
	raw := model.RawSheet{Rows: [][]string{
		{"Blue", "E3F2FD", "Education", "003399"},
		{"Red", "FF0000", "", ""},
	}}

	l := ResolveConfig(raw, "")
	assert.Equal(t, []string{"Red"}, l.Tags)
	assert.Empty(t, l.Portfolios)
}

func TestResolveConfigDedupesOptions(t *testing.T) {
	raw := configSheet(
		[]string{"", "", "education", ""},
		[]string{"", "", "Education ", ""},
		[]string{"", "", "Arts", ""},
		[]string{"", "", "arts", ""},
	)

	l := ResolveConfig(raw, "")
	assert.Equal(t, []string{"Arts", "education"}, l.Portfolios, "first casing wins, lexicographic order")
}

func TestResolveConfigEmptySheet(t *testing.T) {
	l := ResolveConfig(model.RawSheet{}, "#999999")
	assert.Empty(t, l.Portfolios)
	assert.Empty(t, l.Tags)
	assert.Equal(t, "#999999", l.PortfolioColors.Color("any"))
}

func TestReadConfigEntriesTrims(t *testing.T) {
	entries := ReadConfigEntries(configSheet([]string{" Blue ", " E3F2FD", "Education"}))
	require.Len(t, entries, 1)
	assert.Equal(t, model.ConfigEntry{Tag: "Blue", TagColor: "E3F2FD", Portfolio: "Education"}, entries[0])
}
