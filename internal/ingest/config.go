package ingest

import (
	"sort"

	"github.com/measuretrack/measuretrack/internal/model"
	"github.com/measuretrack/measuretrack/internal/textnorm"
)

// Config sheet column layout.
const (
	colTag            = 0
	colTagColor       = 1
	colPortfolio      = 2
	colPortfolioColor = 3
)

// Lookups holds everything derived from the configuration sheet.
type Lookups struct {
	PortfolioColors model.Palette
	TagColors       model.Palette
	Portfolios      []string // sorted, deduplicated by normalized key
	Tags            []string
}

// ReadConfigEntries reads the configuration sheet rows.
// The first row is explanatory text and always skipped.
func ReadConfigEntries(raw model.RawSheet) []model.ConfigEntry {
	if len(raw.Rows) <= 1 {
		return nil
	}
	entries := make([]model.ConfigEntry, 0, len(raw.Rows)-1)
	for i := 1; i < len(raw.Rows); i++ {
		entries = append(entries, model.ConfigEntry{
			Tag:            textnorm.Trim(raw.Cell(i, colTag)),
			TagColor:       textnorm.Trim(raw.Cell(i, colTagColor)),
			Portfolio:      textnorm.Trim(raw.Cell(i, colPortfolio)),
			PortfolioColor: textnorm.Trim(raw.Cell(i, colPortfolioColor)),
		})
	}
	return entries
}

// BuildLookups derives color tables and option lists from config entries.
// A blank name skips its color too; a blank color leaves the name uncolored.
func BuildLookups(entries []model.ConfigEntry, fallback string) Lookups {
	portfolioColors := make(map[string]string)
	tagColors := make(map[string]string)
	portfolios := newOptionSet()
	tags := newOptionSet()

	for _, e := range entries {
		if e.Portfolio != "" {
			portfolios.add(e.Portfolio)
			if e.PortfolioColor != "" {
				portfolioColors[textnorm.Key(e.Portfolio)] = textnorm.Hex(e.PortfolioColor)
			}
		}
		if e.Tag != "" {
			tags.add(e.Tag)
			if e.TagColor != "" {
				tagColors[textnorm.Key(e.Tag)] = textnorm.Hex(e.TagColor)
			}
		}
	}

	return Lookups{
		PortfolioColors: model.NewPalette(portfolioColors, fallback),
		TagColors:       model.NewPalette(tagColors, fallback),
		Portfolios:      portfolios.sorted(),
		Tags:            tags.sorted(),
	}
}

// ResolveConfig reads the configuration sheet and builds its lookups.
func ResolveConfig(raw model.RawSheet, fallback string) Lookups {
	return BuildLookups(ReadConfigEntries(raw), fallback)
}

// optionSet keeps the first-seen casing of each normalized name.
type optionSet struct {
	byKey map[string]string
}

func newOptionSet() *optionSet {
	return &optionSet{byKey: make(map[string]string)}
}

func (o *optionSet) add(name string) {
	key := textnorm.Key(name)
	if _, ok := o.byKey[key]; !ok {
		o.byKey[key] = name
	}
}

func (o *optionSet) sorted() []string {
	out := make([]string, 0, len(o.byKey))
	for _, name := range o.byKey {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
