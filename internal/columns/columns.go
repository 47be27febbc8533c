// Package columns derives display metadata for a sheet's fields and
// classifies cell values for rendering.
package columns

import (
	"regexp"
	"strings"

	"github.com/measuretrack/measuretrack/internal/filter"
	"github.com/measuretrack/measuretrack/internal/model"
	"github.com/measuretrack/measuretrack/internal/textnorm"
)

// Kind is the rendering classification of a column.
type Kind int

const (
	Text Kind = iota
	Chips
	LongText
	Status
)

// Align is a horizontal alignment hint.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// Field names with dedicated treatment.
const (
	PortfolioField = filter.PortfolioField
	TagsField      = filter.TagsField
	MeasuresField  = "Measures"
	CategoryField  = "Category"
	MaterialsField = "Materials"
)

// Sizing hints, in character cells.
const (
	textWidth      = 20
	textMinWidth   = 10
	chipWidth      = 24
	chipMinWidth   = 14
	longMinWidth   = 30
	statusWidth    = 12
	statusMinWidth = 8
)

// statusFieldPattern matches season-style field names such as "24/25".
var statusFieldPattern = regexp.MustCompile(`^\d{2}/\d{2}$`)

// Column describes how one field is displayed.
type Column struct {
	Field    string
	Label    string
	Kind     Kind
	Width    int
	MinWidth int
	Align    Align
	Wrap     bool

	// Chip columns only.
	Palette model.Palette
	Toggle  filter.Target
}

// Derive returns column descriptors for a sheet. Only the first record's
// field set is inspected; display order follows the sheet header.
func Derive(sheet model.Sheet, portfolios, tags model.Palette) []Column {
	if len(sheet.Records) == 0 {
		return nil
	}
	first := sheet.Records[0]

	var cols []Column
	for _, field := range sheet.Fields {
		if !first.Has(field) || Hidden(field) {
			continue
		}
		cols = append(cols, describe(field, portfolios, tags))
	}
	return cols
}

// Hidden reports whether a field is structural and never shown.
func Hidden(field string) bool {
	switch field {
	case model.IDField, CategoryField, MaterialsField:
		return true
	}
	return textnorm.ContainsFold(field, "update")
}

// IsStatusField reports whether a field holds per-season status values.
func IsStatusField(field string) bool {
	return statusFieldPattern.MatchString(strings.TrimSpace(field))
}

func describe(field string, portfolios, tags model.Palette) Column {
	c := Column{
		Field:    field,
		Label:    field,
		Kind:     Text,
		Width:    textWidth,
		MinWidth: textMinWidth,
	}
	switch {
	case field == PortfolioField:
		c.Kind = Chips
		c.Width, c.MinWidth = chipWidth, chipMinWidth
		c.Palette = portfolios
		c.Toggle = filter.TogglePortfolio
	case field == TagsField:
		c.Kind = Chips
		c.Width, c.MinWidth = chipWidth, chipMinWidth
		c.Palette = tags
		c.Toggle = filter.ToggleTag
	case field == MeasuresField:
		c.Kind = LongText
		c.Width, c.MinWidth = WrapWidth, longMinWidth
		c.Wrap = true
	case IsStatusField(field):
		c.Kind = Status
		c.Width, c.MinWidth = statusWidth, statusMinWidth
		c.Align = AlignCenter
	}
	return c
}
