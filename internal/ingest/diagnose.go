package ingest

import (
	"fmt"

	"github.com/measuretrack/measuretrack/internal/model"
	"github.com/measuretrack/measuretrack/internal/textnorm"
)

// Diagnostic describes a suspicious configuration row. Diagnostics never
// stop a load; the offending value is still used.
type Diagnostic struct {
	Row         int // 1-based sheet row
	Field       string
	Description string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("config row %d [%s]: %s", d.Row, d.Field, d.Description)
}

// Diagnose checks config entries for colors that are not hex shaped and
// names given two different colors.
func Diagnose(entries []model.ConfigEntry) []Diagnostic {
	var diags []Diagnostic

	portfolioSeen := make(map[string]string)
	tagSeen := make(map[string]string)

	for i, e := range entries {
		row := i + 2 // first sheet row is skipped

		if e.Portfolio != "" && e.PortfolioColor != "" {
			diags = append(diags, checkColor(row, "portfolio", e.Portfolio, e.PortfolioColor, portfolioSeen)...)
		}
		if e.Tag != "" && e.TagColor != "" {
			diags = append(diags, checkColor(row, "tag", e.Tag, e.TagColor, tagSeen)...)
		}
	}
	return diags
}

func checkColor(row int, field, name, color string, seen map[string]string) []Diagnostic {
	var diags []Diagnostic
	hex := textnorm.Hex(color)

	if !textnorm.IsHexColor(hex) {
		diags = append(diags, Diagnostic{
			Row:         row,
			Field:       field,
			Description: fmt.Sprintf("color %q for %q is not #RGB or #RRGGBB", hex, name),
		})
	}

	key := textnorm.Key(name)
	if prev, ok := seen[key]; ok && !textnorm.Equal(prev, hex) {
		diags = append(diags, Diagnostic{
			Row:         row,
			Field:       field,
			Description: fmt.Sprintf("%q recolored from %s to %s", name, prev, hex),
		})
	}
	seen[key] = hex
	return diags
}
