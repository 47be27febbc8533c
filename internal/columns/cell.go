package columns

import (
	"strings"

	"github.com/measuretrack/measuretrack/internal/filter"
	"github.com/measuretrack/measuretrack/internal/model"
	"github.com/measuretrack/measuretrack/internal/textnorm"
)

// Chip is one value of a multi-value cell.
type Chip struct {
	Label  string // title-cased for display
	Color  string
	Active bool          // the value is currently selected in the filter
	Action filter.Action // what selecting the chip does
}

// Cell is the classified display form of one record field.
type Cell struct {
	Text   string // plain text, used by exports
	Chips  []Chip
	Color  string // status background; "" when unclassified
	Status StatusValue
}

// Render classifies a record's value for this column. It does not change
// any state; chip actions are applied by the caller.
func (c Column) Render(r model.Record, state filter.State) Cell {
	value := r.Get(c.Field)
	switch c.Kind {
	case Chips:
		chips := c.chips(value, state)
		return Cell{Text: chipText(chips), Chips: chips}
	case Status:
		cell := Cell{Text: value}
		if s, ok := ClassifyStatus(value); ok {
			cell.Status = s
			cell.Color = s.Color()
		}
		return cell
	case LongText:
		return Cell{Text: normalizeNewlines(value)}
	default:
		return Cell{Text: value}
	}
}

// Text returns the export form of a record's value for this column.
func (c Column) Text(r model.Record) string {
	return c.Render(r, filter.State{}).Text
}

func (c Column) chips(value string, state filter.State) []Chip {
	parts := textnorm.SplitList(value)
	if len(parts) == 0 {
		return nil
	}
	chips := make([]Chip, 0, len(parts))
	for _, p := range parts {
		active := state.HasPortfolio(p)
		if c.Toggle == filter.ToggleTag {
			active = state.HasTag(p)
		}
		chips = append(chips, Chip{
			Label:  textnorm.TitleCase(textnorm.Key(p)),
			Color:  c.Palette.Color(p),
			Active: active,
			Action: filter.Action{Target: c.Toggle, Value: p},
		})
	}
	return chips
}

func chipText(chips []Chip) string {
	labels := make([]string, len(chips))
	for i, ch := range chips {
		labels[i] = ch.Label
	}
	return strings.Join(labels, ", ")
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
