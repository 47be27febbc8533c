package filter

import (
	"strings"

	"github.com/measuretrack/measuretrack/internal/model"
	"github.com/measuretrack/measuretrack/internal/textnorm"
)

// Field names the predicates inspect.
const (
	PortfolioField = "Portfolio"
	TagsField      = "Tags"
)

// Apply returns the records that satisfy every active predicate, in input
// order. Predicates without a selection pass everything.
func Apply(records []model.Record, s State) []model.Record {
	if !s.Active() {
		return records
	}

	portfolios := keySet(s.Portfolios)
	tags := keySet(s.Tags)
	query := strings.ToLower(s.query())

	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if !matchesAny(r.Get(PortfolioField), portfolios) {
			continue
		}
		if !matchesAny(r.Get(TagsField), tags) {
			continue
		}
		if query != "" && !containsText(r, query) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// matchesAny reports whether any comma-separated part of value is selected.
// An empty selection matches everything.
func matchesAny(value string, selected map[string]bool) bool {
	if len(selected) == 0 {
		return true
	}
	for _, part := range textnorm.SplitList(value) {
		if selected[textnorm.Key(part)] {
			return true
		}
	}
	return false
}

// containsText searches every sheet field of the record. lowerQuery must be
// lower-cased already.
func containsText(r model.Record, lowerQuery string) bool {
	for _, v := range r.Fields {
		if strings.Contains(strings.ToLower(v), lowerQuery) {
			return true
		}
	}
	return false
}

func keySet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[textnorm.Key(n)] = true
	}
	return set
}
