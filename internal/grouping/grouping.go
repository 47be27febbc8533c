package grouping

import (
	"fmt"
	"strings"

	"github.com/measuretrack/measuretrack/internal/groupkey"
	"github.com/measuretrack/measuretrack/internal/model"
)

// Fields searched for a numeric prefix, in priority order.
const (
	CategoryField    = "Category"
	SubcategoryField = "Subcategory"
	MeasuresField    = "Measures"
)

var candidateFields = []string{CategoryField, SubcategoryField, MeasuresField}

// KeyOf returns the group key of a record: the "major.minor" prefix of the
// first candidate field that has one, or groupkey.Fallback.
func KeyOf(r model.Record) string {
	for _, f := range candidateFields {
		v := strings.TrimSpace(r.Get(f))
		if v == "" {
			continue
		}
		if key := groupkey.FromText(v); key != "" {
			return key
		}
	}
	return groupkey.Fallback
}

// Group partitions records by KeyOf. Groups appear in the order their first
// member appears and members keep input order.
func Group(records []model.Record) []model.Group {
	var groups []model.Group
	index := make(map[string]int)

	for _, r := range records {
		key := KeyOf(r)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, model.Group{Key: key, Title: title(key, r)})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}

// title uses the first member's Category, or a synthesized label.
func title(key string, first model.Record) string {
	if c := strings.TrimSpace(first.Get(CategoryField)); c != "" {
		return c
	}
	return fmt.Sprintf("Category %s", key)
}
