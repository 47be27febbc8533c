package filter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/measuretrack/measuretrack/internal/textnorm"
)

// State is the user's current selection. Selections hold no duplicates by
// normalized name; the first casing seen is kept.
type State struct {
	Portfolios []string
	Tags       []string
	Query      string
}

// NewState builds a State, deduplicating the selections.
func NewState(portfolios, tags []string, query string) State {
	return State{
		Portfolios: dedupe(portfolios),
		Tags:       dedupe(tags),
		Query:      query,
	}
}

// Active reports whether any predicate would exclude records.
func (s State) Active() bool {
	return len(s.Portfolios) > 0 || len(s.Tags) > 0 || s.query() != ""
}

// HasPortfolio reports whether a portfolio is selected.
func (s State) HasPortfolio(name string) bool {
	return indexOf(s.Portfolios, name) >= 0
}

// HasTag reports whether a tag is selected.
func (s State) HasTag(name string) bool {
	return indexOf(s.Tags, name) >= 0
}

// Target names the part of State an Action changes.
type Target int

const (
	TogglePortfolio Target = iota
	ToggleTag
	SetQuery
	Clear
)

// Action is a user intent produced by the presentation layer, for example a
// click on a rendered chip. Applying it is the only way State changes.
type Action struct {
	Target Target
	Value  string
}

// Handle returns the state after the action. The receiver is not modified.
func (s State) Handle(a Action) State {
	next := State{
		Portfolios: slices.Clone(s.Portfolios),
		Tags:       slices.Clone(s.Tags),
		Query:      s.Query,
	}
	switch a.Target {
	case TogglePortfolio:
		next.Portfolios = toggle(next.Portfolios, a.Value)
	case ToggleTag:
		next.Tags = toggle(next.Tags, a.Value)
	case SetQuery:
		next.Query = a.Value
	case Clear:
		return State{}
	}
	return next
}

func (s State) query() string {
	return strings.TrimSpace(s.Query)
}

func toggle(list []string, name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return list
	}
	if i := indexOf(list, name); i >= 0 {
		return slices.Delete(list, i, i+1)
	}
	return append(list, name)
}

func indexOf(list []string, name string) int {
	key := textnorm.Key(name)
	for i, v := range list {
		if textnorm.Key(v) == key {
			return i
		}
	}
	return -1
}

func dedupe(names []string) []string {
	var out []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || indexOf(out, n) >= 0 {
			continue
		}
		out = append(out, n)
	}
	return out
}

// String summarises the active selections, e.g. for export headings.
func (s State) String() string {
	var parts []string
	if len(s.Portfolios) > 0 {
		parts = append(parts, "portfolios: "+strings.Join(s.Portfolios, ", "))
	}
	if len(s.Tags) > 0 {
		parts = append(parts, "tags: "+strings.Join(s.Tags, ", "))
	}
	if q := s.query(); q != "" {
		parts = append(parts, fmt.Sprintf("search: %q", q))
	}
	if len(parts) == 0 {
		return "no filters"
	}
	return strings.Join(parts, "; ")
}
