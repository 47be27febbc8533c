package filter

import (
	"fmt"

	"github.com/agnivade/levenshtein"

	"github.com/measuretrack/measuretrack/internal/textnorm"
)

// maxSuggestDistance bounds how far a suggestion may be from the input.
const maxSuggestDistance = 3

// UnknownOptionError reports a name missing from an option list.
type UnknownOptionError struct {
	Kind       string // "portfolio", "tag", "sheet"
	Name       string
	Suggestion string
}

func (e *UnknownOptionError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown %s %q (did you mean %q?)", e.Kind, e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Name)
}

// Resolve maps name onto the option with the same normalized key and
// returns the option's casing.
func Resolve(kind, name string, options []string) (string, error) {
	key := textnorm.Key(name)
	for _, o := range options {
		if textnorm.Key(o) == key {
			return o, nil
		}
	}
	return "", &UnknownOptionError{Kind: kind, Name: name, Suggestion: Suggest(name, options)}
}

// ResolveAll resolves every name, stopping at the first unknown one.
func ResolveAll(kind string, names, options []string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, n := range names {
		o, err := Resolve(kind, n, options)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// Suggest returns the option closest to name, or "" if none is close.
func Suggest(name string, options []string) string {
	key := textnorm.Key(name)
	best := ""
	bestDist := maxSuggestDistance + 1
	for _, o := range options {
		d := levenshtein.ComputeDistance(key, textnorm.Key(o))
		if d < bestDist {
			best, bestDist = o, d
		}
	}
	return best
}
