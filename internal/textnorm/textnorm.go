package textnorm

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// acronyms are the words kept fully upper-case by TitleCase.
var acronyms = map[string]string{
	"it": "IT",
	"nc": "NC",
	"ic": "IC",
	"pr": "PR",
	"hr": "HR",
	"ue": "UE",
}

// Trim strips leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// Key returns the lookup key for a name: trimmed and lower-cased.
// Key(Key(x)) == Key(x).
func Key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Equal reports whether two names share a lookup key.
func Equal(a, b string) bool {
	return Key(a) == Key(b)
}

// TitleCase capitalises the first letter of each whitespace-separated word
// and lower-cases the rest, so "e-learning" becomes "E-learning".
// Known acronyms ("it", "hr", ...) are upper-cased whatever their input case.
func TitleCase(s string) string {
	words := strings.Fields(s)
	lower := cases.Lower(language.Und)
	upper := cases.Upper(language.Und)
	for i, w := range words {
		w = lower.String(w)
		if a, ok := acronyms[w]; ok {
			words[i] = a
			continue
		}
		_, size := utf8.DecodeRuneInString(w)
		words[i] = upper.String(w[:size]) + w[size:]
	}
	return strings.Join(words, " ")
}

// Hex prefixes a color with '#' unless it already has one.
// Blank input stays blank.
func Hex(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "#") {
		return s
	}
	return "#" + s
}

// IsHexColor reports whether s has the #RGB or #RRGGBB shape.
func IsHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	digits := s[1:]
	if len(digits) != 3 && len(digits) != 6 {
		return false
	}
	for _, r := range digits {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// SplitList splits a comma-separated cell into trimmed, non-empty parts.
func SplitList(s string) []string {
	var parts []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// ContainsFold reports whether substr occurs in s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
