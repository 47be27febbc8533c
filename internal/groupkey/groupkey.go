package groupkey

import (
	"fmt"
	"strings"
)

// Fallback is the key of the bucket for records without a numeric prefix.
const Fallback = "Other"

// Format returns a group key like "3.2".
func Format(major, minor string) string {
	return fmt.Sprintf("%s.%s", major, minor)
}

// Parse extracts the two leading dot-separated integer runs from text.
// "3.2 Curriculum Reform" -> "3", "2". Leading whitespace is ignored;
// anything else before the digits means no match.
func Parse(text string) (major, minor string, ok bool) {
	s := strings.TrimSpace(text)

	major, rest := leadingDigits(s)
	if major == "" || !strings.HasPrefix(rest, ".") {
		return "", "", false
	}
	minor, _ = leadingDigits(rest[1:])
	if minor == "" {
		return "", "", false
	}
	return major, minor, true
}

// FromText returns the group key for text, or "" when it has no prefix.
func FromText(text string) string {
	major, minor, ok := Parse(text)
	if !ok {
		return ""
	}
	return Format(major, minor)
}

func leadingDigits(s string) (digits, rest string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i], s[i:]
}
