package model

import "github.com/measuretrack/measuretrack/internal/textnorm"

// DefaultFallbackColor is returned for names with no configured color.
const DefaultFallbackColor = "#E0E0E0"

// Palette maps normalized entity names to '#'-prefixed colors.
// It is built once per load and read-only afterwards.
type Palette struct {
	byKey    map[string]string
	fallback string
}

// NewPalette creates a Palette from name -> color pairs.
// Names are normalized; blank colors are not stored.
func NewPalette(colors map[string]string, fallback string) Palette {
	if fallback == "" {
		fallback = DefaultFallbackColor
	}
	byKey := make(map[string]string, len(colors))
	for name, color := range colors {
		if color == "" {
			continue
		}
		byKey[textnorm.Key(name)] = textnorm.Hex(color)
	}
	return Palette{byKey: byKey, fallback: fallback}
}

// Lookup returns the color for a name and whether one is configured.
func (p Palette) Lookup(name string) (string, bool) {
	c, ok := p.byKey[textnorm.Key(name)]
	return c, ok
}

// Color returns the configured color for name, or the fallback.
func (p Palette) Color(name string) string {
	if c, ok := p.Lookup(name); ok {
		return c
	}
	return p.Fallback()
}

// Fallback returns the neutral color used for unknown names.
func (p Palette) Fallback() string {
	if p.fallback == "" {
		return DefaultFallbackColor
	}
	return p.fallback
}

// Len returns the number of configured colors.
func (p Palette) Len() int {
	return len(p.byKey)
}
