package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Education", "education"},
		{"  Health  ", "health"},
		{"IT Strategy", "it strategy"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		got := Key(tt.in)
		assert.Equal(t, tt.want, got, "Key(%q)", tt.in)
		assert.Equal(t, got, Key(got), "Key must be idempotent for %q", tt.in)
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal("Education", " education "))
	assert.False(t, Equal("Education", "Educations"))
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"IT strategy", "IT Strategy"},
		{"it STRATEGY", "IT Strategy"},
		{"digital transformation", "Digital Transformation"},
		{"hr and pr", "HR And PR"},
		{"ue nc ic", "UE NC IC"},
		{"  spaced   out  ", "Spaced Out"},
		{"ITALY", "Italy"},
		{"e-learning", "E-learning"},
		{"E-Learning platform", "E-learning Platform"},
		{"covid-19 response", "Covid-19 Response"},
		{"it/hr", "It/hr"},
		{"o'neill", "O'neill"},
		{"élan", "Élan"},
		{"", ""},
	}
	for _, tt := range tests {
		got := TitleCase(tt.in)
		assert.Equal(t, tt.want, got, "TitleCase(%q)", tt.in)
		assert.Equal(t, got, TitleCase(got), "TitleCase must be idempotent for %q", tt.in)
	}
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#FF0000", Hex("FF0000"))
	assert.Equal(t, "#00FF00", Hex("#00FF00"))
	assert.Equal(t, "#abc", Hex(" abc "))
	assert.Empty(t, Hex(""))
	assert.Empty(t, Hex("  "))
}

func TestIsHexColor(t *testing.T) {
	assert.True(t, IsHexColor("#E3F2FD"))
	assert.True(t, IsHexColor("#abc"))
	assert.False(t, IsHexColor("E3F2FD"))
	assert.False(t, IsHexColor("#E3F2F"))
	assert.False(t, IsHexColor("#blue"))
	assert.False(t, IsHexColor("#GGGGGG"))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Health", "Labour"}, SplitList("Health, Labour"))
	assert.Equal(t, []string{"a", "b"}, SplitList(" a ,, b ,"))
	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList(" , "))
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("Key Measures", "measure"))
	assert.True(t, ContainsFold("MEASURES", "Measure"))
	assert.False(t, ContainsFold("Action", "measure"))
}
