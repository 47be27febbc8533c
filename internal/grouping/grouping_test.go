package grouping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/measuretrack/measuretrack/internal/groupkey"
	"github.com/measuretrack/measuretrack/internal/model"
)

func rec(id int, category, subcategory, measures string) model.Record {
	return model.Record{ID: id, Fields: map[string]string{
		CategoryField:    category,
		SubcategoryField: subcategory,
		MeasuresField:    measures,
	}}
}

func TestKeyOf(t *testing.T) {
	tests := []struct {
		name string
		r    model.Record
		want string
	}{
		{"category", rec(0, "3.2 Curriculum Reform", "", "Write curricula"), "3.2"},
		{"subcategory", rec(0, "", "4.1 Teachers", ""), "4.1"},
		{"measures", rec(0, "", "", " 5.3 Train staff"), "5.3"},
		{"category without prefix falls through", rec(0, "Curriculum", "2.7 Exams", ""), "2.7"},
		{"category wins over subcategory", rec(0, "1.1 Access", "9.9 Other", ""), "1.1"},
		{"no match", rec(0, "Curriculum", "Teachers", "Train staff"), groupkey.Fallback},
		{"all blank", rec(0, "", "", ""), groupkey.Fallback},
		{"missing fields", model.Record{Fields: map[string]string{}}, groupkey.Fallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KeyOf(tt.r))
		})
	}
}

func TestGroup(t *testing.T) {
	records := []model.Record{
		rec(0, "2.1 Health", "", ""),
		rec(1, "1.1 Access", "", ""),
		rec(2, "", "", "No number"),
		rec(3, "2.1 Health again", "", ""),
		rec(4, "", "1.1 Sub", ""),
	}

	groups := Group(records)
	require.Len(t, groups, 3)

	assert.Equal(t, "2.1", groups[0].Key)
	assert.Equal(t, "2.1 Health", groups[0].Title)
	assert.Equal(t, []int{0, 3}, recordIDs(groups[0].Records))

	assert.Equal(t, "1.1", groups[1].Key)
	assert.Equal(t, []int{1, 4}, recordIDs(groups[1].Records))

	assert.Equal(t, groupkey.Fallback, groups[2].Key)
	assert.Equal(t, "Category Other", groups[2].Title)
	assert.Equal(t, []int{2}, recordIDs(groups[2].Records))
}

func TestGroupTitleFallback(t *testing.T) {
	groups := Group([]model.Record{rec(0, "", "4.2 Teachers", "")})
	require.Len(t, groups, 1)
	assert.Equal(t, "Category 4.2", groups[0].Title)
}

func TestGroupEmpty(t *testing.T) {
	assert.Empty(t, Group(nil))
}

func TestGroupIdempotent(t *testing.T) {
	records := []model.Record{
		rec(0, "2.1 A", "", ""),
		rec(1, "1.1 B", "", ""),
		rec(2, "x", "", ""),
		rec(3, "2.1 C", "", ""),
		rec(4, "1.1 D", "", ""),
	}

	first := Group(records)
	second := Group(flatten(first))
	assert.Equal(t, first, second)
}

func recordIDs(records []model.Record) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func flatten(groups []model.Group) []model.Record {
	var out []model.Record
	for _, g := range groups {
		out = append(out, g.Records...)
	}
	return out
}
