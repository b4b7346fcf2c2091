package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriorityLabel(t *testing.T) {
	t.Parallel()

	tests := map[int]string{
		0:  "None",
		1:  "Urgent",
		2:  "High",
		3:  "Normal",
		4:  "Low",
		9:  "—",
		-1: "—",
	}
	for priority, want := range tests {
		assert.Equal(t, want, PriorityLabel(priority), "priority %d", priority)
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "short", in: "Fix bug", max: 40, want: "Fix bug"},
		{name: "exact", in: "abcde", max: 5, want: "abcde"},
		{name: "long", in: "abcdef", max: 5, want: "abcd…"},
		{name: "multibyte", in: "日本語のタイトル", max: 4, want: "日本語…"},
		{name: "zero", in: "abc", max: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Truncate(tt.in, tt.max))
		})
	}
}

func TestTruncateTitleColumn(t *testing.T) {
	t.Parallel()

	title := "Implement the new onboarding flow for enterprise workspaces"
	got := Truncate(title, 40)
	assert.Equal(t, 40, len([]rune(got)))
	assert.Equal(t, "Implement the new onboarding flow for e…", got)
}

func TestDateAndPercent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2024-03-01", Date("2024-03-01T12:30:00.000Z"))
	assert.Equal(t, "2024", Date("2024"))
	assert.Equal(t, "0%", Percent(0))
	assert.Equal(t, "43%", Percent(0.426))
	assert.Equal(t, "100%", Percent(1))
}

func TestOrMissing(t *testing.T) {
	t.Parallel()

	empty := ""
	value := "text"
	assert.Equal(t, Missing, OrMissing(nil))
	assert.Equal(t, Missing, OrMissing(&empty))
	assert.Equal(t, "text", OrMissing(&value))
}

func TestGroupByType(t *testing.T) {
	t.Parallel()

	type state struct{ name, typ string }
	states := []state{
		{"Done", "completed"},
		{"Triage", "triage"},
		{"Todo", "unstarted"},
		{"In Progress", "started"},
		{"In Review", "started"},
	}

	groups := GroupByType(states, func(s state) string { return s.typ })

	var types []string
	for _, g := range groups {
		types = append(types, g.Type)
	}
	assert.Equal(t, []string{"unstarted", "started", "completed"}, types)
	assert.Equal(t, []state{{"In Progress", "started"}, {"In Review", "started"}}, groups[1].States)
}
