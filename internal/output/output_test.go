package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorEnabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		flag      bool
		env       string
		configOff bool
		tty       bool
		want      bool
	}{
		{name: "tty", tty: true, want: true},
		{name: "not a tty", tty: false, want: false},
		{name: "flag", flag: true, tty: true, want: false},
		{name: "NO_COLOR set", env: "1", tty: true, want: false},
		{name: "NO_COLOR empty", env: "", tty: true, want: true},
		{name: "config", configOff: true, tty: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ColorEnabled(tt.flag, tt.env, tt.configOff, tt.tty))
		})
	}
}

func TestPrinterWithoutColorEmitsNoEscapes(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer
	p := New(&out, &errOut, false)

	p.HumanLn("%s: %s", p.Bold("State"), p.Muted("Todo"))
	p.ErrorHuman("Not found", "issue 'ENG-1' not found")

	assert.Equal(t, "State: Todo\n", out.String())
	assert.Equal(t, "Not found: issue 'ENG-1' not found\n", errOut.String())
	assert.NotContains(t, out.String()+errOut.String(), "\x1b[")
}

func TestPrinterWithColor(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	p := New(&out, &out, true)

	assert.Contains(t, p.Bold("x"), "\x1b[1m")
	assert.True(t, p.ColorOn())
}

func TestTable(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	p := New(&out, &out, false)

	p.Table([]string{"ID", "TITLE"}, [][]string{
		{"ENG-1", "First"},
		{"ENG-22", "Second"},
	})

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[0], "TITLE")
	assert.True(t, strings.HasPrefix(lines[1], "ENG-1"))
	assert.Contains(t, lines[2], "Second")
	assert.NotContains(t, out.String(), "|")
}

func TestJSON(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	p := New(&out, &out, false)

	require.NoError(t, p.JSONError("NOT_FOUND", "issue '<x>' not found"))
	assert.Equal(t, "{\n  \"error\": {\n    \"code\": \"NOT_FOUND\",\n    \"message\": \"issue '<x>' not found\"\n  }\n}\n", out.String())
}
