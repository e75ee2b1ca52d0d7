package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuChoose(t *testing.T) {
	opts := []string{"Page Write", "Read"}

	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"first", "1\n", "Page Write", true},
		{"second with spaces", "  2 \n", "Read", true},
		{"out of range then valid", "3\n0\n2\n", "Read", true},
		{"quit", "q\n", "", false},
		{"any text quits", "read\n", "", false},
		{"end of input", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, ok, err := NewMenu(strings.NewReader(tt.input), &out).Choose("Pick", opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestMenuChooseReportsInvalidChoice(t *testing.T) {
	var out bytes.Buffer
	_, _, err := NewMenu(strings.NewReader("5\nq\n"), &out).Choose("Pick", []string{"A"})
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out.String(), "Pick\n\t1:  A\n\tq:  Quit Program\n"))
	assert.Contains(t, out.String(), "Invalid choice 5\n")
}

func TestMenuPrompt(t *testing.T) {
	var out bytes.Buffer
	m := NewMenu(strings.NewReader(" 0x0010 \n"), &out)

	got, err := m.Prompt("Address: ")
	require.NoError(t, err)
	assert.Equal(t, "0x0010", got)
	assert.Equal(t, "Address: ", out.String())

	_, err = m.Prompt("Again: ")
	assert.ErrorIs(t, err, io.EOF)
}
