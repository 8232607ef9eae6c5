package term

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintLine_Color(t *testing.T) {
	var buf bytes.Buffer
	c := NewWithWriter(&buf, true)

	c.PrintLine("$4[Error] boom")
	assert.Equal(t, ANSI_COL_PRFX+"0;91"+ANSI_COL_SUFX+"[Error] boom"+ANSI_COL_RESET, buf.String())

	c.PrintLine("plain")
	assert.Equal(t,
		ANSI_COL_PRFX+"0;91"+ANSI_COL_SUFX+"[Error] boom"+ANSI_COL_RESET+"\nplain",
		buf.String(), "a new line terminates the previous one first")

	require.NoError(t, c.Close())
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("plain\n")))
}

func TestPrintLine_NoColor(t *testing.T) {
	var buf bytes.Buffer
	c := NewWithWriter(&buf, false)

	c.PrintLine("$4[Error] cost: 5$$")
	assert.Equal(t, "[Error] cost: 5$", buf.String(),
		"color codes dropped, $$ collapsed, no ANSI on a non-tty")
}

func TestPrintLinePlus_ContinuesLine(t *testing.T) {
	var buf bytes.Buffer
	c := NewWithWriter(&buf, false)

	c.PrintLine("loading")
	c.PrintLinePlus(" done")
	require.NoError(t, c.Close())

	assert.Equal(t, "loading done\n", buf.String())
}

func TestRender_EdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		color bool
		text  string
		want  string
	}{
		{"trailing_dollar", false, "abc$", "abc"},
		{"double_dollar", false, "$$", "$"},
		{"non_digit_code_dropped", true, "$xabc", "abc"},
		{"non_digit_code_dropped_nocolor", false, "$xabc", "abc"},
		{"empty", true, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewWithWriter(nil, tt.color)
			assert.Equal(t, tt.want, string(c.render(tt.text)))
		})
	}
}

func TestCloseWithoutOutput(t *testing.T) {
	var buf bytes.Buffer
	c := NewWithWriter(&buf, false)
	require.NoError(t, c.Close())
	assert.Empty(t, buf.String(), "nothing pending, nothing to terminate")
}
