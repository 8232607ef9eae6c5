// Package term renders engine console output on a terminal: $-color codes
// become ANSI sequences on a tty and continuation prints keep the current
// line via a deferred newline.
package term

import (
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

const (
	// ANSI colored text is a string like \033[<code>mSome_colored_text\033[0m
	ANSI_COL_PRFX  = "\033["
	ANSI_COL_SUFX  = "m"
	ANSI_COL_RESET = ANSI_COL_PRFX + "0" + ANSI_COL_SUFX
)

// ColorOnBlackMap maps the engine $0..$9 palette to ANSI SGR codes.
var ColorOnBlackMap = [10]string{
	"0;30", // $0 black
	"0;97", // $1 white
	"0;94", // $2 blue
	"0;92", // $3 green
	"0;91", // $4 red
	"0;96", // $5 cyan
	"0;93", // $6 yellow
	"0;95", // $7 magenta
	"0;33", // $8 orange
	"0;90", // $9 gray
}

// Console prints log lines to a terminal. It satisfies the logger's console
// capability: PrintLine starts a new line, PrintLinePlus continues the
// current one. The trailing newline of a line is deferred until the next
// PrintLine (or Close), so continuations land on the same visual line.
type Console struct {
	mu      sync.Mutex
	out     io.Writer
	color   bool
	pending bool // an unterminated line is on screen
}

// New wires the console to stdout, with colors when stdout is a tty.
func New() *Console {
	fd := os.Stdout.Fd()
	color := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	out := io.Writer(os.Stdout)
	if color {
		out = colorable.NewColorable(os.Stdout)
	}
	return NewWithWriter(out, color)
}

// NewWithWriter wires the console to an arbitrary writer.
func NewWithWriter(out io.Writer, color bool) *Console {
	return &Console{out: out, color: color}
}

func (c *Console) PrintLine(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending {
		io.WriteString(c.out, "\n")
	}
	c.out.Write(c.render(text))
	c.pending = true
}

func (c *Console) PrintLinePlus(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.out.Write(c.render(text))
	c.pending = true
}

// Close terminates a pending line.
func (c *Console) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending {
		if _, err := io.WriteString(c.out, "\n"); err != nil {
			return err
		}
		c.pending = false
	}
	return nil
}

// render translates $-color codes: "$$" prints '$', "$<digit>" switches the
// color on a color-capable writer and is dropped otherwise, any other code
// is dropped entirely.
func (c *Console) render(text string) []byte {
	var buf bytes.Buffer
	colored := false

	for i := 0; i < len(text); i++ {
		if text[i] != '$' {
			buf.WriteByte(text[i])
			continue
		}
		i++
		if i >= len(text) {
			break
		}
		switch code := text[i]; {
		case code == '$':
			buf.WriteByte('$')
		case c.color && code >= '0' && code <= '9':
			buf.WriteString(ANSI_COL_PRFX)
			buf.WriteString(ColorOnBlackMap[code-'0'])
			buf.WriteString(ANSI_COL_SUFX)
			colored = true
		}
	}

	if colored {
		buf.WriteString(ANSI_COL_RESET)
	}
	return buf.Bytes()
}
