package progress

import (
	"fmt"
	"io"
)

// Meter receives progress for one pipeline stage. Begin announces the total
// before any work happens; Advance reports increments, not absolutes.
type Meter interface {
	Begin(label string, total int64)
	Advance(n int64)
	Done()
}

type nop struct{}

func (nop) Begin(string, int64) {}
func (nop) Advance(int64)       {}
func (nop) Done()               {}

func Nop() Meter { return nop{} }

// Console renders a single updating line per stage.
type Console struct {
	w       io.Writer
	label   string
	total   int64
	current int64
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Begin(label string, total int64) {
	c.label = label
	c.total = total
	c.current = 0
	c.render()
}

func (c *Console) Advance(n int64) {
	c.current += n
	c.render()
}

func (c *Console) Done() {
	if c.label == "" {
		return
	}
	fmt.Fprintln(c.w)
	c.label = ""
}

func (c *Console) render() {
	if c.total > 0 {
		pct := c.current * 100 / c.total
		fmt.Fprintf(c.w, "\r%s %d/%d (%d%%)", c.label, c.current, c.total, pct)
		return
	}
	fmt.Fprintf(c.w, "\r%s %d", c.label, c.current)
}
