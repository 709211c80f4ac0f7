package backend

import (
	"fmt"
	"strings"
)

// Pass accumulates the output of one conversion pass together with the
// sequential event index of index based backends. A Pass is not safe for
// concurrent use; every pass gets its own.
type Pass struct {
	buf   strings.Builder
	Index int      // sequential event index, 0 at pass start
	Names []string // event names collected by backends that emit them at End
}

// NewPass returns an empty pass.
func NewPass() *Pass {
	return &Pass{}
}

// Next returns the current index and advances it.
func (p *Pass) Next() int {
	i := p.Index
	p.Index++
	return i
}

// Printf appends formatted text.
func (p *Pass) Printf(format string, args ...any) {
	fmt.Fprintf(&p.buf, format, args...)
}

// WriteString appends s.
func (p *Pass) WriteString(s string) {
	p.buf.WriteString(s)
}

// Lines appends each line followed by a newline.
func (p *Pass) Lines(lines ...string) {
	for _, l := range lines {
		p.buf.WriteString(l)
		p.buf.WriteByte('\n')
	}
}

// String returns the text accumulated so far.
func (p *Pass) String() string {
	return p.buf.String()
}

// Len returns the number of bytes accumulated so far.
func (p *Pass) Len() int {
	return p.buf.Len()
}
