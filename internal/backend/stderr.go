package backend

import (
	"strconv"

	"tracetool/internal/event"
)

// stderrBackend prints enabled events to stderr. The enable state lives in
// trace_list, defined by the source output.
type stderrBackend struct{}

func (stderrBackend) Kind() Kind       { return KindStderr }
func (stderrBackend) Header() Renderer { return stderrHeader{} }
func (stderrBackend) Source() Renderer { return eventTable{} }

type stderrHeader struct{}

func (stderrHeader) Begin(p *Pass) {
	p.Lines(
		"#include <stdio.h>",
		`#include "trace/stderr.h"`,
		"",
		"extern TraceEvent trace_list[];",
	)
	p.Index = 0
}

func (stderrHeader) Line(p *Pass, ev *event.Event) {
	names := ""
	if ev.Argc() > 0 {
		names = ", " + ev.JoinNames(", ")
	}
	p.Printf("static inline void trace_%s(%s)\n", ev.Name, ev.Args)
	p.Lines("{")
	p.Printf("    if (trace_list[%d].state != 0) {\n", p.Next())
	p.Printf("        fprintf(stderr, \"%s %s\\n\"%s);\n", ev.Name, ev.Fmt, names)
	p.Lines("    }", "}")
}

func (stderrHeader) End(p *Pass) {
	p.Printf("#define NR_TRACE_EVENTS %d\n", p.Index)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
