package backend

import (
	"strings"

	"tracetool/internal/event"
)

// simpleBackend records events into an in-memory buffer through the
// arity specific traceN calls. Each event is identified by its index in
// trace_list.
type simpleBackend struct{}

func (simpleBackend) Kind() Kind       { return KindSimple }
func (simpleBackend) Header() Renderer { return simpleHeader{} }
func (simpleBackend) Source() Renderer { return eventTable{} }

type simpleHeader struct{}

func (simpleHeader) Begin(p *Pass) {
	p.Lines(`#include "trace/simple.h"`)
	p.Index = 0
}

func (simpleHeader) Line(p *Pass, ev *event.Event) {
	args := []string{itoa(p.Next())}
	for _, name := range ev.ArgNames {
		args = append(args, "(uint64_t)(uintptr_t)"+name)
	}
	p.Printf("static inline void trace_%s(%s)\n", ev.Name, ev.Args)
	p.Lines("{")
	p.Printf("    trace%d(%s);\n", ev.Argc(), strings.Join(args, ", "))
	p.Lines("}")
}

func (simpleHeader) End(p *Pass) {
	p.Printf("#define NR_TRACE_EVENTS %d\n", p.Index)
	p.Lines("extern TraceEvent trace_list[NR_TRACE_EVENTS];")
}

// eventTable defines trace_list, one entry per event in index order. It is
// shared by every backend whose header looks events up by index.
type eventTable struct{}

func (eventTable) Begin(p *Pass) {
	p.Lines(`#include "trace.h"`, "", "TraceEvent trace_list[] = {")
	p.Index = 0
}

func (eventTable) Line(p *Pass, ev *event.Event) {
	p.Printf("{.tp_name = \"%s\", .state=0},\n", ev.Name)
	p.Next()
}

func (eventTable) End(p *Pass) {
	p.Lines("};")
}
