package backend

import "tracetool/internal/event"

// ustBackend declares LTTng UST tracepoints in the header and defines the
// probes plus their registration in the source.
type ustBackend struct{}

func (ustBackend) Kind() Kind       { return KindUST }
func (ustBackend) Header() Renderer { return ustHeader{} }
func (ustBackend) Source() Renderer { return ustSource{} }

// The UST headers define macros that clash with names used throughout the
// traced program.
var ustUndefs = []string{
	"#undef mutex_lock",
	"#undef mutex_unlock",
	"#undef inline",
	"#undef wmb",
}

type ustHeader struct{}

func (ustHeader) Begin(p *Pass) {
	p.Lines("#include <ust/tracepoint.h>")
	p.Lines(ustUndefs...)
}

func (ustHeader) Line(p *Pass, ev *event.Event) {
	if ev.Argc() > 0 {
		p.Printf("DECLARE_TRACE(ust_%s, TP_PROTO(%s), TP_ARGS(%s));\n", ev.Name, ev.Args, ev.JoinNames(", "))
	} else {
		p.Printf("_DECLARE_TRACEPOINT_NOARGS(ust_%s);\n", ev.Name)
	}
	p.Printf("#define trace_%s trace_ust_%s\n", ev.Name, ev.Name)
}

func (ustHeader) End(*Pass) {}

type ustSource struct{}

func (ustSource) Begin(p *Pass) {
	p.Lines("#include <ust/marker.h>")
	p.Lines(ustUndefs...)
	p.Lines(`#include "trace.h"`)
	p.Names = p.Names[:0]
}

func (ustSource) Line(p *Pass, ev *event.Event) {
	p.Printf("DEFINE_TRACE(ust_%s);\n\n", ev.Name)
	p.Printf("static void ust_%s_probe(%s)\n", ev.Name, ev.Args)
	p.Lines("{")
	if ev.Argc() > 0 {
		p.Printf("    trace_mark(ust, %s, \"%s\", %s);\n", ev.Name, ev.Fmt, ev.JoinNames(", "))
	} else {
		p.Printf("    trace_mark(ust, %s, UST_MARKER_NOARGS);\n", ev.Name)
	}
	p.Lines("}")
	p.Names = append(p.Names, ev.Name)
}

func (ustSource) End(p *Pass) {
	p.Lines("static void __attribute__((constructor)) trace_init(void)", "{")
	for _, name := range p.Names {
		p.Printf("    register_trace_ust_%s(ust_%s_probe);\n", name, name)
	}
	p.Lines("}")
}
