package backend

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"tracetool/internal/event"
)

// dtraceBackend guards each probe with its generated *_ENABLED() check. All
// code lives in the header; the provider description and tapset are
// rendered separately.
type dtraceBackend struct {
	provider string
	binary   string
	prefix   string
	upper    cases.Caser
}

func newDTrace(cfg Config) *dtraceBackend {
	return &dtraceBackend{
		provider: cfg.provider(),
		binary:   cfg.Binary,
		prefix:   cfg.ProbePrefix,
		upper:    cases.Upper(language.Und),
	}
}

func (b *dtraceBackend) Kind() Kind           { return KindDTrace }
func (b *dtraceBackend) Header() Renderer     { return dtraceHeader{b} }
func (b *dtraceBackend) Source() Renderer     { return silent{} }
func (b *dtraceBackend) Descriptor() Renderer { return dtraceDescriptor{b} }
func (b *dtraceBackend) Tapset() Renderer     { return dtraceTapset{b} }

// macro returns the name dtrace -h generates for a probe of this provider.
func (b *dtraceBackend) macro(name string) string {
	return b.upper.String(b.provider) + "_" + b.upper.String(name)
}

type dtraceHeader struct{ b *dtraceBackend }

func (dtraceHeader) Begin(p *Pass) {
	p.Lines(`#include "trace-dtrace.h"`)
}

func (h dtraceHeader) Line(p *Pass, ev *event.Event) {
	macro := h.b.macro(ev.Name)
	p.Printf("static inline void trace_%s(%s) {\n", ev.Name, ev.Args)
	p.Printf("    if (%s_ENABLED()) {\n", macro)
	p.Printf("        %s(%s);\n", macro, ev.JoinNames(", "))
	p.Lines("    }", "}")
}

func (dtraceHeader) End(*Pass) {}

type dtraceDescriptor struct{ b *dtraceBackend }

func (d dtraceDescriptor) Begin(p *Pass) {
	p.Printf("provider %s {\n", d.b.provider)
}

func (dtraceDescriptor) Line(p *Pass, ev *event.Event) {
	args := ev.Args
	// provider descriptions spell an empty parameter list foo(), never foo(void)
	if strings.TrimSpace(args) == "void" {
		args = ""
	}
	p.Printf("        probe %s(%s);\n", ev.Name, args)
}

func (dtraceDescriptor) End(p *Pass) {
	p.Lines("};")
}

type dtraceTapset struct{ b *dtraceBackend }

func (dtraceTapset) Begin(*Pass) {}

func (t dtraceTapset) Line(p *Pass, ev *event.Event) {
	p.Printf("probe %s.%s = process(\"%s\").mark(\"%s\")\n", t.b.prefix, ev.Name, t.b.binary, ev.Name)
	p.Lines("{")
	for i, name := range ev.ArgNames {
		p.Printf("  %s = $arg%d;\n", tapsetLocal(name), i+1)
	}
	p.Lines("}")
}

func (dtraceTapset) End(*Pass) {}

// tapsetLocal renames argument names that are reserved words in the
// SystemTAP language.
func tapsetLocal(name string) string {
	if name == "limit" {
		return "_limit"
	}
	return name
}
