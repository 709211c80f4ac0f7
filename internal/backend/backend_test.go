package backend

import (
	"errors"
	"strings"
	"testing"

	"tracetool/internal/event"
)

var sampleEvents = []string{
	`my_event(int a, const char *b) "a=%d b=%s"`,
	`vm_start(void) ""`,
}

// render drives r the way the converter does: Begin, a blank line before
// every fragment, a blank line before End.
func render(r Renderer, lines ...string) string {
	p := NewPass()
	r.Begin(p)
	for _, l := range lines {
		ev := event.Parse(l)
		p.WriteString("\n")
		r.Line(p, &ev)
	}
	p.WriteString("\n")
	r.End(p)
	return p.String()
}

func mustNew(t *testing.T, k Kind, cfg Config) Backend {
	t.Helper()
	b, err := New(k, cfg)
	if err != nil {
		t.Fatalf("New(%s): %v", k, err)
	}
	return b
}

func checkOutput(t *testing.T, got, want string) {
	t.Helper()
	if got != want {
		t.Fatalf("unexpected output:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestNopHeader(t *testing.T) {
	got := render(Nop.Header(), sampleEvents...)
	want := "\n" +
		"static inline void trace_my_event(int a, const char *b)\n{\n}\n" +
		"\n" +
		"static inline void trace_vm_start(void)\n{\n}\n" +
		"\n"
	checkOutput(t, got, want)

	if src := render(Nop.Source(), sampleEvents...); src != "\n\n\n" {
		t.Fatalf("nop source must only contain separators, got %q", src)
	}
}

func TestSimpleHeader(t *testing.T) {
	b := mustNew(t, KindSimple, Config{})
	got := render(b.Header(), sampleEvents...)
	want := `#include "trace/simple.h"

static inline void trace_my_event(int a, const char *b)
{
    trace2(0, (uint64_t)(uintptr_t)a, (uint64_t)(uintptr_t)b);
}

static inline void trace_vm_start(void)
{
    trace0(1);
}

#define NR_TRACE_EVENTS 2
extern TraceEvent trace_list[NR_TRACE_EVENTS];
`
	checkOutput(t, got, want)
}

func TestSimpleSource(t *testing.T) {
	b := mustNew(t, KindSimple, Config{})
	got := render(b.Source(), sampleEvents...)
	want := `#include "trace.h"

TraceEvent trace_list[] = {

{.tp_name = "my_event", .state=0},

{.tp_name = "vm_start", .state=0},

};
`
	checkOutput(t, got, want)
}

func TestStderrHeader(t *testing.T) {
	b := mustNew(t, KindStderr, Config{})
	got := render(b.Header(), sampleEvents...)
	want := `#include <stdio.h>
#include "trace/stderr.h"

extern TraceEvent trace_list[];

static inline void trace_my_event(int a, const char *b)
{
    if (trace_list[0].state != 0) {
        fprintf(stderr, "my_event a=%d b=%s\n", a, b);
    }
}

static inline void trace_vm_start(void)
{
    if (trace_list[1].state != 0) {
        fprintf(stderr, "vm_start \n");
    }
}

#define NR_TRACE_EVENTS 2
`
	checkOutput(t, got, want)
}

func TestUSTHeader(t *testing.T) {
	b := mustNew(t, KindUST, Config{})
	got := render(b.Header(), sampleEvents...)
	want := `#include <ust/tracepoint.h>
#undef mutex_lock
#undef mutex_unlock
#undef inline
#undef wmb

DECLARE_TRACE(ust_my_event, TP_PROTO(int a, const char *b), TP_ARGS(a, b));
#define trace_my_event trace_ust_my_event

_DECLARE_TRACEPOINT_NOARGS(ust_vm_start);
#define trace_vm_start trace_ust_vm_start

`
	checkOutput(t, got, want)
}

func TestUSTSource(t *testing.T) {
	b := mustNew(t, KindUST, Config{})
	got := render(b.Source(), sampleEvents...)
	want := `#include <ust/marker.h>
#undef mutex_lock
#undef mutex_unlock
#undef inline
#undef wmb
#include "trace.h"

DEFINE_TRACE(ust_my_event);

static void ust_my_event_probe(int a, const char *b)
{
    trace_mark(ust, my_event, "a=%d b=%s", a, b);
}

DEFINE_TRACE(ust_vm_start);

static void ust_vm_start_probe(void)
{
    trace_mark(ust, vm_start, UST_MARKER_NOARGS);
}

static void __attribute__((constructor)) trace_init(void)
{
    register_trace_ust_my_event(ust_my_event_probe);
    register_trace_ust_vm_start(ust_vm_start_probe);
}
`
	checkOutput(t, got, want)
}

func TestDTraceHeader(t *testing.T) {
	b := mustNew(t, KindDTrace, Config{})
	got := render(b.Header(), sampleEvents...)
	want := `#include "trace-dtrace.h"

static inline void trace_my_event(int a, const char *b) {
    if (QEMU_MY_EVENT_ENABLED()) {
        QEMU_MY_EVENT(a, b);
    }
}

static inline void trace_vm_start(void) {
    if (QEMU_VM_START_ENABLED()) {
        QEMU_VM_START();
    }
}

`
	checkOutput(t, got, want)

	if src := render(b.Source(), sampleEvents...); strings.TrimSpace(src) != "" {
		t.Fatalf("dtrace source must be empty, got %q", src)
	}
}

func TestDTraceDescriptor(t *testing.T) {
	b := mustNew(t, KindDTrace, Config{Provider: "myapp"}).(Prober)
	got := render(b.Descriptor(), sampleEvents...)
	want := `provider myapp {

        probe my_event(int a, const char *b);

        probe vm_start();

};
`
	checkOutput(t, got, want)
}

func TestDTraceTapset(t *testing.T) {
	b := mustNew(t, KindDTrace, Config{Binary: "/usr/bin/qemu", ProbePrefix: "qemu.system.x86_64"}).(Prober)
	got := render(b.Tapset(),
		`rate_limit(void *opaque, int limit) "opaque %p limit %d"`,
		`vm_start(void) ""`,
	)
	want := `
probe qemu.system.x86_64.rate_limit = process("/usr/bin/qemu").mark("rate_limit")
{
  opaque = $arg1;
  _limit = $arg2;
}

probe qemu.system.x86_64.vm_start = process("/usr/bin/qemu").mark("vm_start")
{
}

`
	checkOutput(t, got, want)
}

func TestTableMatchesHeaderIndex(t *testing.T) {
	lines := []string{
		`a(int x) "x %d"`,
		`b(void) ""`,
		`c(int x, int y) "%d %d"`,
	}
	for _, k := range []Kind{KindSimple, KindStderr} {
		b := mustNew(t, k, Config{})
		hp, sp := NewPass(), NewPass()
		b.Header().Begin(hp)
		b.Source().Begin(sp)
		for i, l := range lines {
			ev := event.Parse(l)
			if hp.Index != i || sp.Index != i {
				t.Fatalf("%s: before %s header index %d, table index %d, want %d", k, ev.Name, hp.Index, sp.Index, i)
			}
			b.Header().Line(hp, &ev)
			b.Source().Line(sp, &ev)
		}
		if hp.Index != len(lines) || sp.Index != len(lines) {
			t.Fatalf("%s: final indexes %d/%d, want %d", k, hp.Index, sp.Index, len(lines))
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("lttng"); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("ParseKind(lttng) error = %v, want ErrUnknownBackend", err)
	}
}

func TestSupports(t *testing.T) {
	for _, k := range Kinds() {
		b := mustNew(t, k, Config{})
		for _, out := range Outputs() {
			want := out == OutputHeader || out == OutputSource || k == KindDTrace
			if got := Supports(b, out); got != want {
				t.Errorf("Supports(%s, %s) = %v, want %v", k, out, got, want)
			}
		}
	}
	if _, err := RendererFor(mustNew(t, KindSimple, Config{}), OutputTapset); !errors.Is(err, ErrNotApplicable) {
		t.Fatalf("RendererFor(simple, tapset) error = %v, want ErrNotApplicable", err)
	}
}

func TestKindDescribe(t *testing.T) {
	for _, k := range Kinds() {
		if k.Describe() == "" {
			t.Errorf("%s has no description", k)
		}
	}
	if Kind(99).Describe() != "" || Kind(99).String() != "unknown" {
		t.Fatalf("out of range kind must be unknown")
	}
}
