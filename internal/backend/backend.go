package backend

import (
	"fmt"
	"strings"

	"tracetool/internal/event"
)

// Kind selects a tracing backend.
type Kind uint8

const (
	KindNop    Kind = iota // events compile to empty functions
	KindSimple             // in-memory ring fed through trace_list
	KindStderr             // formatted print to stderr
	KindUST                // LTTng userspace tracer
	KindDTrace             // DTrace/SystemTAP static probes
)

var kindNames = [...]string{
	KindNop:    "nop",
	KindSimple: "simple",
	KindStderr: "stderr",
	KindUST:    "ust",
	KindDTrace: "dtrace",
}

// String returns the backend name as used on the command line.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

var kindDescriptions = [...]string{
	KindNop:    "tracing disabled, events compile to empty inline functions",
	KindSimple: "built-in trace buffer written by the simple tracer",
	KindStderr: "formatted events printed to stderr",
	KindUST:    "LTTng userspace tracer markers",
	KindDTrace: "DTrace/SystemTAP static probes",
}

// Describe returns a one-line description of the backend.
func (k Kind) Describe() string {
	if int(k) < len(kindDescriptions) {
		return kindDescriptions[k]
	}
	return ""
}

// Kinds returns every backend in listing order.
func Kinds() []Kind {
	return []Kind{KindNop, KindSimple, KindStderr, KindUST, KindDTrace}
}

// ParseKind converts a backend name to a Kind.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds() {
		if k.String() == name {
			return k, nil
		}
	}
	return KindNop, fmt.Errorf("%w: %q (expected: %s)", ErrUnknownBackend, s, kindList())
}

func kindList() string {
	names := make([]string, 0, len(kindNames))
	for _, k := range Kinds() {
		names = append(names, k.String())
	}
	return strings.Join(names, "|")
}

// Renderer emits one output kind for one backend. Begin and End write the
// fixed preamble and closing text; Line writes the fragment of one event.
type Renderer interface {
	Begin(p *Pass)
	Line(p *Pass, ev *event.Event)
	End(p *Pass)
}

// Backend renders headers and sources.
type Backend interface {
	Kind() Kind
	Header() Renderer
	Source() Renderer
}

// Prober is implemented by backends that also produce a probe provider
// description and a SystemTAP tapset.
type Prober interface {
	Backend
	Descriptor() Renderer
	Tapset() Renderer
}

// Config carries the naming parameters some backends need.
type Config struct {
	Provider    string // DTrace provider, "qemu" when empty
	Binary      string // traced executable for tapsets
	ProbePrefix string // SystemTAP probe alias prefix
}

// DefaultProvider is the provider name used when Config.Provider is empty.
const DefaultProvider = "qemu"

func (c Config) provider() string {
	if c.Provider == "" {
		return DefaultProvider
	}
	return c.Provider
}

// New returns the Backend for k.
func New(k Kind, cfg Config) (Backend, error) {
	switch k {
	case KindNop:
		return Nop, nil
	case KindSimple:
		return simpleBackend{}, nil
	case KindStderr:
		return stderrBackend{}, nil
	case KindUST:
		return ustBackend{}, nil
	case KindDTrace:
		return newDTrace(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownBackend, k)
	}
}

// Supports reports whether b can render out.
func Supports(b Backend, out Output) bool {
	switch out {
	case OutputHeader, OutputSource:
		return true
	case OutputDescriptor, OutputTapset:
		_, ok := b.(Prober)
		return ok && b.Kind() == KindDTrace
	default:
		return false
	}
}

// RendererFor returns the renderer of b for out.
func RendererFor(b Backend, out Output) (Renderer, error) {
	switch out {
	case OutputHeader:
		return b.Header(), nil
	case OutputSource:
		return b.Source(), nil
	}
	p, ok := b.(Prober)
	if !ok {
		return nil, fmt.Errorf("%w: %s output with %s backend", ErrNotApplicable, out, b.Kind())
	}
	switch out {
	case OutputDescriptor:
		return p.Descriptor(), nil
	case OutputTapset:
		return p.Tapset(), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownOutput, out)
	}
}
