package backend

import "tracetool/internal/event"

// nopBackend compiles every event to an empty inline function. It also
// renders disabled events for all other backends.
type nopBackend struct{}

// Nop is the package-level nop backend.
var Nop Prober = nopBackend{}

func (nopBackend) Kind() Kind           { return KindNop }
func (nopBackend) Header() Renderer     { return nopHeader{} }
func (nopBackend) Source() Renderer     { return silent{} }
func (nopBackend) Descriptor() Renderer { return silent{} }
func (nopBackend) Tapset() Renderer     { return silent{} }

type nopHeader struct{ silent }

func (nopHeader) Line(p *Pass, ev *event.Event) {
	p.Printf("static inline void trace_%s(%s)\n{\n}\n", ev.Name, ev.Args)
}

// silent renders nothing at all.
type silent struct{}

func (silent) Begin(*Pass)              {}
func (silent) Line(*Pass, *event.Event) {}
func (silent) End(*Pass)                {}
