package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that rendering of an output has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a rendering phase boundary. Name is the output kind.
type PhaseEvent struct {
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
	Err     error
}

// PhaseObserver receives phase events emitted during GenerateAll. It is
// called from the rendering goroutines and must be safe for concurrent use.
type PhaseObserver func(PhaseEvent)

func (o PhaseObserver) observe(name string, fn func() error) error {
	if o == nil {
		return fn()
	}
	o(PhaseEvent{Name: name, Status: PhaseStart})
	start := time.Now()
	err := fn()
	o(PhaseEvent{Name: name, Status: PhaseEnd, Elapsed: time.Since(start), Err: err})
	return err
}
