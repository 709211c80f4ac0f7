package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	// KindSpanBegin marks the start of a logical operation.
	KindSpanBegin Kind = iota + 1
	// KindSpanEnd marks the end of a logical operation.
	KindSpanEnd
	// KindPoint represents an instant event.
	KindPoint
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity level of the event.
// Lower numeric values represent coarser events.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // one generator invocation
	ScopePass                    // one conversion pass (header, source, ...)
	ScopeEvent                   // one rendered declaration
	ScopeLine                    // skipped blank and comment lines
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopePass:
		return "pass"
	case ScopeEvent:
		return "event"
	case ScopeLine:
		return "line"
	default:
		return "unknown"
	}
}

// Event represents a single trace record.
type Event struct {
	Time     time.Time         // wall-clock timestamp
	Seq      uint64            // global sequence number (monotonic)
	Kind     Kind              // event kind
	Scope    Scope             // granularity level
	SpanID   uint64            // span identifier, 0 for points outside spans
	ParentID uint64            // parent span (0 if root)
	Name     string            // e.g. "generate", "header", "event:vm_start"
	Detail   string            // optional detail message
	Extra    map[string]string // extensible key-value pairs
}
