package backend

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownBackend is returned for a backend name outside Kinds.
	ErrUnknownBackend = errors.New("unknown backend")
	// ErrUnknownOutput is returned for an output kind outside Outputs.
	ErrUnknownOutput = errors.New("unknown output kind")
	// ErrNotApplicable is returned when a backend cannot render an output kind.
	ErrNotApplicable = errors.New("output not applicable to backend")
)

// Output selects the generated artifact.
type Output uint8

const (
	OutputHeader     Output = iota + 1 // C header with inline trace functions
	OutputSource                       // C source with tables and probes
	OutputDescriptor                   // DTrace provider description
	OutputTapset                       // SystemTAP tapset
)

// String returns the output kind name.
func (o Output) String() string {
	switch o {
	case OutputHeader:
		return "header"
	case OutputSource:
		return "source"
	case OutputDescriptor:
		return "descriptor"
	case OutputTapset:
		return "tapset"
	default:
		return "unknown"
	}
}

// Outputs returns every output kind.
func Outputs() []Output {
	return []Output{OutputHeader, OutputSource, OutputDescriptor, OutputTapset}
}

// ParseOutput converts a name ("header", "h", "source", "c", "descriptor",
// "d", "tapset", "stap") to an Output.
func ParseOutput(s string) (Output, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "header", "h":
		return OutputHeader, nil
	case "source", "c":
		return OutputSource, nil
	case "descriptor", "d":
		return OutputDescriptor, nil
	case "tapset", "stap":
		return OutputTapset, nil
	default:
		return 0, fmt.Errorf("%w: %q (expected: header|source|descriptor|tapset)", ErrUnknownOutput, s)
	}
}
