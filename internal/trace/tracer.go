package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer receives the generator's own trace records. Emit must be safe for
// concurrent use: "all" renders outputs in parallel.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

// StorageMode selects where records go.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // written as they happen
	ModeRing                          // kept in memory for a failure dump
	ModeBoth                          // both of the above
)

var modeNames = [...]string{
	ModeStream: "stream",
	ModeRing:   "ring",
	ModeBoth:   "both",
}

func (m StorageMode) String() string {
	if m > 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// ParseMode converts a --trace-mode value.
func ParseMode(s string) (StorageMode, error) {
	name := strings.ToLower(s)
	for m := ModeStream; m <= ModeBoth; m++ {
		if modeNames[m] == name {
			return m, nil
		}
	}
	return ModeStream, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

const defaultRingSize = 1024

// Config describes the tracer built by New.
type Config struct {
	Level    Level
	Mode     StorageMode
	Format   Format // stream record format
	Path     string // stream destination, "" or "-" for stderr
	RingSize int    // 0 means 1024
}

// New builds the tracer for cfg. LevelOff yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	size := cfg.RingSize
	if size <= 0 {
		size = defaultRingSize
	}
	if cfg.Mode == ModeRing {
		return NewRingTracer(size, cfg.Level), nil
	}
	if cfg.Mode != ModeStream && cfg.Mode != ModeBoth {
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	}

	w, err := openSink(cfg.Path)
	if err != nil {
		return nil, err
	}
	stream := NewStreamTracer(w, cfg.Level, cfg.Format)
	if cfg.Mode == ModeStream {
		return stream, nil
	}
	return NewMultiTracer(cfg.Level, stream, NewRingTracer(size, cfg.Level)), nil
}

func openSink(path string) (io.Writer, error) {
	if path == "" || path == "-" {
		return stderrWriter{os.Stderr}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}

// stderrWriter hides the Close method of os.Stderr from StreamTracer.Close.
type stderrWriter struct{ io.Writer }
