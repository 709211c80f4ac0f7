// Package trace records what the generator itself does.
//
// It is the tool's structured log: the driver opens a span per conversion
// pass and, at the detail level, emits a point per rendered event. Nothing
// here is related to the trace events the generator renders; this package
// only observes the generator.
//
// # Usage
//
//	tracetool --simple -h --trace=- --trace-level=detail < trace-events
//
// # Architecture
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes every event immediately (file or stderr)
//   - RingTracer: keeps the last N events for a dump after a failure
//   - MultiTracer: fans out to several tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only dumped after a failure
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: one point per rendered event
//   - LevelDebug: everything, including skipped lines
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "header", 0)
//	defer span.End("")
package trace
