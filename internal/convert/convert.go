// Package convert drives one conversion pass over an events file.
package convert

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"tracetool/internal/backend"
	"tracetool/internal/diag"
	"tracetool/internal/event"
	"tracetool/internal/trace"
)

// Options tunes a pass.
type Options struct {
	Path     string        // input name used in diagnostics
	Reporter diag.Reporter // receives declaration warnings, may be nil
}

// Stats summarises a pass.
type Stats struct {
	Events   int // rendered declarations, disabled ones included
	Disabled int // declarations routed to the nop renderer
	Problems int // declarations with at least one problem
}

// seen tracks the first line of every event name in a pass.
type seen map[string]int

// duplicate records ev and reports a redeclared name.
func (s seen) duplicate(opts Options, ev *event.Event) bool {
	if ev.Name == "" {
		return false
	}
	first, ok := s[ev.Name]
	if !ok {
		s[ev.Name] = ev.Line
		return false
	}
	if opts.Reporter != nil {
		d := diag.New(diag.SevWarning, diag.DeclDuplicateEvent, diag.At(opts.Path, ev.Line),
			fmt.Sprintf("duplicate event %q", ev.Name))
		opts.Reporter.Report(d.WithNote(diag.At(opts.Path, first), "first declared here"))
	}
	return true
}

// Convert renders every declaration of r with the out renderer of b.
//
// The pass writes Begin, then for each declaration a blank line followed by
// its fragment, then a blank line and End. A declaration with the disable
// property is rendered by the nop backend for the same output kind. The
// sequential event index lives in the returned Pass and starts at 0.
func Convert(ctx context.Context, r io.Reader, b backend.Backend, out backend.Output, opts Options) (*backend.Pass, Stats, error) {
	var stats Stats

	active, err := backend.RendererFor(b, out)
	if err != nil {
		return nil, stats, err
	}
	disabled, err := backend.RendererFor(backend.Nop, out)
	if err != nil {
		return nil, stats, err
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, out.String(), trace.CurrentSpan(ctx))
	defer func() {
		span.WithExtra("events", strconv.Itoa(stats.Events)).
			WithExtra("disabled", strconv.Itoa(stats.Disabled)).
			End(b.Kind().String())
	}()

	p := backend.NewPass()
	active.Begin(p)

	names := seen{}
	sc := event.NewScanner(r)
	sc.OnSkip = func(line int, _ string) {
		trace.Point(tracer, trace.ScopeLine, "skip", "line "+strconv.Itoa(line), span.ID())
	}
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		ev := sc.Event()
		bad := report(opts, &ev)
		if names.duplicate(opts, &ev) {
			bad = true
		}
		if bad {
			stats.Problems++
		}

		p.WriteString("\n")
		rend := active
		if ev.Disabled() {
			rend = disabled
			stats.Disabled++
		}
		rend.Line(p, &ev)
		stats.Events++

		trace.Point(tracer, trace.ScopeEvent, "event:"+ev.Name,
			fmt.Sprintf("line %d, index %d", ev.Line, p.Index), span.ID())
	}
	if err := sc.Err(); err != nil {
		return nil, stats, fmt.Errorf("read %s: %w", displayPath(opts.Path), err)
	}

	p.WriteString("\n")
	active.End(p)
	return p, stats, nil
}

// report forwards the problems of ev and reports whether it had any.
func report(opts Options, ev *event.Event) bool {
	problems := event.Check(ev)
	if opts.Reporter == nil {
		return len(problems) > 0
	}
	for _, pr := range problems {
		diag.ReportAt(opts.Reporter, diag.SevWarning, problemCode(pr), opts.Path, ev.Line,
			fmt.Sprintf("%s: %s", pr, ev.Raw))
	}
	return len(problems) > 0
}

func problemCode(p event.Problem) diag.Code {
	switch p {
	case event.ProblemNoOpenParen:
		return diag.DeclNoOpenParen
	case event.ProblemNoCloseParen:
		return diag.DeclNoCloseParen
	case event.ProblemNoFormat:
		return diag.DeclNoFormat
	case event.ProblemNoName:
		return diag.DeclNoName
	default:
		return diag.DeclInfo
	}
}

func displayPath(path string) string {
	if path == "" || path == "-" {
		return "<stdin>"
	}
	return path
}
