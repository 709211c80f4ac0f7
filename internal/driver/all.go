package driver

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"tracetool/internal/backend"
	"tracetool/internal/convert"
	"tracetool/internal/trace"
)

// Artifact is one file produced by GenerateAll.
type Artifact struct {
	Output backend.Output
	Path   string
	Stats  convert.Stats
	// Written is false when the file already held identical content.
	Written bool
	text    string
}

// FileName returns the conventional file name of an artifact.
func FileName(opts Options, out backend.Output) string {
	switch out {
	case backend.OutputHeader:
		return "trace.h"
	case backend.OutputSource:
		return "trace.c"
	case backend.OutputDescriptor:
		return "trace-dtrace.dtrace"
	case backend.OutputTapset:
		return filepath.Base(opts.Binary) + ".stp"
	default:
		return "trace.out"
	}
}

// Plan lists the outputs GenerateAll renders for opts: header and source
// always, the descriptor for dtrace, and the tapset for dtrace when its
// prerequisites are configured.
func Plan(opts Options) []backend.Output {
	outs := []backend.Output{backend.OutputHeader, backend.OutputSource}
	if opts.Backend != backend.KindDTrace {
		return outs
	}
	outs = append(outs, backend.OutputDescriptor)
	stap := opts
	stap.Output = backend.OutputTapset
	if stap.Validate() == nil {
		outs = append(outs, backend.OutputTapset)
	}
	return outs
}

// AllOptions tunes GenerateAll.
type AllOptions struct {
	// Convert is passed to the header pass; the other passes report nothing
	// so each declaration warning appears once.
	Convert convert.Options
	// Observe, when set, receives per-output phase events.
	Observe PhaseObserver
	// Commit, when set, runs after every output rendered and before any file
	// is written. An error aborts the run with nothing written.
	Commit func() error
}

// GenerateAll renders every planned output of input concurrently and writes
// them into dir. Each output gets its own pass; files are written only after
// every pass succeeded, and files whose content is unchanged are left alone.
func GenerateAll(ctx context.Context, opts Options, input []byte, dir string, all AllOptions) ([]Artifact, error) {
	outs := Plan(opts)
	for _, out := range outs {
		o := opts
		o.Output = out
		if err := o.Validate(); err != nil {
			return nil, err
		}
	}

	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "generate-all", trace.CurrentSpan(ctx))
	defer span.End(dir)
	ctx = trace.WithSpan(ctx, span)

	artifacts := make([]Artifact, len(outs))
	g, gctx := errgroup.WithContext(ctx)
	for i, out := range outs {
		g.Go(func() error {
			o := opts
			o.Output = out
			passOpts := all.Convert
			if out != backend.OutputHeader {
				passOpts.Reporter = nil
			}
			var (
				text  string
				stats convert.Stats
			)
			err := all.Observe.observe(out.String(), func() error {
				var err error
				text, stats, err = Render(gctx, o, bytes.NewReader(input), passOpts)
				return err
			})
			if err != nil {
				return fmt.Errorf("%s: %w", out, err)
			}
			artifacts[i] = Artifact{
				Output: out,
				Path:   filepath.Join(dir, FileName(opts, out)),
				Stats:  stats,
				text:   text,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if all.Commit != nil {
		if err := all.Commit(); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	for i := range artifacts {
		a := &artifacts[i]
		written, err := writeIfChanged(a.Path, []byte(a.text))
		if err != nil {
			return nil, err
		}
		a.Written = written
	}
	return artifacts, nil
}
