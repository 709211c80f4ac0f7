package driver

import (
	"context"
	"fmt"
	"io"
	"strings"

	"tracetool/internal/backend"
	"tracetool/internal/convert"
	"tracetool/internal/trace"
)

const banner = "/* This file is autogenerated by tracetool, do not edit. */"

// Result describes a finished generation.
type Result struct {
	Output backend.Output
	Stats  convert.Stats
	Bytes  int
}

// Generate validates opts, renders r and writes the artifact to w. Nothing
// is written unless validation and the whole pass succeed.
func Generate(ctx context.Context, opts Options, r io.Reader, w io.Writer, copts convert.Options) (Result, error) {
	res := Result{Output: opts.Output}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "generate", trace.CurrentSpan(ctx))
	defer span.End(opts.Output.String())
	ctx = trace.WithSpan(ctx, span)

	text, stats, err := Render(ctx, opts, r, copts)
	res.Stats = stats
	if err != nil {
		return res, err
	}
	n, err := io.WriteString(w, text)
	res.Bytes = n
	if err != nil {
		return res, fmt.Errorf("write %s: %w", opts.Output, err)
	}
	return res, nil
}

// Render validates opts and returns the complete artifact text.
func Render(ctx context.Context, opts Options, r io.Reader, copts convert.Options) (string, convert.Stats, error) {
	if err := opts.Validate(); err != nil {
		return "", convert.Stats{}, err
	}
	b, err := opts.newBackend()
	if err != nil {
		return "", convert.Stats{}, err
	}
	pass, stats, err := convert.Convert(ctx, r, b, opts.Output, copts)
	if err != nil {
		return "", stats, err
	}

	var sb strings.Builder
	switch opts.Output {
	case backend.OutputHeader:
		sb.WriteString("#ifndef TRACE_H\n#define TRACE_H\n\n")
		sb.WriteString(banner + "\n\n")
		fmt.Fprintf(&sb, "#include \"%s\"\n", opts.commonInclude())
		sb.WriteString(pass.String())
		sb.WriteString("#endif /* TRACE_H */\n")
	default:
		sb.WriteString(banner + "\n")
		sb.WriteString(pass.String())
	}
	return sb.String(), stats, nil
}
