// Package main implements the tracetool CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tracetool/internal/version"
)

const rootLong = `tracetool reads trace event declarations, one per line:

  [prop ...] name(type name, ...) "format string"

and writes the code of the selected backend for the selected output kind.
Events are read from the given file, or from stdin when it is absent or "-".

Backends: --nop, --simple, --stderr, --ust, --dtrace
Outputs:  -h (header), -c (source), -d (DTrace descriptor), --stap (tapset)`

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tracetool [backend] [output] [flags] [events-file]",
		Short:         "Generate trace backend code from trace event declarations",
		Long:          rootLong,
		Version:       version.Version,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runGenerate,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(newAllCmd())
	root.AddCommand(newBackendsCmd())
	root.AddCommand(versionCmd)

	addGlobalFlags(root)
	addSelectionFlags(root)
	addGenerateFlags(root)
	return root
}

func addGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("color", "auto", "colorize diagnostics (auto|on|off)")
	cmd.PersistentFlags().Bool("quiet", false, "suppress declaration warnings")
	cmd.PersistentFlags().Bool("strict", false, "fail without output when any declaration has a warning")
	cmd.PersistentFlags().Bool("timings", false, "print phase timings to stderr")
	cmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	cmd.PersistentFlags().String("config", "", "configuration file (default: nearest tracetool.toml)")
	cmd.PersistentFlags().String("trace", "", "write the generator's own trace to a file (- for stderr)")
	cmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	cmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	cmd.PersistentFlags().String("trace-format", "text", "trace record format (text|ndjson)")
}

// main runs the root command and exits with status 1 after printing a
// diagnostic when it fails.
func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		reportError(root, err)
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
