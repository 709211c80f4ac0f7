package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"tracetool/internal/backend"
)

func newBackendsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backends",
		Short: "List the available tracing backends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, err := cmd.Flags().GetBool("verbose")
			if err != nil {
				return fmt.Errorf("failed to get verbose flag: %w", err)
			}
			return printBackends(cmd.OutOrStdout(), verbose)
		},
	}
	cmd.Flags().BoolP("verbose", "v", false, "describe each backend and the outputs it supports")
	return cmd
}

// printBackends writes one backend name per line. In verbose mode the
// names are padded to a common display width and followed by the backend
// description and its supported outputs.
func printBackends(w io.Writer, verbose bool) error {
	kinds := backend.Kinds()
	if !verbose {
		for _, k := range kinds {
			if _, err := fmt.Fprintln(w, k); err != nil {
				return err
			}
		}
		return nil
	}

	width := 0
	for _, k := range kinds {
		width = max(width, runewidth.StringWidth(k.String()))
	}
	for _, k := range kinds {
		b, err := backend.New(k, backend.Config{})
		if err != nil {
			return err
		}
		var outs []string
		for _, out := range backend.Outputs() {
			if backend.Supports(b, out) {
				outs = append(outs, out.String())
			}
		}
		name := runewidth.FillRight(k.String(), width)
		if _, err := fmt.Fprintf(w, "%s  %s [%s]\n", name, k.Describe(), strings.Join(outs, ", ")); err != nil {
			return err
		}
	}
	return nil
}
