package main

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"tracetool/internal/convert"
	"tracetool/internal/diag"
	"tracetool/internal/driver"
	"tracetool/internal/observ"
)

func newAllCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "all [flags] [events-file]",
		Short: "Generate every output of a backend into a directory",
		Long: `all renders trace.h and trace.c for the selected backend and, for dtrace,
the provider description and the tapset (when --binary and a probe prefix or
target are known). Outputs are rendered concurrently; files are written only
when every output succeeded.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAll,
	}
	addSelectionFlags(cmd)
	cmd.Flags().String("out-dir", ".", "directory to write the generated files to")
	return cmd
}

func runAll(cmd *cobra.Command, args []string) (err error) {
	cfg, err := readConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := readOptions(cmd, cfg)
	if err != nil {
		return err
	}
	dir, err := cmd.Flags().GetString("out-dir")
	if err != nil {
		return fmt.Errorf("failed to get out-dir flag: %w", err)
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	defer func() {
		if err != nil {
			dumpTrace(cmd)
		}
	}()

	timer := observ.NewTimer()
	path, input, err := readInput(cmd, args, timer)
	if err != nil {
		return err
	}
	bag, err := newDiagnosticsBag(cmd)
	if err != nil {
		return err
	}

	// Per-output phases arrive from the rendering goroutines.
	var mu sync.Mutex
	observe := func(ev driver.PhaseEvent) {
		if ev.Status != driver.PhaseEnd {
			return
		}
		note := ""
		if ev.Err != nil {
			note = "failed"
		}
		mu.Lock()
		timer.Sub(ev.Name, ev.Elapsed, note)
		mu.Unlock()
	}

	var artifacts []driver.Artifact
	if err := timer.Track("generate", func() error {
		var err error
		artifacts, err = driver.GenerateAll(cmd.Context(), opts, input, dir, driver.AllOptions{
			Convert: convert.Options{
				Path:     sourceName(path),
				Reporter: diag.BagReporter{Bag: bag},
			},
			Observe: observe,
			Commit: func() error {
				printDiagnostics(cmd, bag)
				return checkStrict(cmd, bag)
			},
		})
		return err
	}); err != nil {
		return err
	}
	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
		for _, a := range artifacts {
			state := "written"
			if !a.Written {
				state = "unchanged"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-11s %-9s %s\n", a.Output, state, a.Path)
		}
	}
	printTimings(cmd, timer)
	return nil
}
