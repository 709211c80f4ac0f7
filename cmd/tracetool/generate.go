package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"tracetool/internal/convert"
	"tracetool/internal/diag"
	"tracetool/internal/driver"
	"tracetool/internal/observ"
)

func runGenerate(cmd *cobra.Command, args []string) (err error) {
	listBackends, err := cmd.Flags().GetBool("list-backends")
	if err != nil {
		return fmt.Errorf("failed to get list-backends flag: %w", err)
	}
	if listBackends {
		return printBackends(cmd.OutOrStdout(), false)
	}

	cfg, err := readConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := readOptions(cmd, cfg)
	if err != nil {
		return err
	}

	checkOnly, err := cmd.Flags().GetBool("check-backend")
	if err != nil {
		return fmt.Errorf("failed to get check-backend flag: %w", err)
	}
	if checkOnly {
		return nil
	}

	opts.Output, err = readOutput(cmd, cfg)
	if err != nil {
		return err
	}
	// Fail before touching the input: a bad selection produces no output.
	if err := opts.Validate(); err != nil {
		return err
	}

	outPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
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

	var out bytes.Buffer
	idx := timer.Begin(opts.Output.String())
	res, err := driver.Generate(cmd.Context(), opts, bytes.NewReader(input), &out, convert.Options{
		Path:     sourceName(path),
		Reporter: diag.BagReporter{Bag: bag},
	})
	timer.End(idx, fmt.Sprintf("%d events, %d disabled", res.Stats.Events, res.Stats.Disabled))
	if err != nil {
		return err
	}

	printDiagnostics(cmd, bag)
	if err := checkStrict(cmd, bag); err != nil {
		return err
	}

	if err := timer.Track("write", func() error {
		return writeOutput(cmd.OutOrStdout(), outPath, out.Bytes())
	}); err != nil {
		return err
	}
	printTimings(cmd, timer)
	return nil
}

// readInput reads the whole events file, or stdin for no argument or "-".
func readInput(cmd *cobra.Command, args []string, timer *observ.Timer) (string, []byte, error) {
	path := "-"
	if len(args) > 0 {
		path = args[0]
	}
	var data []byte
	err := timer.Track("read", func() error {
		var err error
		if path == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(path)
		}
		return err
	})
	if err != nil {
		return path, nil, fmt.Errorf("%w: %w", errRead, err)
	}
	return path, data, nil
}

// sourceName maps the stdin marker to the empty path diagnostics print as
// <stdin>.
func sourceName(path string) string {
	if path == "-" {
		return ""
	}
	return path
}

// writeOutput writes data to path, or to stdout when path is empty or "-".
func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("%w: %w", errWrite, err)
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", errWrite, err)
	}
	return nil
}
