package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tracetool/internal/backend"
	"tracetool/internal/diag"
	"tracetool/internal/driver"
)

var (
	errRead   = errors.New("failed to read events")
	errWrite  = errors.New("failed to write output")
	errStrict = errors.New("declaration warnings treated as errors")
)

// useColor resolves the --color flag for stderr.
func useColor(cmd *cobra.Command) bool {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		mode = "auto"
	}
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stderr)
	}
}

func newDiagnosticsBag(cmd *cobra.Command) (*diag.Bag, error) {
	maxDiagnostics, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return diag.NewBag(maxDiagnostics), nil
}

// printDiagnostics writes declaration warnings to stderr unless --quiet.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		return
	}
	bag.Sort()
	bag.Dedup()
	diag.Pretty(cmd.ErrOrStderr(), bag, diag.PrettyOpts{Color: useColor(cmd)})
}

// checkStrict fails the run when --strict is set and bag holds warnings.
func checkStrict(cmd *cobra.Command, bag *diag.Bag) error {
	strict, err := cmd.Flags().GetBool("strict")
	if err != nil {
		return fmt.Errorf("failed to get strict flag: %w", err)
	}
	if strict && bag.HasWarnings() {
		return fmt.Errorf("%w: %d warning(s)", errStrict, bag.Len())
	}
	return nil
}

// reportError prints a failed run as an error diagnostic.
func reportError(cmd *cobra.Command, err error) {
	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevError, codeFor(err), diag.Pos{Path: cmd.Root().Name()}, err.Error()))
	diag.Pretty(cmd.ErrOrStderr(), bag, diag.PrettyOpts{Color: useColor(cmd)})
}

// codeFor classifies err for reporting.
func codeFor(err error) diag.Code {
	switch {
	case errors.Is(err, backend.ErrUnknownBackend):
		return diag.CfgUnknownBackend
	case errors.Is(err, backend.ErrUnknownOutput):
		return diag.CfgUnknownOutput
	case errors.Is(err, backend.ErrNotApplicable):
		return diag.CfgNotApplicable
	case errors.Is(err, driver.ErrMissingBinary):
		return diag.CfgMissingBinary
	case errors.Is(err, driver.ErrMissingTargetType):
		return diag.CfgMissingTargetType
	case errors.Is(err, driver.ErrMissingTargetArch):
		return diag.CfgMissingTargetArch
	case errors.Is(err, errBadConfig):
		return diag.CfgBadConfigFile
	case errors.Is(err, errConflictingFlags):
		return diag.CfgConflictingFlags
	case errors.Is(err, errStrict):
		return diag.CfgStrictWarnings
	case errors.Is(err, errRead):
		return diag.IOReadFailed
	case errors.Is(err, errWrite):
		return diag.IOWriteFailed
	default:
		return diag.UnknownCode
	}
}
