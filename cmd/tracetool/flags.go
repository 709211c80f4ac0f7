package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tracetool/internal/backend"
	"tracetool/internal/driver"
)

// errConflictingFlags is returned when more than one backend or output
// flag is set.
var errConflictingFlags = errors.New("conflicting flags")

// addSelectionFlags registers the backend and tapset flags shared by the
// root command and "all".
func addSelectionFlags(cmd *cobra.Command) {
	for _, k := range backend.Kinds() {
		cmd.Flags().Bool(k.String(), false, fmt.Sprintf("use the %s backend", k))
	}
	cmd.Flags().String("backend", "", "backend name (alternative to the per-backend flags)")
	cmd.Flags().String("binary", "", "full path to the traced binary (tapset output)")
	cmd.Flags().String("target-type", "", "QEMU emulator target type (system or user)")
	cmd.Flags().String("target-arch", "", "QEMU emulator target architecture")
	cmd.Flags().String("probe-prefix", "", "tapset probe prefix (default: <provider>.<target-type>.<target-arch>)")
	cmd.Flags().String("provider", "", "DTrace provider name (default: qemu)")
	cmd.Flags().String("common-include", "", "first include of the generated header (default: qemu-common.h)")
}

// addGenerateFlags registers the root-only output selection flags. -h
// selects the header, so help is reachable through --help only.
func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("help", false, "help for tracetool")
	cmd.Flags().BoolP("header", "h", false, "generate the header")
	cmd.Flags().BoolP("source", "c", false, "generate the source")
	cmd.Flags().BoolP("descriptor", "d", false, "generate the DTrace provider description")
	cmd.Flags().Bool("stap", false, "generate the SystemTAP tapset")
	cmd.Flags().StringP("output", "o", "", "write to a file instead of stdout")
	cmd.Flags().Bool("check-backend", false, "check the backend selection and exit without output")
	cmd.Flags().Bool("list-backends", false, "list the available backends and exit")
}

// readBackend returns the backend chosen on the command line, falling back
// to the configuration file and then to nop.
func readBackend(cmd *cobra.Command, cfg fileConfig) (backend.Kind, error) {
	var chosen []backend.Kind
	for _, k := range backend.Kinds() {
		set, err := cmd.Flags().GetBool(k.String())
		if err != nil {
			return 0, fmt.Errorf("failed to get %s flag: %w", k, err)
		}
		if set {
			chosen = append(chosen, k)
		}
	}
	name, err := cmd.Flags().GetString("backend")
	if err != nil {
		return 0, fmt.Errorf("failed to get backend flag: %w", err)
	}
	if name != "" {
		k, err := backend.ParseKind(name)
		if err != nil {
			return 0, err
		}
		chosen = append(chosen, k)
	}

	switch len(chosen) {
	case 0:
		if cfg.Generate.Backend != "" {
			return backend.ParseKind(cfg.Generate.Backend)
		}
		return backend.KindNop, nil
	case 1:
		return chosen[0], nil
	default:
		names := make([]string, len(chosen))
		for i, k := range chosen {
			names[i] = "--" + k.String()
		}
		return 0, fmt.Errorf("%w: only one backend may be selected (got %s)", errConflictingFlags, strings.Join(names, ", "))
	}
}

// readOutput returns the single output kind selected by -h, -c, -d or
// --stap, falling back to the configuration file.
func readOutput(cmd *cobra.Command, cfg fileConfig) (backend.Output, error) {
	flags := []struct {
		name string
		out  backend.Output
	}{
		{"header", backend.OutputHeader},
		{"source", backend.OutputSource},
		{"descriptor", backend.OutputDescriptor},
		{"stap", backend.OutputTapset},
	}
	var chosen []backend.Output
	for _, f := range flags {
		set, err := cmd.Flags().GetBool(f.name)
		if err != nil {
			return 0, fmt.Errorf("failed to get %s flag: %w", f.name, err)
		}
		if set {
			chosen = append(chosen, f.out)
		}
	}
	switch len(chosen) {
	case 0:
		if cfg.Generate.Output != "" {
			return backend.ParseOutput(cfg.Generate.Output)
		}
		return 0, fmt.Errorf("%w: one of -h, -c, -d or --stap is required", backend.ErrUnknownOutput)
	case 1:
		return chosen[0], nil
	default:
		return 0, fmt.Errorf("%w: only one of -h, -c, -d or --stap may be given", errConflictingFlags)
	}
}

// readOptions merges the configuration file with the command line flags.
func readOptions(cmd *cobra.Command, cfg fileConfig) (driver.Options, error) {
	kind, err := readBackend(cmd, cfg)
	if err != nil {
		return driver.Options{}, err
	}
	opts := driver.Options{
		Backend:       kind,
		Binary:        cfg.Stap.Binary,
		TargetType:    cfg.Stap.TargetType,
		TargetArch:    cfg.Stap.TargetArch,
		ProbePrefix:   cfg.Stap.ProbePrefix,
		Provider:      cfg.Output.Provider,
		CommonInclude: cfg.Output.CommonInclude,
	}
	overrides := []struct {
		flag string
		dst  *string
	}{
		{"binary", &opts.Binary},
		{"target-type", &opts.TargetType},
		{"target-arch", &opts.TargetArch},
		{"probe-prefix", &opts.ProbePrefix},
		{"provider", &opts.Provider},
		{"common-include", &opts.CommonInclude},
	}
	for _, o := range overrides {
		if !cmd.Flags().Changed(o.flag) {
			continue
		}
		v, err := cmd.Flags().GetString(o.flag)
		if err != nil {
			return driver.Options{}, fmt.Errorf("failed to get %s flag: %w", o.flag, err)
		}
		*o.dst = v
	}
	return opts, nil
}
