package driver

import (
	"errors"
	"fmt"
	"strings"

	"tracetool/internal/backend"
)

var (
	// ErrMissingBinary means tapset output was requested without --binary.
	ErrMissingBinary = errors.New("--binary is required for SystemTAP tapset generator")
	// ErrMissingTargetType means no probe prefix could be derived.
	ErrMissingTargetType = errors.New("--target-type is required for SystemTAP tapset generator")
	// ErrMissingTargetArch means no probe prefix could be derived.
	ErrMissingTargetArch = errors.New("--target-arch is required for SystemTAP tapset generator")
)

// DefaultCommonInclude is the header every generated trace.h includes first.
const DefaultCommonInclude = "qemu-common.h"

// Options fixes the backend and output of a run. It is immutable once
// generation starts.
type Options struct {
	Backend       backend.Kind
	Output        backend.Output
	Binary        string // traced executable, tapset only
	TargetType    string // e.g. "system" or "user", tapset only
	TargetArch    string // e.g. "x86_64", tapset only
	ProbePrefix   string // explicit tapset probe prefix
	Provider      string // DTrace provider name
	CommonInclude string // first include of the generated header
}

// Prefix returns the tapset probe prefix: the explicit one, or
// "<provider>.<target-type>.<target-arch>".
func (o Options) Prefix() string {
	if o.ProbePrefix != "" {
		return o.ProbePrefix
	}
	if o.TargetType == "" || o.TargetArch == "" {
		return ""
	}
	return strings.Join([]string{o.provider(), o.TargetType, o.TargetArch}, ".")
}

func (o Options) provider() string {
	if o.Provider == "" {
		return backend.DefaultProvider
	}
	return o.Provider
}

func (o Options) commonInclude() string {
	if o.CommonInclude == "" {
		return DefaultCommonInclude
	}
	return o.CommonInclude
}

// Validate checks the backend/output combination and the tapset
// prerequisites. It must pass before any event is read.
func (o Options) Validate() error {
	if o.Backend.String() == "unknown" {
		return fmt.Errorf("%w: %d", backend.ErrUnknownBackend, o.Backend)
	}
	switch o.Output {
	case backend.OutputHeader, backend.OutputSource:
		return nil
	case backend.OutputDescriptor:
		if o.Backend != backend.KindDTrace {
			return fmt.Errorf("%w: DTrace probe generator not applicable to %s backend", backend.ErrNotApplicable, o.Backend)
		}
		return nil
	case backend.OutputTapset:
		if o.Backend != backend.KindDTrace {
			return fmt.Errorf("%w: SystemTAP tapset generator not applicable to %s backend", backend.ErrNotApplicable, o.Backend)
		}
		if o.Binary == "" {
			return ErrMissingBinary
		}
		if o.ProbePrefix == "" && o.TargetType == "" {
			return ErrMissingTargetType
		}
		if o.ProbePrefix == "" && o.TargetArch == "" {
			return ErrMissingTargetArch
		}
		return nil
	default:
		return fmt.Errorf("%w: %d", backend.ErrUnknownOutput, o.Output)
	}
}

// newBackend builds a backend instance for one pass.
func (o Options) newBackend() (backend.Backend, error) {
	return backend.New(o.Backend, backend.Config{
		Provider:    o.provider(),
		Binary:      o.Binary,
		ProbePrefix: o.Prefix(),
	})
}
