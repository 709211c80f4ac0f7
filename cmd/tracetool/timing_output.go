package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tracetool/internal/observ"
)

// printTimings writes the phase summary to stderr when --timings is set.
func printTimings(cmd *cobra.Command, timer *observ.Timer) {
	show, err := cmd.Flags().GetBool("timings")
	if err != nil || !show || timer == nil {
		return
	}
	fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
}
