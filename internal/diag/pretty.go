package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// PrettyOpts controls Pretty output.
type PrettyOpts struct {
	Color bool
}

// Pretty writes every diagnostic of bag as
//
//	<pos>: <SEV> <CODE>: <message>
//
// followed by its notes.
func Pretty(w io.Writer, bag *Bag, opts PrettyOpts) {
	if bag == nil {
		return
	}
	for _, d := range bag.Items() {
		sev := severityColor(d.Severity)
		pos := color.New(color.Bold)
		if opts.Color {
			sev.EnableColor()
			pos.EnableColor()
		} else {
			sev.DisableColor()
			pos.DisableColor()
		}
		fmt.Fprintf(w, "%s: %s %s: %s\n", pos.Sprint(d.Primary), sev.Sprint(d.Severity), d.Code.ID(), d.Message)
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s: note: %s\n", n.Pos, n.Msg)
		}
	}
}

func severityColor(s Severity) *color.Color {
	switch s {
	case SevError:
		return color.New(color.FgRed, color.Bold)
	case SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}
