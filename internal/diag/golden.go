package diag

import (
	"fmt"
	"strings"
)

// FormatShort renders diagnostics one per line as
// "<severity> <code> <pos> <message>", notes following their diagnostic.
// Messages are folded to a single line; the result has no trailing newline.
func FormatShort(diags []Diagnostic, includeNotes bool) string {
	var lines []string
	for _, d := range diags {
		lines = append(lines, fmt.Sprintf("%s %s %s %s",
			strings.ToLower(d.Severity.String()), d.Code.ID(), d.Primary, foldMessage(d.Message)))
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			lines = append(lines, fmt.Sprintf("note %s %s %s", d.Code.ID(), n.Pos, foldMessage(n.Msg)))
		}
	}
	return strings.Join(lines, "\n")
}

func foldMessage(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
