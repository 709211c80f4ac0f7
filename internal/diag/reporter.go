package diag

import "fortio.org/safecast"

// Reporter receives diagnostics from the generator phases.
type Reporter interface {
	Report(d Diagnostic)
}

// At returns the position of a 1-based input line. Out of range lines
// yield a position without line.
func At(path string, line int) Pos {
	pos := Pos{Path: path}
	if n, err := safecast.Conv[uint32](line); err == nil {
		pos.Line = n
	}
	return pos
}

// ReportAt reports a diagnostic for a 1-based input line.
func ReportAt(r Reporter, sev Severity, code Code, path string, line int, msg string) {
	if r == nil {
		return
	}
	r.Report(New(sev, code, At(path, line), msg))
}

// BagReporter stores reported diagnostics in a Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}
