package diag

import "fmt"

// Pos locates a diagnostic in an events file. Line 0 means the diagnostic
// is not tied to an input line.
type Pos struct {
	Path string
	Line uint32
}

func (p Pos) String() string {
	path := p.Path
	if path == "" {
		path = "<stdin>"
	}
	if p.Line == 0 {
		return path
	}
	return fmt.Sprintf("%s:%d", path, p.Line)
}

type Note struct {
	Pos Pos
	Msg string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  Pos
	Notes    []Note
}

func New(sev Severity, code Code, primary Pos, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func (d Diagnostic) WithNote(pos Pos, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Pos: pos, Msg: msg})
	return d
}
