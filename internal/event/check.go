package event

import "strings"

// Problem describes a malformed part of a declaration. Problems are
// informational: renderers still produce output for the event.
type Problem uint8

const (
	// ProblemNoOpenParen means the line has no '(' at all.
	ProblemNoOpenParen Problem = iota + 1
	// ProblemNoCloseParen means the argument list is never closed.
	ProblemNoCloseParen
	// ProblemNoFormat means the line carries no quoted format string.
	ProblemNoFormat
	// ProblemNoName means nothing precedes the argument list.
	ProblemNoName
)

func (p Problem) String() string {
	switch p {
	case ProblemNoOpenParen:
		return "missing '(' after event name"
	case ProblemNoCloseParen:
		return "unterminated argument list"
	case ProblemNoFormat:
		return "missing quoted format string"
	case ProblemNoName:
		return "missing event name"
	default:
		return "unknown problem"
	}
}

// Check lists the problems of a parsed declaration.
func Check(ev *Event) []Problem {
	var out []Problem
	open := strings.IndexByte(ev.Raw, '(')
	switch {
	case open < 0:
		out = append(out, ProblemNoOpenParen)
	case strings.IndexByte(ev.Raw[open:], ')') < 0:
		out = append(out, ProblemNoCloseParen)
	}
	if ev.Name == "" || (open >= 0 && strings.TrimSpace(ev.Raw[:open]) == "") {
		out = append(out, ProblemNoName)
	}
	if strings.Count(ev.Raw, `"`) < 2 {
		out = append(out, ProblemNoFormat)
	}
	return out
}
