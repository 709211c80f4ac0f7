package event

import (
	"slices"
	"strings"
)

// PropDisable routes an event to the nop renderer whatever backend is active.
const PropDisable = "disable"

// Event is one parsed trace event declaration.
type Event struct {
	Raw      string   // trimmed source line
	Line     int      // 1-based line number in the input, 0 if unknown
	Props    []string // tokens preceding Name
	Name     string
	Args     string   // raw argument list between the parentheses
	ArgNames []string // names extracted from Args
	Fmt      string   // format string without the surrounding quotes
}

// Skip reports whether a line carries no declaration: the text before its
// first '#' is blank.
func Skip(line string) bool {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line) == ""
}

// Parse extracts the declaration fields from one line. Malformed lines are
// never rejected; missing parts come back empty.
func Parse(line string) Event {
	line = strings.TrimSpace(line)
	ev := Event{Raw: line}

	head := line
	if i := strings.IndexByte(line, '('); i >= 0 {
		head = line[:i]
	}
	fields := strings.Fields(head)
	if len(fields) > 0 {
		ev.Name = fields[len(fields)-1]
		ev.Props = fields[:len(fields)-1]
	}

	ev.Args = parseArgs(line)
	ev.ArgNames = parseArgNames(ev.Args)
	ev.Fmt = parseFmt(line)
	return ev
}

// Argc returns the number of argument names.
func (e *Event) Argc() int {
	return len(e.ArgNames)
}

// HasProp reports whether prop is among the event properties.
func (e *Event) HasProp(prop string) bool {
	return slices.Contains(e.Props, prop)
}

// Disabled reports whether the event carries the disable property.
func (e *Event) Disabled() bool {
	return e.HasProp(PropDisable)
}

// JoinNames joins the argument names with sep.
func (e *Event) JoinNames(sep string) string {
	return strings.Join(e.ArgNames, sep)
}

func parseArgs(line string) string {
	open := strings.IndexByte(line, '(')
	if open < 0 {
		return ""
	}
	rest := line[open+1:]
	end := strings.IndexByte(rest, ')')
	if end < 0 {
		return ""
	}
	return rest[:end]
}

// parseArgNames walks the whitespace separated fields of an argument list.
// Only fields ending in a comma are names; the last field is added as a name
// when the list had more than one field, so "void" yields nothing while
// "int a" yields "a".
func parseArgNames(args string) []string {
	fields := strings.Fields(args)
	var (
		names []string
		name  string
	)
	for _, field := range fields {
		field = strings.TrimPrefix(field, "*")
		name = strings.TrimSuffix(field, ",")
		if name == field {
			continue
		}
		names = append(names, name)
	}
	if len(fields) > 1 {
		names = append(names, name)
	}
	return names
}

func parseFmt(line string) string {
	first := strings.IndexByte(line, '"')
	last := strings.LastIndexByte(line, '"')
	if first < 0 || last <= first {
		return ""
	}
	return line[first+1 : last]
}
