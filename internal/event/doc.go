// Package event parses trace event declarations.
//
// A declaration is one line of the events file:
//
//	[prop ...] name(type name, ...) "format string"
//
// Lines that are blank or whose first non-blank character is '#' carry no
// declaration. Parsing is permissive: a malformed line yields empty fields
// instead of an error, and Check reports what is missing so the caller can
// warn about it.
//
// Argument names are extracted from the whitespace separated fields of the
// argument list. A field ending in ',' is a name; the final field is a name
// only when the list has more than one field. Nested parentheses in argument
// lists are not supported.
package event
