package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Declaration problems (warnings, never fatal)
	DeclInfo           Code = 1000
	DeclNoOpenParen    Code = 1001
	DeclNoCloseParen   Code = 1002
	DeclNoFormat       Code = 1003
	DeclNoName         Code = 1004
	DeclDuplicateEvent Code = 1005

	// Configuration errors (fatal, reported before any output)
	CfgInfo              Code = 2000
	CfgUnknownBackend    Code = 2001
	CfgUnknownOutput     Code = 2002
	CfgNotApplicable     Code = 2003
	CfgMissingBinary     Code = 2004
	CfgMissingTargetType Code = 2005
	CfgMissingTargetArch Code = 2006
	CfgBadConfigFile     Code = 2007
	CfgConflictingFlags  Code = 2008
	CfgStrictWarnings    Code = 2009

	// IO
	IOReadFailed  Code = 3001
	IOWriteFailed Code = 3002
)

var codeDescription = map[Code]string{
	UnknownCode:          "Unknown error",
	DeclInfo:             "Declaration information",
	DeclNoOpenParen:      "Missing argument list",
	DeclNoCloseParen:     "Unterminated argument list",
	DeclNoFormat:         "Missing format string",
	DeclNoName:           "Missing event name",
	DeclDuplicateEvent:   "Duplicate event name",
	CfgInfo:              "Configuration information",
	CfgUnknownBackend:    "Unknown backend",
	CfgUnknownOutput:     "Unknown output kind",
	CfgNotApplicable:     "Output not applicable to backend",
	CfgMissingBinary:     "Missing binary path",
	CfgMissingTargetType: "Missing target type",
	CfgMissingTargetArch: "Missing target architecture",
	CfgBadConfigFile:     "Invalid configuration file",
	CfgConflictingFlags:  "Conflicting flags",
	CfgStrictWarnings:    "Warnings treated as errors",
	IOReadFailed:         "Read failed",
	IOWriteFailed:        "Write failed",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("DECL%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
