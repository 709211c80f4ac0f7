// Package diag defines the diagnostic model of the generator.
//
// Two kinds of findings exist. Declaration problems (DECL codes) are
// warnings: the generator is permissive and still renders the event, but
// the CLI tells the user what looked wrong. Configuration problems (CFG
// codes) are errors: they are detected before any event is processed and
// abort the run without output.
//
// Producers emit through a Reporter; BagReporter collects into a Bag which
// supports sorting, deduplication and a size limit. Pretty renders a Bag for
// the terminal, FormatShort renders a stable one-line-per-entry form used in
// tests.
package diag
