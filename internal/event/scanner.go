package event

import (
	"bufio"
	"io"
)

// Scanner reads declarations line by line, skipping blank and comment lines.
type Scanner struct {
	// OnSkip, when set, is called with every blank or comment line.
	OnSkip func(line int, text string)

	sc   *bufio.Scanner
	line int
	ev   Event
	err  error
}

// NewScanner creates a Scanner over r.
func NewScanner(r io.Reader) *Scanner {
	sc := bufio.NewScanner(r)
	// event files may carry long format strings
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Scanner{sc: sc}
}

// Scan advances to the next declaration. It returns false at end of input or
// on a read error.
func (s *Scanner) Scan() bool {
	for s.sc.Scan() {
		s.line++
		text := s.sc.Text()
		if Skip(text) {
			if s.OnSkip != nil {
				s.OnSkip(s.line, text)
			}
			continue
		}
		s.ev = Parse(text)
		s.ev.Line = s.line
		return true
	}
	s.err = s.sc.Err()
	return false
}

// Event returns the declaration read by the last call to Scan.
func (s *Scanner) Event() Event {
	return s.ev
}

// Err returns the first non-EOF read error.
func (s *Scanner) Err() error {
	return s.err
}
