package csv

import (
	"bufio"
	"io"
)

// lineSource adapts a bufio.Scanner to tokenizer.LineSource: a lazy,
// finite sequence of physical lines with their line terminators already
// stripped. bufio.ScanLines (the scanner's default split function) handles
// \n and \r\n uniformly, which is exactly the stripping behavior the
// tokenizer expects from its upstream collaborator.
type lineSource struct {
	scanner *bufio.Scanner
	err     error
}

// NewLineSource wraps r as a tokenizer.LineSource. The caller retains
// ownership of r; NewLineSource never closes it.
func NewLineSource(r io.Reader) *lineSource {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &lineSource{scanner: scanner}
}

// NextLine implements tokenizer.LineSource.
func (s *lineSource) NextLine() (string, bool) {
	if !s.scanner.Scan() {
		s.err = s.scanner.Err()
		return "", false
	}
	return s.scanner.Text(), true
}

// Err reports the first non-EOF error bufio.Scanner encountered, if any.
// Call it after NextLine has returned false.
func (s *lineSource) Err() error {
	return s.err
}
