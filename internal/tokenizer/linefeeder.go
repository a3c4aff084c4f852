package tokenizer

import "strings"

// LineSource is the upstream collaborator this package consumes: a lazy,
// finite sequence of physical lines with their line terminators already
// stripped. It is the only interface the tokenizer requires of whatever sits
// above it (a bufio.Scanner over a file, a slice of strings in a test, a
// network stream decoder, ...); this package never reads a byte on its own.
type LineSource interface {
	// NextLine returns the next physical line and true, or "" and false once
	// the source is exhausted. NextLine may be called again after it has
	// returned false, and must then keep returning "" and false.
	NextLine() (string, bool)
}

// lineFeeder pulls physical lines from a LineSource, replaying lines pushed
// back by skipCurrentLine before reaching further upstream, and optionally
// skipping blank and comment lines.
//
// unreadLines is documented in §3 of the originating specification as a
// "LIFO stack", but the worked pushback example there (and the original
// Java implementation's use of ArrayDeque.addAll + removeFirst) requires
// lines to be replayed in the same order they were pushed back — a FIFO
// queue. This implementation follows that behavior; see DESIGN.md.
type lineFeeder struct {
	source            LineSource
	commentLineMarker string
	unreadLines       []string
	lineNumber        int64
}

func newLineFeeder(source LineSource, commentLineMarker string) *lineFeeder {
	return &lineFeeder{source: source, commentLineMarker: commentLineMarker}
}

// pushBack restores lines for later re-delivery, in the order they should be
// handed back out by nextLine.
func (f *lineFeeder) pushBack(lines []string) {
	f.unreadLines = append(f.unreadLines, lines...)
}

func (f *lineFeeder) popUnread() (string, bool) {
	if len(f.unreadLines) == 0 {
		return "", false
	}
	line := f.unreadLines[0]
	f.unreadLines = f.unreadLines[1:]
	return line, true
}

// nextLine advances cursor to the next physical line, pulling from the
// pushback queue first and then the upstream LineSource, skipping blank and
// comment lines when skipBlankAndComment is set. It reports false, leaving
// cursor untouched, once no line is available.
func (f *lineFeeder) nextLine(cursor *charCursor, skipBlankAndComment bool) bool {
	for {
		line, ok := f.popUnread()
		if !ok {
			line, ok = f.source.NextLine()
		}
		if !ok {
			return false
		}
		f.lineNumber++

		if skipBlankAndComment && f.isSkippable(line) {
			continue
		}
		cursor.setLine(line)
		return true
	}
}

// skipHeaderLine unconditionally discards one line directly from the
// upstream LineSource, bypassing the pushback queue and the comment/blank
// skip policy — the caller is asserting "the very next physical line is a
// header, don't interpret it", matching the original implementation's
// direct use of its line iterator here.
func (f *lineFeeder) skipHeaderLine() bool {
	if _, ok := f.source.NextLine(); !ok {
		return false
	}
	f.lineNumber++
	return true
}

func (f *lineFeeder) isSkippable(line string) bool {
	if line == "" {
		return true
	}
	return f.commentLineMarker != "" && strings.HasPrefix(line, f.commentLineMarker)
}
