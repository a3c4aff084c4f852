// Package tokenizer implements a streaming, character-by-character CSV
// tokenizer: it consumes a LineSource of physical lines and yields records,
// each an ordered sequence of field strings, one column at a time.
//
// It implements a pragmatic dialect of RFC 4180: a configurable (optionally
// multi-character) delimiter, optional quoting and escaping, optional
// whitespace trimming of unquoted fields, an optional null-marker string, an
// optional line-comment marker, a configurable newline used to reassemble a
// quoted field that spans physical lines, a bound on quoted field length,
// and two policies for handling stray quote characters inside quoted
// fields. It does not interpret field values semantically, does not
// validate record width, and does not own or close the LineSource.
package tokenizer

import "bytes"

// QuotesInQuotedFields selects how a quote character encountered inside an
// already-open quoted field is interpreted.
type QuotesInQuotedFields int

const (
	// QuotesRFC4180Only treats two adjacent quotes as the only way to embed
	// a literal quote in a quoted field; any other quote closes the field.
	QuotesRFC4180Only QuotesInQuotedFields = iota
	// QuotesAcceptStrayAssumingNoDelimitersInFields additionally accepts a
	// lone quote as a literal character, under the assumption that no
	// delimiter ever occurs inside a field — a quote immediately preceding
	// a delimiter or end-of-line is still treated as closing the field.
	QuotesAcceptStrayAssumingNoDelimitersInFields
)

func (q QuotesInQuotedFields) String() string {
	switch q {
	case QuotesRFC4180Only:
		return "rfc4180_only"
	case QuotesAcceptStrayAssumingNoDelimitersInFields:
		return "accept_stray_assuming_no_delimiters_in_fields"
	default:
		return "unknown"
	}
}

// disabledRune is the sentinel stored in config.quote or config.escape when
// quoting or escaping is turned off. It reuses the same zero value as
// endOfLine, since a disabled quote/escape character can never legitimately
// match any rune a charCursor produces.
const disabledRune rune = 0

// recordState tracks whether the current record has more columns to yield.
type recordState int

const (
	recordStateEnd recordState = iota
	recordStateNotEnd
)

func (s recordState) String() string {
	if s == recordStateNotEnd {
		return "NOT_END"
	}
	return "END"
}

// config is the frozen, validated configuration a Tokenizer is built from.
// Builder is the only way to produce one.
type config struct {
	delimiterChar      rune
	delimiterFollowing string
	quote              rune
	escape             rune
	newline            string
	trimIfNotQuoted    bool
	quotesInQuoted     QuotesInQuotedFields
	maxQuotedFieldLen  int64
	commentLineMarker  string
	nullString         *string
}

// Tokenizer is the field-extraction state machine described by this
// package's documentation. It owns a charCursor over the physical line it
// is currently scanning and a lineFeeder that supplies further lines (and
// replays lines abandoned by SkipCurrentLine); a Tokenizer is not safe for
// concurrent use.
type Tokenizer struct {
	cfg    config
	cursor charCursor
	feeder *lineFeeder

	recordState      recordState
	// recordLines holds every physical line touched while producing the
	// current column, in order, starting with the line the cursor is on when
	// NextColumn is entered and growing by one each time a quoted field
	// spans onto a further line. It is reset on every NextColumn call (and
	// by NextRecord, for a SkipCurrentLine called before any column is
	// read). SkipCurrentLine uses it to return the first of those lines and
	// replay the rest.
	recordLines     []string
	wasQuotedColumn bool
}

func newTokenizer(cfg config, source LineSource) *Tokenizer {
	return &Tokenizer{
		cfg:         cfg,
		feeder:      newLineFeeder(source, cfg.commentLineMarker),
		recordState: recordStateEnd,
	}
}

// CurrentLineNumber returns the 1-based number of the last physical line
// touched by the tokenizer.
func (t *Tokenizer) CurrentLineNumber() int64 {
	return t.feeder.lineNumber
}

// SkipHeaderLine unconditionally consumes and discards one upstream line,
// without any state-machine interpretation. It reports false once the
// LineSource is exhausted.
func (t *Tokenizer) SkipHeaderLine() bool {
	return t.feeder.skipHeaderLine()
}

// SkipCurrentLine abandons the record currently being tokenized and returns
// the first physical line spanned by the column most recently read (the
// record's line, if no column has been read yet). If that column was a
// quoted field spanning several physical lines, every line after the first
// (including the one the cursor is on) is queued for replay by the next
// NextRecord call, and the line counter is rewound so those lines are
// counted again when they are replayed. Otherwise the rest of the cursor's
// line is discarded and nothing is replayed.
func (t *Tokenizer) SkipCurrentLine() string {
	t.recordState = recordStateEnd
	if len(t.recordLines) == 0 {
		return ""
	}
	skipped := t.recordLines[0]
	remainder := append([]string(nil), t.recordLines[1:]...)
	t.feeder.lineNumber -= int64(len(remainder))
	t.feeder.pushBack(remainder)
	t.recordLines = t.recordLines[:0]
	return skipped
}

// NextRecord advances to the next record, skipping blank and comment lines.
// It reports false once the LineSource has no further lines.
func (t *Tokenizer) NextRecord() (bool, error) {
	return t.nextRecord(true)
}

// NextRecordSkipEmpty advances to the next record with explicit control over
// whether blank lines (and comment lines, if configured) are skipped.
func (t *Tokenizer) NextRecordSkipEmpty(skipEmptyLine bool) (bool, error) {
	return t.nextRecord(skipEmptyLine)
}

func (t *Tokenizer) nextRecord(skipEmptyLine bool) (bool, error) {
	if t.recordState != recordStateEnd {
		return false, &RecordHasUnexpectedTrailingColumnError{}
	}
	if !t.feeder.nextLine(&t.cursor, skipEmptyLine) {
		return false, nil
	}
	t.recordLines = append(t.recordLines[:0], t.cursor.line)
	t.recordState = recordStateNotEnd
	return true, nil
}

// HasNextColumn reports whether the current record has a remaining column.
func (t *Tokenizer) HasNextColumn() bool {
	return t.recordState == recordStateNotEnd
}

// WasQuotedColumn reports whether the most recently returned column
// originated from a quoted field.
func (t *Tokenizer) WasQuotedColumn() bool {
	return t.wasQuotedColumn
}

// NextColumnOrNull reads the next column like NextColumn, applying the
// configured null semantics. With a null string configured, a raw field
// exactly matching it maps to nil. Without one, an empty unquoted field maps
// to nil while an empty quoted field ("") maps to a pointer to "".
func (t *Tokenizer) NextColumnOrNull() (*string, error) {
	v, err := t.NextColumn()
	if err != nil {
		return nil, err
	}
	if t.cfg.nullString == nil {
		if v == "" {
			if t.wasQuotedColumn {
				empty := ""
				return &empty, nil
			}
			return nil, nil
		}
		return &v, nil
	}
	if v == *t.cfg.nullString {
		return nil, nil
	}
	return &v, nil
}

// columnState is the sub-state of the field-extraction automaton while
// NextColumn is running; it exists only for the duration of a single call.
type columnState int

const (
	colBegin columnState = iota
	colFirstTrim
	colValue
	colLastTrimOrValue
	colQuotedValue
	colAfterQuotedValue
)

// NextColumn extracts and returns the next field as a raw string, advancing
// the tokenizing cursor. It fails with RecordDoesNotHaveExpectedColumnError
// if the current record has already reached end-of-line.
func (t *Tokenizer) NextColumn() (string, error) {
	if !t.HasNextColumn() {
		return "", &RecordDoesNotHaveExpectedColumnError{}
	}

	t.wasQuotedColumn = false
	t.recordLines = t.recordLines[:0]
	t.recordLines = append(t.recordLines, t.cursor.line)

	valueStart := t.cursor.pos
	valueEnd := 0
	var quotedValue *bytes.Buffer
	defer func() {
		if quotedValue != nil {
			putQuotedValueBuffer(quotedValue)
		}
	}()

	state := colBegin

	for {
		c := t.cursor.next()

		switch state {
		case colBegin:
			if t.isDelimiter(c) {
				if t.cfg.delimiterFollowing == "" {
					return "", nil
				} else if t.isDelimiterFollowingFrom(t.cursor.pos) {
					t.cursor.pos += len(t.cfg.delimiterFollowing)
					return "", nil
				}
			}
			if isEndOfLine(c) {
				t.recordState = recordStateEnd
				return "", nil
			} else if isSpace(c) && t.cfg.trimIfNotQuoted {
				state = colFirstTrim
			} else if t.isQuote(c) {
				valueStart = t.cursor.pos
				t.wasQuotedColumn = true
				quotedValue = getQuotedValueBuffer()
				state = colQuotedValue
			} else {
				state = colValue
			}

		case colFirstTrim:
			if t.isDelimiter(c) {
				if t.cfg.delimiterFollowing == "" {
					return "", nil
				} else if t.isDelimiterFollowingFrom(t.cursor.pos) {
					t.cursor.pos += len(t.cfg.delimiterFollowing)
					return "", nil
				}
			}
			if isEndOfLine(c) {
				t.recordState = recordStateEnd
				return "", nil
			} else if t.isQuote(c) {
				valueStart = t.cursor.pos
				t.wasQuotedColumn = true
				quotedValue = getQuotedValueBuffer()
				state = colQuotedValue
			} else if isSpace(c) {
				// absorb leading space
			} else {
				valueStart = t.cursor.pos - runeLen(c)
				state = colValue
			}

		case colValue:
			if t.isDelimiter(c) {
				if t.cfg.delimiterFollowing == "" {
					return t.cursor.line[valueStart : t.cursor.pos-runeLen(c)], nil
				} else if t.isDelimiterFollowingFrom(t.cursor.pos) {
					value := t.cursor.line[valueStart : t.cursor.pos-runeLen(c)]
					t.cursor.pos += len(t.cfg.delimiterFollowing)
					return value, nil
				}
			}
			if isEndOfLine(c) {
				t.recordState = recordStateEnd
				return t.cursor.line[valueStart:t.cursor.pos], nil
			} else if isSpace(c) && t.cfg.trimIfNotQuoted {
				valueEnd = t.cursor.pos - runeLen(c)
				state = colLastTrimOrValue
			}

		case colLastTrimOrValue:
			if t.isDelimiter(c) {
				if t.cfg.delimiterFollowing == "" {
					return t.cursor.line[valueStart:valueEnd], nil
				} else if t.isDelimiterFollowingFrom(t.cursor.pos) {
					t.cursor.pos += len(t.cfg.delimiterFollowing)
					return t.cursor.line[valueStart:valueEnd], nil
				}
			}
			if isEndOfLine(c) {
				t.recordState = recordStateEnd
				return t.cursor.line[valueStart:valueEnd], nil
			} else if isSpace(c) {
				// still trailing
			} else {
				state = colValue
			}

		case colQuotedValue:
			if isEndOfLine(c) {
				quotedValue.WriteString(t.cursor.line[valueStart:t.cursor.pos])
				quotedValue.WriteString(t.cfg.newline)
				if int64(quotedValue.Len()) > t.cfg.maxQuotedFieldLen {
					return "", &QuotedFieldLengthLimitExceededError{Limit: t.cfg.maxQuotedFieldLen}
				}
				if !t.feeder.nextLine(&t.cursor, false) {
					return "", &EndOfFileInQuotedFieldError{}
				}
				t.recordLines = append(t.recordLines, t.cursor.line)
				valueStart = 0
			} else if t.isQuote(c) {
				next := t.cursor.peek()
				nextNext := t.cursor.peekNext()
				switch {
				case t.isQuote(next) &&
					(t.cfg.quotesInQuoted != QuotesAcceptStrayAssumingNoDelimitersInFields ||
						(!t.isDelimiter(nextNext) && !isEndOfLine(nextNext))):
					// RFC 4180 escaped quote: "" within the field.
					quotedValue.WriteString(t.cursor.line[valueStart:t.cursor.pos])
					t.cursor.pos += runeLen(next)
					valueStart = t.cursor.pos
					if int64(quotedValue.Len()) > t.cfg.maxQuotedFieldLen {
						return "", &QuotedFieldLengthLimitExceededError{Limit: t.cfg.maxQuotedFieldLen}
					}
				case t.cfg.quotesInQuoted == QuotesAcceptStrayAssumingNoDelimitersInFields &&
					!(t.isDelimiter(next) || isEndOfLine(next)):
					// Stray quote accepted as a literal character.
					if int64(t.cursor.pos-valueStart)+int64(quotedValue.Len()) > t.cfg.maxQuotedFieldLen {
						return "", &QuotedFieldLengthLimitExceededError{Limit: t.cfg.maxQuotedFieldLen}
					}
				default:
					quotedValue.WriteString(t.cursor.line[valueStart : t.cursor.pos-runeLen(c)])
					state = colAfterQuotedValue
				}
			} else if t.isEscape(c) {
				next := t.cursor.peek()
				if t.isQuote(next) || t.isEscape(next) {
					quotedValue.WriteString(t.cursor.line[valueStart : t.cursor.pos-runeLen(c)])
					quotedValue.WriteRune(next)
					t.cursor.pos += runeLen(next)
					valueStart = t.cursor.pos
					if int64(quotedValue.Len()) > t.cfg.maxQuotedFieldLen {
						return "", &QuotedFieldLengthLimitExceededError{Limit: t.cfg.maxQuotedFieldLen}
					}
				}
			} else {
				if int64(t.cursor.pos-valueStart)+int64(quotedValue.Len()) > t.cfg.maxQuotedFieldLen {
					return "", &QuotedFieldLengthLimitExceededError{Limit: t.cfg.maxQuotedFieldLen}
				}
			}

		case colAfterQuotedValue:
			if t.isDelimiter(c) {
				if t.cfg.delimiterFollowing == "" {
					return quotedValue.String(), nil
				} else if t.isDelimiterFollowingFrom(t.cursor.pos) {
					t.cursor.pos += len(t.cfg.delimiterFollowing)
					return quotedValue.String(), nil
				}
			}
			if isEndOfLine(c) {
				t.recordState = recordStateEnd
				return quotedValue.String(), nil
			} else if isSpace(c) {
				// trailing space after close quote, silently accepted
			} else {
				return "", &InvalidCharacterAfterQuoteError{Unexpected: c, Quote: t.cfg.quote}
			}
		}
	}
}

func isEndOfLine(c rune) bool { return c == endOfLine }
func isSpace(c rune) bool     { return c == ' ' }

func (t *Tokenizer) isDelimiter(c rune) bool { return c == t.cfg.delimiterChar }
func (t *Tokenizer) isQuote(c rune) bool     { return t.cfg.quote != disabledRune && c == t.cfg.quote }
func (t *Tokenizer) isEscape(c rune) bool    { return t.cfg.escape != disabledRune && c == t.cfg.escape }

func (t *Tokenizer) isDelimiterFollowingFrom(pos int) bool {
	return t.cursor.hasPrefixAt(pos, t.cfg.delimiterFollowing)
}

func runeLen(r rune) int { return len(string(r)) }
