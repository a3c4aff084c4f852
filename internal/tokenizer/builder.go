package tokenizer

import "fmt"

// Builder assembles a validated Tokenizer configuration one setting at a
// time, mirroring the fluent builder of the original implementation: every
// setter returns the same *Builder so calls can be chained, and nothing is
// validated against the rest of the configuration until Build.
type Builder struct {
	cfg config
	err error
}

// NewBuilder starts a Builder for the given delimiter. delimiter must be at
// least one character; when it is longer than one character, the first rune
// is used as the primary delimiter character and the remainder becomes the
// "delimiter-following" string that must immediately follow it for a match
// to count (this is how a multi-character delimiter such as "::" or "|~|" is
// supported without making every single-character comparison pay for it).
// The defaults match RFC 4180: a double quote for quoting, a backslash for
// escaping, "\r\n" as the record-spanning newline, no trimming, the strict
// RFC 4180 stray-quote policy, a 128 KiB quoted-field limit, no comment
// marker, and no null string.
func NewBuilder(delimiter string) (*Builder, error) {
	if delimiter == "" {
		return nil, fmt.Errorf("tokenizer: delimiter must not be empty")
	}
	runes := []rune(delimiter)
	b := &Builder{
		cfg: config{
			delimiterChar:      runes[0],
			delimiterFollowing: string(runes[1:]),
			quote:              '"',
			escape:             '\\',
			newline:            "\r\n",
			trimIfNotQuoted:    false,
			quotesInQuoted:     QuotesRFC4180Only,
			maxQuotedFieldLen:  128 * 1024,
			commentLineMarker:  "",
			nullString:         nil,
		},
	}
	return b, nil
}

// SetQuote configures the quote character.
func (b *Builder) SetQuote(quote rune) *Builder {
	if b.err != nil {
		return b
	}
	b.cfg.quote = quote
	return b
}

// NoQuote disables quoting entirely: a quote character loses all special
// meaning and is treated as an ordinary value character.
func (b *Builder) NoQuote() *Builder {
	if b.err != nil {
		return b
	}
	b.cfg.quote = disabledRune
	return b
}

// SetEscape configures the escape character used inside quoted fields (for
// example backslash), in addition to RFC 4180's doubled-quote escaping.
func (b *Builder) SetEscape(escape rune) *Builder {
	if b.err != nil {
		return b
	}
	b.cfg.escape = escape
	return b
}

// NoEscape disables the backslash-style escape, leaving doubled-quote escaping
// (when quoting is enabled) as the only way to embed a literal quote.
func (b *Builder) NoEscape() *Builder {
	if b.err != nil {
		return b
	}
	b.cfg.escape = disabledRune
	return b
}

// SetNewline selects the string substituted for the line terminators removed
// by the LineSource when a quoted field spans more than one physical line.
// Only "\r\n", "\r" and "\n" are accepted.
func (b *Builder) SetNewline(newline string) *Builder {
	if b.err != nil {
		return b
	}
	switch newline {
	case "\r\n", "\r", "\n":
		b.cfg.newline = newline
	default:
		b.err = fmt.Errorf("tokenizer: unsupported newline %q", newline)
	}
	return b
}

// EnableTrimIfNotQuoted trims leading and trailing spaces from a field that
// was not quoted. It cannot be combined with AcceptStrayQuotesAssumingNoDelimitersInFields.
func (b *Builder) EnableTrimIfNotQuoted() *Builder {
	if b.err != nil {
		return b
	}
	b.cfg.trimIfNotQuoted = true
	return b
}

// AcceptStrayQuotesAssumingNoDelimitersInFields relaxes quote handling so a
// quote character that is not immediately followed by a delimiter or
// end-of-line is treated as a literal character instead of closing the
// field. It cannot be combined with EnableTrimIfNotQuoted.
func (b *Builder) AcceptStrayQuotesAssumingNoDelimitersInFields() *Builder {
	if b.err != nil {
		return b
	}
	b.cfg.quotesInQuoted = QuotesAcceptStrayAssumingNoDelimitersInFields
	return b
}

// SetMaxQuotedFieldLength bounds the decoded length, in bytes, of a single
// quoted field. limit must be positive.
func (b *Builder) SetMaxQuotedFieldLength(limit int64) *Builder {
	if b.err != nil {
		return b
	}
	if limit <= 0 {
		b.err = fmt.Errorf("tokenizer: max quoted field length must be positive, got %d", limit)
		return b
	}
	b.cfg.maxQuotedFieldLen = limit
	return b
}

// SetCommentLineMarker configures a prefix that marks a physical line as a
// comment to be skipped by NextRecord whenever skipEmptyLine is true.
func (b *Builder) SetCommentLineMarker(marker string) *Builder {
	if b.err != nil {
		return b
	}
	b.cfg.commentLineMarker = marker
	return b
}

// SetNullString configures a raw field value that NextColumnOrNull maps to
// nil instead of a pointer to itself.
func (b *Builder) SetNullString(nullString string) *Builder {
	if b.err != nil {
		return b
	}
	b.cfg.nullString = &nullString
	return b
}

// Build validates the accumulated configuration and returns a Tokenizer
// reading from source. trimIfNotQuoted and the stray-quotes acceptance
// policy are mutually exclusive: combining them would make it ambiguous
// whether a quote preceded by trimmed whitespace belongs to the value or
// opens a quoted field.
func (b *Builder) Build(source LineSource) (*Tokenizer, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.cfg.trimIfNotQuoted && b.cfg.quotesInQuoted == QuotesAcceptStrayAssumingNoDelimitersInFields {
		return nil, fmt.Errorf("tokenizer: trim_if_not_quoted and accept_stray_assuming_no_delimiters_in_fields cannot both be enabled")
	}
	if source == nil {
		return nil, fmt.Errorf("tokenizer: source must not be nil")
	}
	return newTokenizer(b.cfg, source), nil
}
