package csv

import (
	"io"

	"github.com/shapestone/shape-linecsv/internal/tokenizer"
)

// Reader is a thin façade over internal/tokenizer.Tokenizer: it owns the
// bufio-backed LineSource read from r and exposes the tokenizer's contract
// directly, plus ReadRecord for callers that want one record at a time the
// way encoding/csv.Reader.Read does.
type Reader struct {
	source *lineSource
	tok    *tokenizer.Tokenizer
}

// NewReader builds a Reader over r using delimiter and whatever further
// settings configure applies to the underlying Builder. configure may be
// nil to accept every default (see NewBuilder's doc comment for the defaults).
func NewReader(r io.Reader, delimiter string, configure func(*tokenizer.Builder)) (*Reader, error) {
	b, err := tokenizer.NewBuilder(delimiter)
	if err != nil {
		return nil, err
	}
	if configure != nil {
		configure(b)
	}
	src := NewLineSource(r)
	tok, err := b.Build(src)
	if err != nil {
		return nil, err
	}
	return &Reader{source: src, tok: tok}, nil
}

// CurrentLineNumber returns the 1-based number of the last physical line
// touched by the reader.
func (r *Reader) CurrentLineNumber() int64 {
	return r.tok.CurrentLineNumber()
}

// SkipHeaderLine discards one upstream line unconditionally. It reports
// false once the source is exhausted.
func (r *Reader) SkipHeaderLine() bool {
	return r.tok.SkipHeaderLine()
}

// SkipCurrentLine abandons the record currently being read and returns the
// first physical line of the column most recently read, exactly as
// tokenizer.Tokenizer.SkipCurrentLine.
func (r *Reader) SkipCurrentLine() string {
	return r.tok.SkipCurrentLine()
}

// NextRecord advances to the next record, skipping blank lines (and comment
// lines, if configured).
func (r *Reader) NextRecord() (bool, error) {
	return r.tok.NextRecord()
}

// NextRecordSkipEmpty advances to the next record with explicit control
// over whether blank lines are skipped.
func (r *Reader) NextRecordSkipEmpty(skipEmptyLine bool) (bool, error) {
	return r.tok.NextRecordSkipEmpty(skipEmptyLine)
}

// HasNextColumn reports whether the current record has a remaining column.
func (r *Reader) HasNextColumn() bool {
	return r.tok.HasNextColumn()
}

// NextColumn extracts and returns the next field as a raw string.
func (r *Reader) NextColumn() (string, error) {
	return r.tok.NextColumn()
}

// NextColumnOrNull reads the next column applying the configured null
// semantics; see tokenizer.Tokenizer.NextColumnOrNull.
func (r *Reader) NextColumnOrNull() (*string, error) {
	return r.tok.NextColumnOrNull()
}

// WasQuotedColumn reports whether the most recently returned column
// originated from a quoted field.
func (r *Reader) WasQuotedColumn() bool {
	return r.tok.WasQuotedColumn()
}

// ReadRecord drains and returns one full record as a slice of raw field
// values, the way encoding/csv.Reader.Read does. It returns io.EOF, with a
// nil slice, once the source is exhausted.
func (r *Reader) ReadRecord() ([]string, error) {
	more, err := r.tok.NextRecord()
	if err != nil {
		return nil, err
	}
	if !more {
		return nil, io.EOF
	}
	var record []string
	for r.tok.HasNextColumn() {
		v, err := r.tok.NextColumn()
		if err != nil {
			return nil, err
		}
		record = append(record, v)
	}
	return record, nil
}

// ReadAll drains every remaining record.
func (r *Reader) ReadAll() ([][]string, error) {
	var records [][]string
	for {
		record, err := r.ReadRecord()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, record)
	}
}
