package tokenizer

import (
	"errors"
	"testing"
)

// readAllRecords drains every record and column from tok using NextColumn,
// for table-driven assertions against a flat [][]string shape.
func readAllRecords(t *testing.T, tok *Tokenizer) [][]string {
	t.Helper()
	var records [][]string
	for {
		more, err := tok.NextRecord()
		if err != nil {
			t.Fatalf("NextRecord returned error: %v", err)
		}
		if !more {
			break
		}
		var record []string
		for tok.HasNextColumn() {
			v, err := tok.NextColumn()
			if err != nil {
				t.Fatalf("NextColumn returned error: %v", err)
			}
			record = append(record, v)
		}
		records = append(records, record)
	}
	return records
}

func newTestTokenizer(t *testing.T, lines []string, configure func(*Builder)) *Tokenizer {
	t.Helper()
	b, err := NewBuilder(",")
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	if configure != nil {
		configure(b)
	}
	tok, err := b.Build(&sliceLineSource{lines: lines})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return tok
}

func assertRecords(t *testing.T, got, want [][]string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("record count = %d, want %d (got %#v)", len(got), len(want), got)
	}
	for i := range want {
		if len(got[i]) != len(want[i]) {
			t.Fatalf("record %d column count = %d, want %d (got %#v)", i, len(got[i]), len(want[i]), got[i])
		}
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Fatalf("record %d column %d = %q, want %q", i, j, got[i][j], want[i][j])
			}
		}
	}
}

func TestTokenizer_SimpleUnquotedRecords(t *testing.T) {
	tok := newTestTokenizer(t, []string{"a,b,c", "1,2,3"}, nil)
	assertRecords(t, readAllRecords(t, tok), [][]string{
		{"a", "b", "c"},
		{"1", "2", "3"},
	})
}

func TestTokenizer_EmptyFields(t *testing.T) {
	tok := newTestTokenizer(t, []string{"a,,c"}, nil)
	assertRecords(t, readAllRecords(t, tok), [][]string{
		{"a", "", "c"},
	})
}

func TestTokenizer_BlankLinesSkippedByDefault(t *testing.T) {
	tok := newTestTokenizer(t, []string{"a,b", "", "c,d"}, nil)
	assertRecords(t, readAllRecords(t, tok), [][]string{
		{"a", "b"},
		{"c", "d"},
	})
}

func TestTokenizer_BlankLinesKeptWhenNotSkipped(t *testing.T) {
	tok := newTestTokenizer(t, []string{"a,b", "", "c,d"}, nil)

	more, err := tok.NextRecordSkipEmpty(false)
	if err != nil || !more {
		t.Fatalf("NextRecordSkipEmpty(false) = %v, %v", more, err)
	}
	v, err := tok.NextColumn()
	if err != nil || v != "a" {
		t.Fatalf("NextColumn = %q, %v, want a", v, err)
	}
	tok.NextColumn()

	more, err = tok.NextRecordSkipEmpty(false)
	if err != nil || !more {
		t.Fatalf("second NextRecordSkipEmpty(false) = %v, %v", more, err)
	}
	v, err = tok.NextColumn()
	if err != nil || v != "" {
		t.Fatalf("blank line column = %q, %v, want empty string", v, err)
	}
	if tok.HasNextColumn() {
		t.Fatal("blank line record should have exactly one empty column")
	}
}

func TestTokenizer_QuotedFieldWithEmbeddedDelimiter(t *testing.T) {
	tok := newTestTokenizer(t, []string{`"a,b",c`}, nil)
	assertRecords(t, readAllRecords(t, tok), [][]string{
		{"a,b", "c"},
	})
}

func TestTokenizer_QuotedFieldWithEscapedQuote(t *testing.T) {
	tok := newTestTokenizer(t, []string{`"a""b",c`}, nil)
	assertRecords(t, readAllRecords(t, tok), [][]string{
		{`a"b`, "c"},
	})
}

func TestTokenizer_QuotedFieldSpanningMultipleLines(t *testing.T) {
	tok := newTestTokenizer(t, []string{`"a`, `b",c`}, nil)
	assertRecords(t, readAllRecords(t, tok), [][]string{
		{"a\r\nb", "c"},
	})
	if tok.CurrentLineNumber() != 2 {
		t.Fatalf("CurrentLineNumber = %d, want 2", tok.CurrentLineNumber())
	}
}

func TestTokenizer_WasQuotedColumn(t *testing.T) {
	tok := newTestTokenizer(t, []string{`"a",b`}, nil)
	more, err := tok.NextRecord()
	if err != nil || !more {
		t.Fatalf("NextRecord = %v, %v", more, err)
	}
	if v, err := tok.NextColumn(); err != nil || v != "a" {
		t.Fatalf("NextColumn = %q, %v", v, err)
	}
	if !tok.WasQuotedColumn() {
		t.Fatal("expected WasQuotedColumn to be true for a quoted field")
	}
	if v, err := tok.NextColumn(); err != nil || v != "b" {
		t.Fatalf("NextColumn = %q, %v", v, err)
	}
	if tok.WasQuotedColumn() {
		t.Fatal("expected WasQuotedColumn to be false for an unquoted field")
	}
}

func TestTokenizer_TrimIfNotQuoted(t *testing.T) {
	tok := newTestTokenizer(t, []string{`  a  , "b"  `}, func(b *Builder) {
		b.EnableTrimIfNotQuoted()
	})
	assertRecords(t, readAllRecords(t, tok), [][]string{
		{"a", "b"},
	})
}

func TestTokenizer_CommentLineSkipped(t *testing.T) {
	tok := newTestTokenizer(t, []string{"# a comment", "a,b"}, func(b *Builder) {
		b.SetCommentLineMarker("#")
	})
	assertRecords(t, readAllRecords(t, tok), [][]string{
		{"a", "b"},
	})
}

func TestTokenizer_NullStringConfigured(t *testing.T) {
	// S3: with a null string configured, matching is exact-value only —
	// whether the field was quoted makes no difference.
	tok := newTestTokenizer(t, []string{`1,,NULL,""`}, func(b *Builder) {
		b.SetNullString("NULL")
	})
	more, err := tok.NextRecord()
	if err != nil || !more {
		t.Fatalf("NextRecord = %v, %v", more, err)
	}

	v, err := tok.NextColumnOrNull()
	if err != nil || v == nil || *v != "1" {
		t.Fatalf("column 0 = %v, %v, want \"1\"", v, err)
	}
	v, err = tok.NextColumnOrNull()
	if err != nil || v == nil || *v != "" {
		t.Fatalf("column 1 = %v, %v, want empty string (not nil)", v, err)
	}
	v, err = tok.NextColumnOrNull()
	if err != nil || v != nil {
		t.Fatalf("column 2 = %v, %v, want nil", v, err)
	}
	v, err = tok.NextColumnOrNull()
	if err != nil || v == nil || *v != "" {
		t.Fatalf("column 3 = %v, %v, want empty string (not nil)", v, err)
	}
}

func TestTokenizer_NullSemanticsWithoutNullString(t *testing.T) {
	tok := newTestTokenizer(t, []string{`,""`}, nil)
	more, err := tok.NextRecord()
	if err != nil || !more {
		t.Fatalf("NextRecord = %v, %v", more, err)
	}

	v, err := tok.NextColumnOrNull()
	if err != nil || v != nil {
		t.Fatalf("unquoted empty column = %v, %v, want nil", v, err)
	}
	v, err = tok.NextColumnOrNull()
	if err != nil || v == nil || *v != "" {
		t.Fatalf("quoted empty column = %v, %v, want pointer to empty string", v, err)
	}
}

func TestTokenizer_EndOfFileInQuotedFieldError(t *testing.T) {
	tok := newTestTokenizer(t, []string{`"unterminated`}, nil)
	more, err := tok.NextRecord()
	if err != nil || !more {
		t.Fatalf("NextRecord = %v, %v", more, err)
	}
	_, err = tok.NextColumn()
	var target *EndOfFileInQuotedFieldError
	if !errors.As(err, &target) {
		t.Fatalf("expected *EndOfFileInQuotedFieldError, got %v", err)
	}
}

func TestTokenizer_InvalidCharacterAfterQuote(t *testing.T) {
	tok := newTestTokenizer(t, []string{`"a"b,c`}, nil)
	more, err := tok.NextRecord()
	if err != nil || !more {
		t.Fatalf("NextRecord = %v, %v", more, err)
	}
	_, err = tok.NextColumn()
	var target *InvalidCharacterAfterQuoteError
	if !errors.As(err, &target) {
		t.Fatalf("expected *InvalidCharacterAfterQuoteError, got %v", err)
	}
}

func TestTokenizer_RecordHasUnexpectedTrailingColumn(t *testing.T) {
	tok := newTestTokenizer(t, []string{"a,b"}, nil)
	more, err := tok.NextRecord()
	if err != nil || !more {
		t.Fatalf("NextRecord = %v, %v", more, err)
	}
	tok.NextColumn() // consume "a", leaving "b" undrained

	_, err = tok.NextRecord()
	var target *RecordHasUnexpectedTrailingColumnError
	if !errors.As(err, &target) {
		t.Fatalf("expected *RecordHasUnexpectedTrailingColumnError, got %v", err)
	}
}

func TestTokenizer_RecordDoesNotHaveExpectedColumn(t *testing.T) {
	tok := newTestTokenizer(t, []string{"a"}, nil)
	tok.NextRecord()
	tok.NextColumn()

	_, err := tok.NextColumn()
	var target *RecordDoesNotHaveExpectedColumnError
	if !errors.As(err, &target) {
		t.Fatalf("expected *RecordDoesNotHaveExpectedColumnError, got %v", err)
	}
}

func TestTokenizer_QuotedFieldLengthLimitExceeded(t *testing.T) {
	tok := newTestTokenizer(t, []string{`"0123456789"`}, func(b *Builder) {
		b.SetMaxQuotedFieldLength(5)
	})
	tok.NextRecord()
	_, err := tok.NextColumn()
	var target *QuotedFieldLengthLimitExceededError
	if !errors.As(err, &target) {
		t.Fatalf("expected *QuotedFieldLengthLimitExceededError, got %v", err)
	}
}

func TestTokenizer_MultiCharDelimiter(t *testing.T) {
	b, err := NewBuilder("::")
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	tok, err := b.Build(&sliceLineSource{lines: []string{"a::b::c"}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	assertRecords(t, readAllRecords(t, tok), [][]string{
		{"a", "b", "c"},
	})
}

func TestTokenizer_SkipHeaderLine(t *testing.T) {
	tok := newTestTokenizer(t, []string{"header", "a,b"}, nil)
	if !tok.SkipHeaderLine() {
		t.Fatal("expected SkipHeaderLine to succeed")
	}
	assertRecords(t, readAllRecords(t, tok), [][]string{
		{"a", "b"},
	})
}

func TestTokenizer_SkipCurrentLine(t *testing.T) {
	tok := newTestTokenizer(t, []string{"a,b,c", "d,e,f"}, nil)
	tok.NextRecord()
	tok.NextColumn() // consume "a" only, record left mid-way

	skipped := tok.SkipCurrentLine()
	if skipped != "a,b,c" {
		t.Fatalf("SkipCurrentLine = %q, want %q", skipped, "a,b,c")
	}

	assertRecords(t, readAllRecords(t, tok), [][]string{
		{"d", "e", "f"},
	})
}

func TestTokenizer_SkipCurrentLineInsideQuotedFieldReplaysLines(t *testing.T) {
	tok := newTestTokenizer(t, []string{`"a`, `b",x,y`, `next,record`}, nil)
	tok.NextRecord()

	v, err := tok.NextColumn()
	if err != nil || v != "a\r\nb" {
		t.Fatalf("NextColumn = %q, %v, want a multi-line quoted field", v, err)
	}

	skipped := tok.SkipCurrentLine()
	if skipped != `"a` {
		t.Fatalf("SkipCurrentLine = %q, want the first line the record started on", skipped)
	}

	assertRecords(t, readAllRecords(t, tok), [][]string{
		{`b"`, "x", "y"},
		{"next", "record"},
	})
}

func TestTokenizer_SkipCurrentLineAfterLaterColumnDiscardsRestOfLineNoReplay(t *testing.T) {
	tok := newTestTokenizer(t, []string{`"a`, `b",x,y`, `next,record`}, nil)
	tok.NextRecord()

	v, err := tok.NextColumn()
	if err != nil || v != "a\r\nb" {
		t.Fatalf("NextColumn = %q, %v, want a multi-line quoted field", v, err)
	}

	v, err = tok.NextColumn()
	if err != nil || v != "x" {
		t.Fatalf("NextColumn = %q, %v, want %q", v, err, "x")
	}

	lineBefore := tok.CurrentLineNumber()
	skipped := tok.SkipCurrentLine()
	if skipped != `b",x,y` {
		t.Fatalf("SkipCurrentLine = %q, want the line the cursor is currently on", skipped)
	}
	if tok.CurrentLineNumber() != lineBefore {
		t.Fatalf("CurrentLineNumber = %d, want unchanged at %d: nothing should be replayed once a later column already consumed the quoted field's continuation line", tok.CurrentLineNumber(), lineBefore)
	}

	assertRecords(t, readAllRecords(t, tok), [][]string{
		{"next", "record"},
	})
}

func TestTokenizer_NoQuoteTreatsQuoteAsLiteral(t *testing.T) {
	tok := newTestTokenizer(t, []string{`"a,b`}, func(b *Builder) {
		b.NoQuote()
	})
	assertRecords(t, readAllRecords(t, tok), [][]string{
		{`"a`, "b"},
	})
}

func TestTokenizer_AcceptStrayQuotes(t *testing.T) {
	tok := newTestTokenizer(t, []string{`"a"b"c",d`}, func(b *Builder) {
		b.AcceptStrayQuotesAssumingNoDelimitersInFields()
	})
	assertRecords(t, readAllRecords(t, tok), [][]string{
		{`a"b"c`, "d"},
	})
}
