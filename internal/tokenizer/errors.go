package tokenizer

import "fmt"

// InvalidCSVFormatError is the error interface implemented by every error the
// Tokenizer can return from NextRecord, NextColumn or NextColumnOrNull. It
// mirrors the abstract InvalidCsvFormatException at the root of the original
// exception hierarchy: callers that only care "was this a malformed record"
// can check for this interface with errors.As instead of enumerating every
// concrete type.
type InvalidCSVFormatError interface {
	error
	invalidCSVFormat()
}

// InvalidCSVQuotationError is the subset of InvalidCSVFormatError raised while
// tokenizing a quoted field specifically (as opposed to record/column
// sequencing errors such as RecordHasUnexpectedTrailingColumnError).
type InvalidCSVQuotationError interface {
	InvalidCSVFormatError
	invalidCSVQuotation()
}

// RecordHasUnexpectedTrailingColumnError is returned by NextRecord when the
// caller has not drained every column of the current record (has_next_column
// would still report true) before asking to advance.
type RecordHasUnexpectedTrailingColumnError struct{}

func (*RecordHasUnexpectedTrailingColumnError) Error() string {
	return "a record has an unexpected trailing column (i.e. too many columns)"
}

func (*RecordHasUnexpectedTrailingColumnError) invalidCSVFormat() {}

// RecordDoesNotHaveExpectedColumnError is returned by NextColumn when the
// current record has already reached its end-of-line.
type RecordDoesNotHaveExpectedColumnError struct{}

func (*RecordDoesNotHaveExpectedColumnError) Error() string {
	return "a record does not have an expected column"
}

func (*RecordDoesNotHaveExpectedColumnError) invalidCSVFormat() {}

// EndOfFileInQuotedFieldError is returned when the upstream line source is
// exhausted while the tokenizer still needs another physical line to close a
// quoted field.
type EndOfFileInQuotedFieldError struct{}

func (*EndOfFileInQuotedFieldError) Error() string {
	return "unexpected end of file while a quoted field is still open"
}

func (*EndOfFileInQuotedFieldError) invalidCSVFormat()   {}
func (*EndOfFileInQuotedFieldError) invalidCSVQuotation() {}

// InvalidCharacterAfterQuoteError is returned when a character other than a
// space (' '), the delimiter, or end-of-line follows a field's closing quote.
type InvalidCharacterAfterQuoteError struct {
	Unexpected rune
	Quote      rune
}

func (e *InvalidCharacterAfterQuoteError) Error() string {
	return fmt.Sprintf("unexpected extra character %q after a quote by %q", e.Unexpected, e.Quote)
}

func (*InvalidCharacterAfterQuoteError) invalidCSVFormat()   {}
func (*InvalidCharacterAfterQuoteError) invalidCSVQuotation() {}

// QuotedFieldLengthLimitExceededError is returned when a quoted field's
// decoded length exceeds the configured limit.
type QuotedFieldLengthLimitExceededError struct {
	Limit int64
}

func (e *QuotedFieldLengthLimitExceededError) Error() string {
	return fmt.Sprintf("the length of the quoted field exceeds the limit (%d)", e.Limit)
}

func (*QuotedFieldLengthLimitExceededError) invalidCSVFormat()   {}
func (*QuotedFieldLengthLimitExceededError) invalidCSVQuotation() {}

var (
	_ InvalidCSVFormatError    = (*RecordHasUnexpectedTrailingColumnError)(nil)
	_ InvalidCSVFormatError    = (*RecordDoesNotHaveExpectedColumnError)(nil)
	_ InvalidCSVQuotationError = (*EndOfFileInQuotedFieldError)(nil)
	_ InvalidCSVQuotationError = (*InvalidCharacterAfterQuoteError)(nil)
	_ InvalidCSVQuotationError = (*QuotedFieldLengthLimitExceededError)(nil)
)
