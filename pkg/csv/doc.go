// Package csv is the public façade over this repository's line-oriented CSV
// tokenizer. It supplies the one external collaborator the tokenizer itself
// does not implement — a bufio.Scanner-backed line source — and a thin
// Reader that wraps internal/tokenizer.Tokenizer with Go-idiomatic naming.
//
// This package deliberately does not parse field values into typed Go
// values, does not validate record width, and is not a CLI.
package csv
