package toml

import (
	"fmt"
	"strconv"
	"strings"
)

// snippetWidth is the maximum length of the source excerpt rendered alongside an error, centered
// on the offending character.
const snippetWidth = 120

// Position records a point inside the input stream. Line and Column are 1-based for diagnostics;
// Offset is the 0-based absolute character offset, used to clip and center the error snippet.
type Position struct {
	Line   int
	Column int
	Offset int
}

// ParseError is the single error kind this package returns: [StreamRead]. It always carries the
// position at which the lexer or parser gave up, the original input (so a snippet can be rendered
// lazily), a message, and optionally the underlying cause of a conversion failure.
type ParseError struct {
	Kind    string
	Pos     Position
	Message string
	input   string
	cause   error
}

// StreamRead is the only error kind surfaced by this package; it covers lexical, structural,
// semantic and conversion failures alike under one taxonomy.
const StreamRead = "StreamRead"

func newParseError(input string, pos Position, format string, args ...any) *ParseError {
	return &ParseError{
		Kind:    StreamRead,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
		input:   input,
	}
}

func newParseErrorWrap(input string, pos Position, cause error, format string, args ...any) *ParseError {
	e := newParseError(input, pos, format, args...)
	e.cause = cause
	return e
}

// Error renders the message, the 1-based line/column, and a single-line snippet of the
// surrounding source with a caret pointing at the offending character.
func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	b.WriteString(" (line: ")
	b.WriteString(strconv.Itoa(e.Pos.Line))
	b.WriteString(", column: ")
	b.WriteString(strconv.Itoa(e.Pos.Column))
	b.WriteString(")")

	if snippet, ok := e.snippet(); ok {
		b.WriteString("\n")
		b.WriteString(snippet)
		b.WriteString("\n")
		b.WriteString(caretLine(snippet, e.Pos.Offset, e.snippetStart()))
		b.WriteString(" near here")
	}

	return b.String()
}

// Unwrap exposes the underlying conversion error, if any, so callers can use errors.As/Is against
// the original strconv/big parse failure.
func (e *ParseError) Unwrap() error {
	return e.cause
}

// snippetStart returns the absolute offset of the first rune of the rendered snippet.
func (e *ParseError) snippetStart() int {
	start := e.Pos.Offset - snippetWidth/2
	if start < 0 {
		start = 0
	}
	return start
}

// snippet clips the original input to at most [snippetWidth] runes, centered on the error
// position, stripping non-printable characters so the excerpt renders cleanly on one line.
func (e *ParseError) snippet() (string, bool) {
	if e.input == "" {
		return "", false
	}

	runes := []rune(e.input)
	start := e.snippetStart()
	if start > len(runes) {
		start = len(runes)
	}

	end := start + snippetWidth
	if end > len(runes) {
		end = len(runes)
	}

	var b strings.Builder
	for _, r := range runes[start:end] {
		if r == '\n' || r == '\r' || r == '\t' {
			b.WriteRune(' ')
			continue
		}
		if r < 0x20 {
			continue
		}
		b.WriteRune(r)
	}

	return b.String(), true
}

// caretLine renders a line of spaces with a single "^--" marker under the offending character.
func caretLine(snippet string, offset, snippetStart int) string {
	col := offset - snippetStart
	if col < 0 {
		col = 0
	}
	if col > len([]rune(snippet)) {
		col = len([]rune(snippet))
	}

	return strings.Repeat(" ", col) + "^--"
}
