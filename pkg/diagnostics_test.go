package toml

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseErrorRendersPositionAndCaret(t *testing.T) {
	input := "k = @@@\n"
	pos := Position{Line: 1, Column: 5, Offset: 4}
	err := newParseError(input, pos, "unexpected character %q", '@')

	msg := err.Error()
	assert.Contains(t, msg, `unexpected character '@'`)
	assert.Contains(t, msg, "(line: 1, column: 5)")
	assert.Contains(t, msg, "^--")
}

func TestParseErrorWrapExposesCause(t *testing.T) {
	cause := errors.New("strconv failure")
	err := newParseErrorWrap("k = 1\n", Position{Line: 1, Column: 5, Offset: 4}, cause, "invalid number representation")

	assert.Contains(t, err.Error(), "invalid number representation")
	assert.True(t, errors.Is(err, cause))

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, cause, pe.Unwrap())
}

func TestParseErrorWithEmptyInputOmitsSnippet(t *testing.T) {
	err := newParseError("", Position{Line: 1, Column: 1, Offset: 0}, "unexpected end of input")

	msg := err.Error()
	assert.NotContains(t, msg, "^--")
}

func TestParseErrorKindIsAlwaysStreamRead(t *testing.T) {
	err := newParseError("x", Position{Line: 1, Column: 1, Offset: 0}, "broken")
	assert.Equal(t, StreamRead, err.Kind)
}
