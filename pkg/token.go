package toml

// TokenType is an ID that correlates to the lexical construct a [Token] signifies.
type TokenType uint8

const (
	// TokenError denotes a lexing error. The token's Value holds the error detail.
	TokenError TokenType = iota
	// TokenEOF denotes the end of the lexing process, once every rune of the stream is exhausted.
	TokenEOF

	// TokenUnquotedKey holds a bare key, e.g. the `name` in `name = "value"`.
	TokenUnquotedKey
	// TokenDotSep matches the dot ('.') separating dotted-key components.
	TokenDotSep

	// TokenString holds a decoded string value: basic, multi-line basic, literal or multi-line literal.
	// The surrounding quotes are stripped and escapes are already resolved by the time this token is
	// emitted; it is used both as a key form and as a value.
	TokenString

	// TokenTrue and TokenFalse match the `true`/`false` boolean literals.
	TokenTrue
	TokenFalse

	// TokenOffsetDateTime matches an RFC 3339 date-time with an offset, e.g. `1979-05-27T07:32:00Z`.
	TokenOffsetDateTime
	// TokenLocalDateTime matches a date-time without an offset, e.g. `1979-05-27T07:32:00`.
	TokenLocalDateTime
	// TokenLocalDate matches a bare date, e.g. `1979-05-27`.
	TokenLocalDate
	// TokenLocalTime matches a bare time, e.g. `07:32:00`.
	TokenLocalTime

	// TokenFloat matches a floating-point literal, including `nan`/`inf`/`+inf`/`-inf`.
	TokenFloat
	// TokenInteger matches an integer literal, in decimal or with a 0x/0o/0b base prefix.
	TokenInteger

	// TokenStdTableOpen and TokenStdTableClose match `[` and `]` in table-header position.
	TokenStdTableOpen
	TokenStdTableClose
	// TokenInlineTableOpen and TokenInlineTableClose match `{` and `}`.
	TokenInlineTableOpen
	TokenInlineTableClose
	// TokenArrayTableOpen and TokenArrayTableClose match `[[` and `]]` in array-of-tables position.
	TokenArrayTableOpen
	TokenArrayTableClose
	// TokenArrayOpen and TokenArrayClose match `[` and `]` in value position.
	TokenArrayOpen
	TokenArrayClose

	// TokenKeyValSep matches the `=` separating a key from its value.
	TokenKeyValSep
	// TokenComma matches the `,` separating array elements or inline-table pairs.
	TokenComma

	// TokenArrayWsCommentNewline is reserved for whitespace, comments and newlines skipped inside
	// an array literal. This lexer folds that production into skipWsAndComment instead of emitting
	// a token for it, since the parser never needs to see it; the type stays declared so the token
	// set it belongs to remains complete.
	TokenArrayWsCommentNewline
)

// state is the lexer's current mode, set by the parser before each token request. Because TOML is
// context-sensitive (a bare `2021` is a key in key position and an integer in value position), the
// lexer never guesses: the parser tells it what production is legal before it reads the next token.
type state uint8

const (
	// stateExpectExpression is the top-level state: start of a line, expecting a key, a table
	// header or the end of input.
	stateExpectExpression state = iota
	// stateExpectEOL is entered after a complete statement; only whitespace, a comment and a
	// newline (or EOF) are legal before the next stateExpectExpression.
	stateExpectEOL
	// stateExpectInlineKey is entered while reading a (possibly dotted) key, bare or quoted.
	stateExpectInlineKey
	// stateExpectValue is entered on the right-hand side of `=`, and recursively inside arrays.
	stateExpectValue
	// stateExpectArraySep is entered after a value inside an array literal.
	stateExpectArraySep
	// stateExpectTableSep is entered after a value inside an inline table.
	stateExpectTableSep
)

// Token contains a lexicographical token read from the input stream. If a token has type
// [TokenError] its Value holds a human-readable description of what went wrong.
type Token struct {
	Typ   TokenType
	Value string
	Pos   Position
}

// isValid returns false if the token is of type [TokenEOF] or [TokenError].
func (t Token) isValid() bool {
	return t.Typ != TokenEOF && t.Typ != TokenError
}

var tokenTypeNames = map[TokenType]string{
	TokenError:                 "ERROR",
	TokenEOF:                   "EOF",
	TokenUnquotedKey:           "UNQUOTED_KEY",
	TokenDotSep:                "DOT_SEP",
	TokenString:                "STRING",
	TokenTrue:                  "TRUE",
	TokenFalse:                 "FALSE",
	TokenOffsetDateTime:        "OFFSET_DATE_TIME",
	TokenLocalDateTime:         "LOCAL_DATE_TIME",
	TokenLocalDate:             "LOCAL_DATE",
	TokenLocalTime:             "LOCAL_TIME",
	TokenFloat:                 "FLOAT",
	TokenInteger:               "INTEGER",
	TokenStdTableOpen:          "STD_TABLE_OPEN",
	TokenStdTableClose:         "STD_TABLE_CLOSE",
	TokenInlineTableOpen:       "INLINE_TABLE_OPEN",
	TokenInlineTableClose:      "INLINE_TABLE_CLOSE",
	TokenArrayTableOpen:        "ARRAY_TABLE_OPEN",
	TokenArrayTableClose:       "ARRAY_TABLE_CLOSE",
	TokenArrayOpen:             "ARRAY_OPEN",
	TokenArrayClose:            "ARRAY_CLOSE",
	TokenKeyValSep:             "KEY_VAL_SEP",
	TokenComma:                 "COMMA",
	TokenArrayWsCommentNewline: "ARRAY_WS_COMMENT_NEWLINE",
}

// String renders the token type's grammar name, e.g. "STD_TABLE_OPEN".
func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}
