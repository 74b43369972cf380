package toml

// parser drives the lexer, enforces the TOML grammar, and assembles the builder tree. It keeps a
// single one-token lookahead (`next`); every consumption also carries the lexer start-state the
// following read should use, since token legality here is mode-dependent rather than context-free.
type parser struct {
	lex   *lexer
	input string

	next    Token
	nextErr error

	root    *objectBuilder
	current *objectBuilder
}

func newParser(input string) *parser {
	return &parser{lex: newLexer(input), input: input, root: newObjectBuilder()}
}

// parse runs the full top-level loop and returns the finished [Value] tree, or the first error
// encountered: every error is fatal, nothing is retried or recovered.
func (p *parser) parse() (*Value, error) {
	p.current = p.root
	p.root.defined = true

	if _, err := p.poll(stateExpectExpression); err != nil {
		return nil, err
	}

	for {
		tok := p.peekTok()
		switch tok.Typ {
		case TokenEOF:
			return p.root.finalize(), nil
		case TokenUnquotedKey, TokenString:
			if err := p.keyValueStatement(); err != nil {
				return nil, err
			}
		case TokenStdTableOpen:
			if err := p.tableHeader(); err != nil {
				return nil, err
			}
		case TokenArrayTableOpen:
			if err := p.arrayTableHeader(); err != nil {
				return nil, err
			}
		default:
			return nil, p.errorf(tok.Pos, "unexpected token, expected a key or a table header")
		}
	}
}

// --- token plumbing -------------------------------------------------------

// poll returns the current lookahead token, then asks the lexer for the following one under the
// given start-state, which becomes the new lookahead. Any text belonging to the token being
// returned must already have been captured by the caller: polling advances the lexer, and the
// lexer's buffer is reused by the next scan.
func (p *parser) poll(next state) (Token, error) {
	cur := p.next
	curErr := p.nextErr

	tok, err := p.lex.Next(next)
	p.next = tok
	p.nextErr = err

	return cur, curErr
}

// peekTok observes the current lookahead token without consuming it.
func (p *parser) peekTok() Token {
	return p.next
}

// pollExpected polls and requires the returned token to have type `typ`, reporting "unexpected
// token" otherwise.
func (p *parser) pollExpected(typ TokenType, next state) (Token, error) {
	tok, err := p.poll(next)
	if err != nil {
		return tok, err
	}
	if tok.Typ != typ {
		return tok, p.errorf(tok.Pos, "unexpected token %v, expected %v", tok.Typ, typ)
	}
	return tok, nil
}

func (p *parser) errorf(pos Position, format string, args ...any) error {
	return newParseError(p.input, pos, format, args...)
}

// --- statements ------------------------------------------------------------

// keyValueStatement parses `key = value` (the key possibly dotted) and assigns it under `current`.
func (p *parser) keyValueStatement() error {
	target, leaf, err := p.walkDottedKey(p.current, false)
	if err != nil {
		return err
	}

	if _, exists := target.get(leaf.name); exists {
		return p.errorf(leaf.pos, "duplicate key %q", leaf.name)
	}

	if _, err := p.pollExpected(TokenKeyValSep, stateExpectValue); err != nil {
		return err
	}

	value, err := p.parseValue(stateExpectEOL)
	if err != nil {
		return err
	}

	target.set(leaf.name, value)
	return nil
}

// tableHeader parses `[a.b.c]`: resolves (creating as needed) every path component through
// `root`, requiring the final component to be a not-yet-defined table, and makes it `current`.
func (p *parser) tableHeader() error {
	openPos := p.peekTok().Pos
	if _, err := p.pollExpected(TokenStdTableOpen, stateExpectInlineKey); err != nil {
		return err
	}

	target, leaf, err := p.walkDottedKey(p.root, true)
	if err != nil {
		return err
	}

	existing, exists := target.get(leaf.name)
	if exists {
		obj, ok := asObject(existing)
		if !ok {
			return p.errorf(leaf.pos, "key %q is not a table", leaf.name)
		}
		if obj.defined {
			return p.errorf(leaf.pos, "table %q redefined", leaf.name)
		}
		if obj.closed {
			return p.errorf(leaf.pos, "table %q is closed", leaf.name)
		}
		obj.defined = true
		p.current = obj
	} else {
		obj := newObjectBuilder()
		obj.defined = true
		target.set(leaf.name, obj)
		p.current = obj
	}

	if _, err := p.pollExpected(TokenStdTableClose, stateExpectEOL); err != nil {
		return p.errorf(openPos, "unterminated table header: %v", err)
	}
	return nil
}

// arrayTableHeader parses `[[a.b.c]]`: resolves the parent path, requires the final component to
// be (or become) an open array, appends a fresh table, and makes it `current`.
func (p *parser) arrayTableHeader() error {
	openPos := p.peekTok().Pos
	if _, err := p.pollExpected(TokenArrayTableOpen, stateExpectInlineKey); err != nil {
		return err
	}

	target, leaf, err := p.walkDottedKey(p.root, true)
	if err != nil {
		return err
	}

	existing, exists := target.get(leaf.name)
	var arr *arrayBuilder
	if exists {
		a, ok := asArray(existing)
		if !ok {
			return p.errorf(leaf.pos, "key %q is not an array of tables", leaf.name)
		}
		if a.closed {
			return p.errorf(leaf.pos, "array %q is closed", leaf.name)
		}
		arr = a
	} else {
		arr = newArrayBuilder()
		target.set(leaf.name, arr)
	}

	elem := newObjectBuilder()
	elem.defined = true
	arr.append(elem)
	p.current = elem

	if _, err := p.pollExpected(TokenArrayTableClose, stateExpectEOL); err != nil {
		return p.errorf(openPos, "unterminated array-of-tables header: %v", err)
	}
	return nil
}

// --- dotted-key walking ------------------------------------------------------

// keyComponent names one segment of a (possibly dotted) key, along with the position it was
// found at (for diagnostics).
type keyComponent struct {
	name string
	pos  Position
}

// walkDottedKey reads a dotted key (one or more `UNQUOTED_KEY`/`STRING` components separated by
// `.`) starting from `from`, descending/auto-vivifying intermediate components, and returns the
// object the final component should be read from or written into, plus that final component.
//
// forTable distinguishes a table-header walk, where only the final node is marked `defined` so a
// later explicit header for an intermediate table remains legal, from a dotted-assignment walk,
// where every intermediate is marked `defined` since `a.b.c = 1` implicitly defines `a` and `a.b`
// too.
func (p *parser) walkDottedKey(from *objectBuilder, forTable bool) (*objectBuilder, keyComponent, error) {
	cur := from

	first, err := p.readKeyComponent()
	if err != nil {
		return nil, keyComponent{}, err
	}

	for p.peekTok().Typ == TokenDotSep {
		if _, err := p.poll(stateExpectInlineKey); err != nil {
			return nil, keyComponent{}, err
		}

		next, err := cur.descend(first, forTable, p)
		if err != nil {
			return nil, keyComponent{}, err
		}
		cur = next

		first, err = p.readKeyComponent()
		if err != nil {
			return nil, keyComponent{}, err
		}
	}

	return cur, first, nil
}

// readKeyComponent consumes one UNQUOTED_KEY or STRING token as a key component.
func (p *parser) readKeyComponent() (keyComponent, error) {
	tok := p.peekTok()
	if tok.Typ != TokenUnquotedKey && tok.Typ != TokenString {
		return keyComponent{}, p.errorf(tok.Pos, "expected a key, found %v", tok.Typ)
	}

	consumed, err := p.poll(stateExpectInlineKey)
	if err != nil {
		return keyComponent{}, err
	}
	return keyComponent{name: consumed.Value, pos: consumed.Pos}, nil
}

// descend resolves `comp` against `o`, auto-vivifying an object if absent, and returns the object
// to continue walking from. A path through an array-of-tables resolves to that array's most
// recently appended element.
func (o *objectBuilder) descend(comp keyComponent, forTable bool, p *parser) (*objectBuilder, error) {
	if o.closed {
		return nil, p.errorf(comp.pos, "cannot extend closed table with key %q", comp.name)
	}

	existing, exists := o.get(comp.name)
	if !exists {
		child := newObjectBuilder()
		if !forTable {
			child.defined = true
		}
		o.set(comp.name, child)
		return child, nil
	}

	switch b := existing.(type) {
	case *objectBuilder:
		if b.closed {
			return nil, p.errorf(comp.pos, "cannot extend closed table with key %q", comp.name)
		}
		if !forTable {
			b.defined = true
		}
		return b, nil
	case *arrayBuilder:
		if b.closed {
			return nil, p.errorf(comp.pos, "cannot extend closed array with key %q", comp.name)
		}
		last, ok := b.last()
		if !ok {
			return nil, p.errorf(comp.pos, "cannot index into an empty array of tables")
		}
		obj, ok := asObject(last)
		if !ok {
			return nil, p.errorf(comp.pos, "path %q does not lead to a table", comp.name)
		}
		return obj, nil
	default:
		return nil, p.errorf(comp.pos, "key %q is not a table", comp.name)
	}
}

// --- value parsing -----------------------------------------------------------

// parseValue dispatches on the current lookahead token's type to build one scalar, array or
// inline table. `next` is the lexer start-state to resume with once this value is fully consumed;
// it comes from the caller's own context (end of a top-level statement, after an array element, or
// after an inline-table pair), since that is the one thing a value itself cannot know.
func (p *parser) parseValue(next state) (builder, error) {
	tok := p.peekTok()

	switch tok.Typ {
	case TokenString:
		if _, err := p.poll(next); err != nil {
			return nil, err
		}
		return &scalarBuilder{value: newStringValue(tok.Value)}, nil
	case TokenTrue, TokenFalse:
		if _, err := p.poll(next); err != nil {
			return nil, err
		}
		return &scalarBuilder{value: newBoolValue(tok.Typ == TokenTrue)}, nil
	case TokenOffsetDateTime, TokenLocalDateTime, TokenLocalDate, TokenLocalTime:
		if _, err := p.poll(next); err != nil {
			return nil, err
		}
		return &scalarBuilder{value: newStringValue(tok.Value)}, nil
	case TokenInteger:
		n, err := decodeInteger(tok.Value)
		if err != nil {
			return nil, p.wrapNumberError(tok.Pos, err)
		}
		if _, err := p.poll(next); err != nil {
			return nil, err
		}
		return &scalarBuilder{value: newNumberValue(n)}, nil
	case TokenFloat:
		n, err := decodeFloat(tok.Value)
		if err != nil {
			return nil, p.wrapNumberError(tok.Pos, err)
		}
		if _, err := p.poll(next); err != nil {
			return nil, err
		}
		return &scalarBuilder{value: newNumberValue(n)}, nil
	case TokenArrayOpen:
		return p.parseArray(next)
	case TokenInlineTableOpen:
		return p.parseInlineTable(next)
	default:
		return nil, p.errorf(tok.Pos, "expected a value, found %v", tok.Typ)
	}
}

func (p *parser) wrapNumberError(pos Position, cause error) error {
	return newParseErrorWrap(p.input, pos, cause, "invalid number representation")
}

// parseArray parses an inline array literal; `next` is the state to resume with once its closing
// `]` is consumed.
func (p *parser) parseArray(next state) (builder, error) {
	if _, err := p.poll(stateExpectValue); err != nil {
		return nil, err
	}

	arr := newArrayBuilder()
	if p.peekTok().Typ == TokenArrayClose {
		if _, err := p.poll(next); err != nil {
			return nil, err
		}
		arr.closed = true
		return arr, nil
	}

	for {
		elem, err := p.parseValue(stateExpectArraySep)
		if err != nil {
			return nil, err
		}
		arr.append(elem)

		switch p.peekTok().Typ {
		case TokenComma:
			if _, err := p.poll(stateExpectValue); err != nil {
				return nil, err
			}
			if p.peekTok().Typ == TokenArrayClose {
				if _, err := p.poll(next); err != nil {
					return nil, err
				}
				arr.closed = true
				return arr, nil
			}
		case TokenArrayClose:
			if _, err := p.poll(next); err != nil {
				return nil, err
			}
			arr.closed = true
			return arr, nil
		default:
			tok := p.peekTok()
			return nil, p.errorf(tok.Pos, "expected ',' or ']' in array, found %v", tok.Typ)
		}
	}
}

// parseInlineTable parses an inline table literal `{ k = v, ... }`; `next` is the state to resume
// with once its closing `}` is consumed. A trailing comma is rejected here, unlike in an array.
func (p *parser) parseInlineTable(next state) (builder, error) {
	if _, err := p.poll(stateExpectInlineKey); err != nil {
		return nil, err
	}

	obj := newObjectBuilder()
	obj.defined = true

	if p.peekTok().Typ == TokenInlineTableClose {
		if _, err := p.poll(next); err != nil {
			return nil, err
		}
		obj.closed = true
		return obj, nil
	}

	for {
		target, leaf, err := p.walkDottedKey(obj, false)
		if err != nil {
			return nil, err
		}

		if _, exists := target.get(leaf.name); exists {
			return nil, p.errorf(leaf.pos, "duplicate key %q", leaf.name)
		}

		if _, err := p.pollExpected(TokenKeyValSep, stateExpectValue); err != nil {
			return nil, err
		}

		value, err := p.parseValue(stateExpectTableSep)
		if err != nil {
			return nil, err
		}
		target.set(leaf.name, value)

		switch p.peekTok().Typ {
		case TokenComma:
			tok := p.peekTok()
			if _, err := p.poll(stateExpectInlineKey); err != nil {
				return nil, err
			}
			if p.peekTok().Typ == TokenInlineTableClose {
				return nil, p.errorf(tok.Pos, "trailing comma not permitted for inline tables")
			}
		case TokenInlineTableClose:
			if _, err := p.poll(next); err != nil {
				return nil, err
			}
			obj.closed = true
			return obj, nil
		default:
			tok := p.peekTok()
			return nil, p.errorf(tok.Pos, "expected ',' or '}' in inline table, found %v", tok.Typ)
		}
	}
}
