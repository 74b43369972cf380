package toml

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// builder is the mutable tree node the parser assembles while reading tokens. A final, immutable
// [Value] tree is only materialized once parsing succeeds: a tagged-variant builder tracks what
// has already been declared, while parsing, so redefinition can be detected inline during the
// single parse pass rather than as a second pass over a finished tree.
type builder interface {
	finalize() *Value
}

// objectBuilder backs both top-level tables and inline tables. defined marks a table as having
// been explicitly introduced by a `[header]` or used as a dotted-key assignment prefix, as opposed
// to merely auto-vivified while walking a dotted path; this is what lets the parser tell a
// redefinition (error) apart from a later explicit header for an implicitly-created table (legal).
// closed marks an inline table as sealed: no further mutation is permitted via any path once its
// closing `}` has been read.
type objectBuilder struct {
	order   []string
	entries map[string]builder
	defined bool
	closed  bool
}

func newObjectBuilder() *objectBuilder {
	return &objectBuilder{entries: make(map[string]builder)}
}

func (o *objectBuilder) get(key string) (builder, bool) {
	b, ok := o.entries[key]
	return b, ok
}

func (o *objectBuilder) set(key string, b builder) {
	if _, exists := o.entries[key]; !exists {
		o.order = append(o.order, key)
	}
	o.entries[key] = b
}

func (o *objectBuilder) finalize() *Value {
	om := orderedmap.New[string, *Value]()
	for _, key := range o.order {
		om.Set(key, o.entries[key].finalize())
	}
	return newObjectValue(om)
}

// arrayBuilder backs both inline array literals and arrays of tables. closed is set once an
// inline array literal's closing `]` is read; arrays of tables are deliberately never closed, so
// successive `[[header]]` statements can keep appending elements throughout the parse.
type arrayBuilder struct {
	elems  []builder
	closed bool
}

func newArrayBuilder() *arrayBuilder {
	return &arrayBuilder{}
}

func (a *arrayBuilder) append(b builder) {
	a.elems = append(a.elems, b)
}

// last returns the most recently appended element, the node a dotted path through an
// array-of-tables resolves to.
func (a *arrayBuilder) last() (builder, bool) {
	if len(a.elems) == 0 {
		return nil, false
	}
	return a.elems[len(a.elems)-1], true
}

func (a *arrayBuilder) finalize() *Value {
	elems := make([]*Value, len(a.elems))
	for i, e := range a.elems {
		elems[i] = e.finalize()
	}
	return newArrayValue(elems)
}

// scalarBuilder wraps a finished leaf value (string, bool, number). Scalars never become tables:
// setting a key twice against one always errors rather than silently upgrading a scalar in place.
type scalarBuilder struct {
	value *Value
}

func (s *scalarBuilder) finalize() *Value {
	return s.value
}

// asObject type-asserts b as an *objectBuilder, used to detect when a path resolves to a scalar or
// an array instead of a table. It does not check the closed flag.
func asObject(b builder) (*objectBuilder, bool) {
	o, ok := b.(*objectBuilder)
	return o, ok
}

func asArray(b builder) (*arrayBuilder, bool) {
	a, ok := b.(*arrayBuilder)
	return a, ok
}
