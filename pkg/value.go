package toml

import (
	"math/big"

	"github.com/shopspring/decimal"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind discriminates the variant held by a [Value]. TOML has no null, so every Kind other than
// Array/Object carries a concrete scalar.
type Kind uint8

const (
	KindString Kind = iota
	KindBool
	KindNumber
	KindArray
	KindObject
)

// Value is the immutable result of a parse: a tree of string, bool, number, array and object
// nodes. Object keys retain the order they were first set in; array elements retain parse order.
type Value struct {
	Kind Kind

	str     string
	boolean bool
	num     Number
	arr     []*Value
	obj     *orderedmap.OrderedMap[string, *Value]
}

// NumberKind discriminates the representation chosen by the integer/float width-promotion rules.
type NumberKind uint8

const (
	NumberInt32 NumberKind = iota
	NumberInt64
	NumberBigInt
	NumberFloat
)

// FloatSpecial marks the IEEE-754 special values a [decimal.Decimal] cannot itself represent.
type FloatSpecial uint8

const (
	FloatFinite FloatSpecial = iota
	FloatNaN
	FloatPosInf
	FloatNegInf
)

// Number is the tagged union backing [KindNumber] values: a 32-bit int, a 64-bit int, an
// arbitrary-precision int, or an arbitrary-precision decimal (itself possibly a special float
// value that decimal.Decimal cannot hold).
type Number struct {
	Kind    NumberKind
	I32     int32
	I64     int64
	Big     *big.Int
	Dec     decimal.Decimal
	Special FloatSpecial
}

func newStringValue(s string) *Value {
	return &Value{Kind: KindString, str: s}
}

func newBoolValue(b bool) *Value {
	return &Value{Kind: KindBool, boolean: b}
}

func newNumberValue(n Number) *Value {
	return &Value{Kind: KindNumber, num: n}
}

func newArrayValue(elems []*Value) *Value {
	return &Value{Kind: KindArray, arr: elems}
}

func newObjectValue(om *orderedmap.OrderedMap[string, *Value]) *Value {
	return &Value{Kind: KindObject, obj: om}
}

// String returns the scalar string this value holds. The result is meaningless unless
// Kind == KindString; callers are expected to check Kind first.
func (v *Value) String() string {
	return v.str
}

// Bool returns the scalar boolean this value holds.
func (v *Value) Bool() bool {
	return v.boolean
}

// Num returns the scalar number this value holds.
func (v *Value) Num() Number {
	return v.num
}

// Array returns the ordered elements of an array value.
func (v *Value) Array() []*Value {
	return v.arr
}

// Keys returns the insertion-ordered keys of an object value.
func (v *Value) Keys() []string {
	keys := make([]string, 0, v.obj.Len())
	for pair := v.obj.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Get looks up a direct child of an object value.
func (v *Value) Get(key string) (*Value, bool) {
	return v.obj.Get(key)
}

// Flatten walks the tree and returns a dotted-key map of host-native primitives, for consumers
// that want a flat configuration-style view instead of walking the tree themselves.
func (v *Value) Flatten() map[string]any {
	out := make(map[string]any)
	v.flattenInto("", out)
	return out
}

func (v *Value) flattenInto(prefix string, out map[string]any) {
	switch v.Kind {
	case KindObject:
		for pair := v.obj.Oldest(); pair != nil; pair = pair.Next() {
			key := pair.Key
			if prefix != "" {
				key = prefix + "." + key
			}
			pair.Value.flattenInto(key, out)
		}
	case KindArray:
		elems := make([]any, len(v.arr))
		for i, elem := range v.arr {
			elems[i] = elem.flattenScalarOrMap()
		}
		out[prefix] = elems
	default:
		out[prefix] = v.flattenScalarOrMap()
	}
}

// flattenScalarOrMap converts a non-top-level value into a host-native primitive, recursing into
// nested objects/arrays without producing dotted keys of its own (those only apply at the
// top-level walk in Flatten).
func (v *Value) flattenScalarOrMap() any {
	switch v.Kind {
	case KindString:
		return v.str
	case KindBool:
		return v.boolean
	case KindNumber:
		return v.num.native()
	case KindArray:
		elems := make([]any, len(v.arr))
		for i, elem := range v.arr {
			elems[i] = elem.flattenScalarOrMap()
		}
		return elems
	case KindObject:
		m := make(map[string]any)
		for pair := v.obj.Oldest(); pair != nil; pair = pair.Next() {
			m[pair.Key] = pair.Value.flattenScalarOrMap()
		}
		return m
	}
	return nil
}

// native unwraps a Number for Flatten's consumers: an int32, an int64, a *big.Int, a
// decimal.Decimal, or the FloatSpecial marker for NaN/+Inf/-Inf.
func (n Number) native() any {
	switch n.Kind {
	case NumberInt32:
		return n.I32
	case NumberInt64:
		return n.I64
	case NumberBigInt:
		return n.Big
	case NumberFloat:
		switch n.Special {
		case FloatNaN, FloatPosInf, FloatNegInf:
			return n.Special
		default:
			return n.Dec
		}
	}
	return nil
}
