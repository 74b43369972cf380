package toml

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// decodeInteger converts an INTEGER token's text into a [Number], choosing the narrowest
// representation that can hold it: 32-bit, then 64-bit, then arbitrary precision, based on the
// effective digit count and base. The lexer has already confirmed the shape is one of: an
// optionally-signed decimal run, or an unsigned 0x/0o/0b run.
func decodeInteger(text string) (Number, error) {
	base := 10
	digits := text
	signless := text

	switch {
	case strings.HasPrefix(text, "0x"):
		base, digits, signless = 16, text[2:], text[2:]
	case strings.HasPrefix(text, "0o"):
		base, digits, signless = 8, text[2:], text[2:]
	case strings.HasPrefix(text, "0b"):
		base, digits, signless = 2, text[2:], text[2:]
	default:
		signless = strings.TrimPrefix(strings.TrimPrefix(text, "+"), "-")
	}

	digits = strings.ReplaceAll(digits, "_", "")
	signless = strings.ReplaceAll(signless, "_", "")
	l := len(signless)

	switch base {
	case 16:
		return decodeIntegerBase(digits, 16, widthForHex(l))
	case 8:
		return decodeIntegerBase(digits, 8, widthForOctal(l))
	case 2:
		return decodeIntegerBase(digits, 2, widthForBinary(l))
	default:
		return decodeDecimalInteger(strings.ReplaceAll(text, "_", ""), l)
	}
}

type intWidth int

const (
	width32 intWidth = iota
	width64
	widthBig
)

func widthForHex(l int) intWidth {
	switch {
	case l <= 7:
		return width32
	case l <= 15:
		return width64
	default:
		return widthBig
	}
}

func widthForOctal(l int) intWidth {
	switch {
	case l <= 10:
		return width32
	case l <= 21:
		return width64
	default:
		return widthBig
	}
}

func widthForBinary(l int) intWidth {
	switch {
	case l <= 31:
		return width32
	case l <= 63:
		return width64
	default:
		return widthBig
	}
}

// decodeIntegerBase parses an unsigned run of `digits` in the given base, promoting to the width
// the digit count already determined.
func decodeIntegerBase(digits string, base int, w intWidth) (Number, error) {
	if w == widthBig {
		bi, ok := new(big.Int).SetString(digits, base)
		if !ok {
			return Number{}, invalidNumberError(digits)
		}
		return Number{Kind: NumberBigInt, Big: bi}, nil
	}

	bits := 32
	if w == width64 {
		bits = 64
	}

	v, err := strconv.ParseUint(digits, base, bits)
	if err != nil {
		return Number{}, invalidNumberErrorWrap(digits, err)
	}

	if w == width64 {
		return Number{Kind: NumberInt64, I64: int64(v)}, nil
	}
	return Number{Kind: NumberInt32, I32: int32(v)}, nil
}

// decodeDecimalInteger parses a signed decimal integer. A decimal literal with <= 18 effective
// digits that was classified 64-bit is downgraded to 32-bit if its value still fits.
func decodeDecimalInteger(text string, l int) (Number, error) {
	switch {
	case l <= 9:
		v, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return Number{}, invalidNumberErrorWrap(text, err)
		}
		return Number{Kind: NumberInt32, I32: int32(v)}, nil
	case l <= 18:
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Number{}, invalidNumberErrorWrap(text, err)
		}
		if v >= -(1<<31) && v <= (1<<31-1) {
			return Number{Kind: NumberInt32, I32: int32(v)}, nil
		}
		return Number{Kind: NumberInt64, I64: v}, nil
	default:
		bi, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return Number{}, invalidNumberError(text)
		}
		return Number{Kind: NumberBigInt, Big: bi}, nil
	}
}

// decodeFloat converts a FLOAT token's text into a [Number]: strip underscores, recognize the
// nan/inf keywords, and otherwise parse an arbitrary-precision decimal rather than a binary
// float64, so round-tripping a float literal never loses precision to IEEE-754 rounding.
func decodeFloat(text string) (Number, error) {
	stripped := strings.ReplaceAll(text, "_", "")

	switch {
	case strings.HasSuffix(stripped, "nan"):
		return Number{Kind: NumberFloat, Special: FloatNaN}, nil
	case stripped == "inf" || stripped == "+inf":
		return Number{Kind: NumberFloat, Special: FloatPosInf}, nil
	case stripped == "-inf":
		return Number{Kind: NumberFloat, Special: FloatNegInf}, nil
	}

	dec, err := decimal.NewFromString(stripped)
	if err != nil {
		return Number{}, invalidNumberErrorWrap(text, err)
	}
	return Number{Kind: NumberFloat, Dec: dec}, nil
}

// numberError wraps a failed digit-to-value conversion; the parser attaches position/snippet
// context (it alone knows where in the input the offending token was) via errors.Unwrap.
type numberError struct {
	text  string
	cause error
}

func (e *numberError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("invalid number representation %q: %v", e.text, e.cause)
	}
	return fmt.Sprintf("invalid number representation %q", e.text)
}

func (e *numberError) Unwrap() error {
	return e.cause
}

func invalidNumberError(text string) error {
	return &numberError{text: text}
}

func invalidNumberErrorWrap(text string, cause error) error {
	return &numberError{text: text, cause: cause}
}
