package parser

import (
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Char is a single character value.
// It is distinct from rune, which is an alias of int32 and resolves as an integer.
type Char rune

// String returns the character as a one-rune string.
func (c Char) String() string {
	return string(rune(c))
}

// Signed is the set of signed integer types handled by IntParser.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is the set of unsigned integer types handled by UintParser.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Float is the set of floating point types handled by FloatParser.
type Float interface {
	~float32 | ~float64
}

// BoolParser parses boolean values.
// It uses strconv.ParseBool which accepts:
// "1", "t", "T", "true", "TRUE", "True",
// "0", "f", "F", "false", "FALSE", "False".
type BoolParser struct {
	BaseParser[bool]
}

// NewBoolParser creates a new boolean parser.
func NewBoolParser() *BoolParser {
	return &BoolParser{
		BaseParser: BaseParser[bool]{
			ParseFunc: formatErrors(strconv.ParseBool),
		},
	}
}

// IntParser parses base 10 signed integers, rejecting values that overflow T.
type IntParser[T Signed] struct {
	BaseParser[T]
}

// NewIntParser creates a new signed integer parser.
func NewIntParser[T Signed]() *IntParser[T] {
	bits := reflect.TypeFor[T]().Bits()
	return &IntParser[T]{
		BaseParser: BaseParser[T]{
			ParseFunc: formatErrors(func(value string) (T, error) {
				v, err := strconv.ParseInt(value, 10, bits)
				return T(v), err
			}),
		},
	}
}

// UintParser parses base 10 unsigned integers, rejecting values that overflow T.
type UintParser[T Unsigned] struct {
	BaseParser[T]
}

// NewUintParser creates a new unsigned integer parser.
func NewUintParser[T Unsigned]() *UintParser[T] {
	bits := reflect.TypeFor[T]().Bits()
	return &UintParser[T]{
		BaseParser: BaseParser[T]{
			ParseFunc: formatErrors(func(value string) (T, error) {
				v, err := strconv.ParseUint(value, 10, bits)
				return T(v), err
			}),
		},
	}
}

// FloatParser parses floating point values with the precision of T.
type FloatParser[T Float] struct {
	BaseParser[T]
}

// NewFloatParser creates a new floating point parser.
func NewFloatParser[T Float]() *FloatParser[T] {
	bits := reflect.TypeFor[T]().Bits()
	return &FloatParser[T]{
		BaseParser: BaseParser[T]{
			ParseFunc: formatErrors(func(value string) (T, error) {
				v, err := strconv.ParseFloat(value, bits)
				return T(v), err
			}),
		},
	}
}

// CharParser parses the first character of its input.
// Any characters after the first are ignored, so "AB" parses as 'A'.
type CharParser struct {
	BaseParser[Char]
}

// NewCharParser creates a new character parser.
func NewCharParser() *CharParser {
	return &CharParser{
		BaseParser: BaseParser[Char]{
			ParseFunc: formatErrors(func(value string) (Char, error) {
				if value == "" {
					return 0, errEmptyInput
				}
				r, size := utf8.DecodeRuneInString(value)
				if r == utf8.RuneError && size <= 1 {
					return 0, strconv.ErrSyntax
				}
				return Char(r), nil
			}),
		},
	}
}

// DurationParser parses duration values using time.ParseDuration.
type DurationParser struct {
	BaseParser[time.Duration]
}

// NewDurationParser creates a new duration parser.
func NewDurationParser() *DurationParser {
	return &DurationParser{
		BaseParser: BaseParser[time.Duration]{
			ParseFunc: formatErrors(time.ParseDuration),
		},
	}
}

// StringParser returns its input unchanged and never fails.
type StringParser struct {
	BaseParser[string]
}

// NewStringParser creates a new string parser.
func NewStringParser() *StringParser {
	return &StringParser{
		BaseParser: BaseParser[string]{
			ParseFunc: func(value string) (string, error) {
				return value, nil
			},
		},
	}
}

// Split returns a parser for sep-separated lists.
// Elements are trimmed and empty elements are dropped, so "" yields an empty list.
func Split(sep string) Parser[[]string] {
	return &BaseParser[[]string]{
		ParseFunc: func(value string) ([]string, error) {
			var result []string
			for _, s := range strings.Split(value, sep) {
				if s = strings.TrimSpace(s); s != "" {
					result = append(result, s)
				}
			}
			return result, nil
		},
	}
}
