package parser

import (
	"strings"
)

// Null is the text form of an absent value.
const Null = "NULL"

// NullableParser wraps a parser to handle absent values.
// It converts "" and NULL (case-insensitive) to a nil pointer.
type NullableParser[T any] struct {
	base Parser[T]
}

// Nullable creates a parser that can handle absent values.
func Nullable[T any](base Parser[T]) *NullableParser[T] {
	return &NullableParser[T]{base: base}
}

// Parse parses the value, returning nil for absent input.
func (p *NullableParser[T]) Parse(value string) (*T, error) {
	if IsNull(value) {
		return nil, nil
	}

	v, err := p.base.Parse(value)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// IsNull reports whether value denotes an absent value.
// Surrounding whitespace is not ignored.
func IsNull(value string) bool {
	return value == "" || strings.EqualFold(value, Null)
}
