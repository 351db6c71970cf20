package parser

import (
	"errors"
	"fmt"
	"reflect"
)

// Parser converts a string value to type T.
type Parser[T any] interface {
	// Parse returns an error if the string cannot be converted.
	Parse(value string) (T, error)
}

// BaseParser provides a foundation for implementing parsers from a function.
type BaseParser[T any] struct {
	ParseFunc func(string) (T, error)
}

// Parse implements the Parser interface.
func (p *BaseParser[T]) Parse(value string) (T, error) {
	if p.ParseFunc == nil {
		var zero T
		return zero, fmt.Errorf("parse function not implemented")
	}
	return p.ParseFunc(value)
}

// Func adapts an ordinary function to a Parser.
// Errors that are not already *ErrFormat are wrapped into one.
func Func[T any](fn func(string) (T, error)) Parser[T] {
	return &BaseParser[T]{ParseFunc: formatErrors(fn)}
}

// formatErrors wraps conversion failures of fn into *ErrFormat for type T.
func formatErrors[T any](fn func(string) (T, error)) func(string) (T, error) {
	typ := reflect.TypeFor[T]()
	return func(value string) (T, error) {
		v, err := fn(value)
		if err == nil {
			return v, nil
		}

		var zero T
		var formatErr *ErrFormat
		if errors.As(err, &formatErr) {
			return zero, err
		}
		return zero, newFormatError(typ, value, err)
	}
}

// TransformParser transforms the output of one parser into another type.
type TransformParser[T, U any] struct {
	BaseParser[U]
	innerParser Parser[T]
	transform   func(T) (U, error)
}

// NewTransformParser creates a parser that transforms values from type T to type U.
func NewTransformParser[T, U any](innerParser Parser[T], transform func(T) (U, error)) *TransformParser[T, U] {
	p := &TransformParser[T, U]{
		innerParser: innerParser,
		transform:   transform,
	}

	p.BaseParser = BaseParser[U]{
		ParseFunc: formatErrors(func(s string) (U, error) {
			var zero U
			value, err := innerParser.Parse(s)
			if err != nil {
				return zero, err
			}
			return transform(value)
		}),
	}

	return p
}

// WithTransform creates a new parser that transforms the output of an existing parser.
func WithTransform[T, U any](parser Parser[T], transform func(T) (U, error)) Parser[U] {
	return NewTransformParser(parser, transform)
}
