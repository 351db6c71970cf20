package parser

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
)

// Error types for proper error handling with errors.Is/As
type (
	// ErrFormat is returned when input text cannot be converted to the target type.
	ErrFormat struct {
		Type  reflect.Type
		Input string
		Err   error
	}

	// ErrParserType is returned when a Resolver hands back a parser for a different type
	// than the one it was asked for.
	ErrParserType struct {
		Type   reflect.Type
		Parser any
	}
)

func (e *ErrFormat) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid %v value %q", e.Type, e.Input)
	}
	return fmt.Sprintf("invalid %v value %q: %v", e.Type, e.Input, e.Err)
}

func (e *ErrFormat) Unwrap() error {
	return e.Err
}

func (e *ErrParserType) Error() string {
	return fmt.Sprintf("resolver returned %T for type %v", e.Parser, e.Type)
}

// errEmptyInput reports text with nothing to convert.
var errEmptyInput = errors.New("empty input")

func newFormatError(typ reflect.Type, input string, err error) *ErrFormat {
	// strconv errors repeat the input; keep only the cause.
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		err = numErr.Err
	}
	return &ErrFormat{Type: typ, Input: input, Err: err}
}
