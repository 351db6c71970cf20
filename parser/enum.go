package parser

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Enum is a type whose values render as distinct names.
type Enum interface {
	comparable
	fmt.Stringer
}

// EnumParser parses names into enum values.
// Names are the String() form of each value, snapshotted when the parser is built.
type EnumParser[T Enum] struct {
	BaseParser[T]
	values        map[string]T
	caseSensitive bool
}

// FromEnum creates a parser for the given enum values.
// When caseSensitive is false, names are matched ignoring letter case.
func FromEnum[T Enum](values []T, caseSensitive bool) *EnumParser[T] {
	p := &EnumParser[T]{
		values:        make(map[string]T, len(values)),
		caseSensitive: caseSensitive,
	}
	for _, v := range values {
		p.values[p.key(v.String())] = v
	}

	p.BaseParser = BaseParser[T]{
		ParseFunc: p.parseEnum,
	}
	return p
}

func (p *EnumParser[T]) key(name string) string {
	if p.caseSensitive {
		return name
	}
	return strings.ToLower(name)
}

func (p *EnumParser[T]) parseEnum(value string) (T, error) {
	if result, ok := p.values[p.key(value)]; ok {
		return result, nil
	}

	names := lo.MapToSlice(p.values, func(_ string, v T) string { return v.String() })
	slices.Sort(names)

	var zero T
	return zero, &ErrFormat{
		Type:  reflect.TypeFor[T](),
		Input: value,
		Err:   fmt.Errorf("must be one of: %s", strings.Join(names, ", ")),
	}
}

// EnumRule is a Rule resolving T to an enum parser over values.
func EnumRule[T Enum](values []T, caseSensitive bool) Rule {
	return For[T](FromEnum(values, caseSensitive))
}
