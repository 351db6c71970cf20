package parser

import (
	"reflect"
	"slices"
	"time"
)

// Resolver maps a type to the parser for it.
type Resolver interface {
	// Match returns a Parser[T] for t == T, boxed as any, or false if t is unsupported.
	Match(t reflect.Type) (any, bool)
}

// Rule pairs a type predicate with the parser used when it holds.
type Rule struct {
	Matches func(t reflect.Type) bool
	Parser  any
}

// For returns a Rule that matches exactly T.
func For[T any](p Parser[T]) Rule {
	typ := reflect.TypeFor[T]()
	return Rule{
		Matches: func(t reflect.Type) bool { return t == typ },
		Parser:  p,
	}
}

// nullableFor returns a Rule that matches exactly *T.
func nullableFor[T any](p Parser[T]) Rule {
	return For[*T](Nullable(p))
}

// Chain is a Resolver that returns the parser of the first matching rule.
type Chain struct {
	rules []Rule
}

// NewChain creates a Chain over rules, consulted in order.
func NewChain(rules ...Rule) *Chain {
	return &Chain{rules: slices.Clone(rules)}
}

// Match implements the Resolver interface.
func (c *Chain) Match(t reflect.Type) (any, bool) {
	for _, r := range c.rules {
		if r.Matches(t) {
			return r.Parser, true
		}
	}
	return nil, false
}

// Rules returns a copy of the rules in precedence order.
func (c *Chain) Rules() []Rule {
	return slices.Clone(c.rules)
}

type extended struct {
	head *Chain
	base Resolver
}

func (e *extended) Match(t reflect.Type) (any, bool) {
	if p, ok := e.head.Match(t); ok {
		return p, true
	}
	return e.base.Match(t)
}

// Extend returns a Resolver that consults rules before base.
// A rule for a type base already supports overrides it.
func Extend(base Resolver, rules ...Rule) Resolver {
	return &extended{head: NewChain(rules...), base: base}
}

var defaultRules = []Rule{
	For[bool](NewBoolParser()),
	For[int](NewIntParser[int]()),
	For[int8](NewIntParser[int8]()),
	For[int16](NewIntParser[int16]()),
	For[int32](NewIntParser[int32]()),
	For[int64](NewIntParser[int64]()),
	For[uint](NewUintParser[uint]()),
	For[uint8](NewUintParser[uint8]()),
	For[uint16](NewUintParser[uint16]()),
	For[uint32](NewUintParser[uint32]()),
	For[uint64](NewUintParser[uint64]()),
	For[float32](NewFloatParser[float32]()),
	For[float64](NewFloatParser[float64]()),
	For[Char](NewCharParser()),

	nullableFor[bool](NewBoolParser()),
	nullableFor[int](NewIntParser[int]()),
	nullableFor[int8](NewIntParser[int8]()),
	nullableFor[int16](NewIntParser[int16]()),
	nullableFor[int32](NewIntParser[int32]()),
	nullableFor[int64](NewIntParser[int64]()),
	nullableFor[uint](NewUintParser[uint]()),
	nullableFor[uint8](NewUintParser[uint8]()),
	nullableFor[uint16](NewUintParser[uint16]()),
	nullableFor[uint32](NewUintParser[uint32]()),
	nullableFor[uint64](NewUintParser[uint64]()),
	nullableFor[float32](NewFloatParser[float32]()),
	nullableFor[float64](NewFloatParser[float64]()),
	nullableFor[Char](NewCharParser()),

	For[string](NewStringParser()),

	For[time.Duration](NewDurationParser()),
	nullableFor[time.Duration](NewDurationParser()),
}

// Default returns the built-in resolver.
func Default() *Chain {
	return NewChain(defaultRules...)
}

// Resolve looks up the parser for T in r.
// A missing parser is reported with ok == false and a nil error;
// a parser of the wrong type is reported as *ErrParserType.
func Resolve[T any](r Resolver) (p Parser[T], ok bool, err error) {
	typ := reflect.TypeFor[T]()
	found, ok := r.Match(typ)
	if !ok {
		return nil, false, nil
	}

	p, ok = found.(Parser[T])
	if !ok {
		return nil, false, &ErrParserType{Type: typ, Parser: found}
	}
	return p, true, nil
}
