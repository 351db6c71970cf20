package namedvars

import (
	"fmt"
	"reflect"

	"github.com/apstndb/namedvars/parser"
)

// Var is the type-erased view of a Variable, as returned by Scope lookups.
// Use As to recover the typed Variable.
type Var interface {
	Name() string
	Type() reflect.Type
	Kind() Kind
	Description() string
	Scope() *Scope

	// CanParse reports whether ParseAndSet is supported.
	CanParse() bool

	// ReadOnly reports whether every Set is rejected.
	ReadOnly() bool

	GetAny() (any, error)

	// SetAny sets the value after checking its dynamic type against Type.
	// A nil x is accepted when the declared type can hold nil.
	SetAny(x any) error

	ParseAndSet(s string) error

	// Text renders the current value in its canonical text form.
	Text() (string, error)

	String() string
}

// Variable is a named, typed handle over one storage location.
type Variable[T any] struct {
	name        string
	typ         reflect.Type
	description string
	scope       *Scope
	parser      parser.Parser[T]
	value       Value[T]
}

var _ Var = (*Variable[int])(nil)

func (v *Variable[T]) Name() string        { return v.name }
func (v *Variable[T]) Type() reflect.Type  { return v.typ }
func (v *Variable[T]) Kind() Kind          { return v.value.Kind() }
func (v *Variable[T]) Description() string { return v.description }
func (v *Variable[T]) Scope() *Scope       { return v.scope }
func (v *Variable[T]) CanParse() bool      { return v.parser != nil }

// Parser returns the parser resolved at creation, or nil.
func (v *Variable[T]) Parser() parser.Parser[T] { return v.parser }

func (v *Variable[T]) ReadOnly() bool {
	f, ok := v.value.(*Functional[T])
	return ok && f.ReadOnly()
}

// Get returns the current value.
func (v *Variable[T]) Get() (T, error) {
	x, err := v.value.Get()
	if err != nil {
		return x, withName(v.name, err)
	}
	return x, nil
}

// Set writes x through the value strategy without further validation.
func (v *Variable[T]) Set(x T) error {
	if err := v.value.Set(x); err != nil {
		return withName(v.name, err)
	}
	return nil
}

// ParseAndSet converts s with the variable's parser and sets the result.
// The value is left untouched when s cannot be parsed.
func (v *Variable[T]) ParseAndSet(s string) error {
	if v.parser == nil {
		return &ErrUnsupportedParse{Name: v.name, Type: v.typ}
	}

	x, err := v.parser.Parse(s)
	if err != nil {
		return fmt.Errorf("%s: %w", v.name, err)
	}
	return v.Set(x)
}

func (v *Variable[T]) GetAny() (any, error) {
	x, err := v.Get()
	if err != nil {
		return nil, err
	}
	return x, nil
}

func (v *Variable[T]) SetAny(x any) error {
	if x == nil {
		if !nilable(v.typ) {
			return &ErrTypeMismatch{Name: v.name, Declared: v.typ}
		}
		var zero T
		return v.Set(zero)
	}

	tx, ok := x.(T)
	if !ok {
		return &ErrTypeMismatch{Name: v.name, Declared: v.typ, Requested: reflect.TypeOf(x)}
	}
	return v.Set(tx)
}

func (v *Variable[T]) Text() (string, error) {
	x, err := v.Get()
	if err != nil {
		return "", err
	}
	return parser.Format(x), nil
}

// String returns the text form of the current value, or "<err>" when it cannot be read.
func (v *Variable[T]) String() string {
	s, err := v.Text()
	if err != nil {
		return "<err>"
	}
	return s
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}

// VarOption configures a variable at registration.
type VarOption func(*varOptions)

type varOptions struct {
	description string
}

// WithDescription attaches a human readable description.
func WithDescription(desc string) VarOption {
	return func(o *varOptions) {
		o.description = desc
	}
}
