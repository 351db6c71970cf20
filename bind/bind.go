package bind

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/samber/lo"

	"github.com/apstndb/namedvars"
	"github.com/apstndb/namedvars/parser"
)

var (
	// ErrUnsupportedType is reported for tagged fields whose type has no binder.
	ErrUnsupportedType = errors.New("unsupported field type")

	errUnexported = errors.New("field is not exported")
	errNotStruct  = errors.New("target must be a non-nil pointer to a struct")
)

// FieldError describes why a tagged field could not be bound.
type FieldError struct {
	Struct reflect.Type
	Field  string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("bind %v.%s: %v", e.Struct, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// binder stages a variable over the field at addr, which is a pointer to the
// field's type.
type binder func(b *namedvars.Batch, name string, addr any, readOnly bool, opts []namedvars.VarOption) (namedvars.Var, error)

func binderFor[T any]() binder {
	return func(b *namedvars.Batch, name string, addr any, readOnly bool, opts []namedvars.VarOption) (namedvars.Var, error) {
		p := addr.(*T)
		if readOnly {
			return staged(namedvars.Stage(b, name, namedvars.NewFunctional(func() T { return *p }, nil), opts...))
		}
		return staged(namedvars.Stage(b, name, namedvars.RefOf(p), opts...))
	}
}

// staged keeps a failed Stage from turning into a non-nil Var holding a nil pointer.
func staged[T any](v *namedvars.Variable[T], err error) (namedvars.Var, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

func entry[T any]() (reflect.Type, binder) {
	return reflect.TypeFor[T](), binderFor[T]()
}

// builtinBinders covers every type parser.Default handles.
var builtinBinders = func() map[reflect.Type]binder {
	m := make(map[reflect.Type]binder)
	add := func(t reflect.Type, b binder) { m[t] = b }

	add(entry[bool]())
	add(entry[int]())
	add(entry[int8]())
	add(entry[int16]())
	add(entry[int32]())
	add(entry[int64]())
	add(entry[uint]())
	add(entry[uint8]())
	add(entry[uint16]())
	add(entry[uint32]())
	add(entry[uint64]())
	add(entry[float32]())
	add(entry[float64]())
	add(entry[parser.Char]())
	add(entry[string]())
	add(entry[time.Duration]())

	add(entry[*bool]())
	add(entry[*int]())
	add(entry[*int8]())
	add(entry[*int16]())
	add(entry[*int32]())
	add(entry[*int64]())
	add(entry[*uint]())
	add(entry[*uint8]())
	add(entry[*uint16]())
	add(entry[*uint32]())
	add(entry[*uint64]())
	add(entry[*float32]())
	add(entry[*float64]())
	add(entry[*parser.Char]())
	add(entry[*time.Duration]())
	return m
}()

// Option configures Struct.
type Option func(*config)

type config struct {
	binders map[reflect.Type]binder
	prefix  string
}

// WithType allows fields of type T. Their parser comes from the scope's
// resolver, so T usually needs a matching rule there as well.
func WithType[T any]() Option {
	return func(c *config) {
		typ, b := entry[T]()
		c.binders[typ] = b
	}
}

// WithConverter allows fields of type F, exposed as variables of type T.
// Reads convert the field with to and writes store from(value) into it; a nil
// from makes the variables read-only. T needs a parser in the scope's resolver
// to accept ParseAndSet.
func WithConverter[F, T any](to func(F) T, from func(T) F) Option {
	return func(c *config) {
		c.binders[reflect.TypeFor[F]()] = func(b *namedvars.Batch, name string, addr any, readOnly bool, opts []namedvars.VarOption) (namedvars.Var, error) {
			p := addr.(*F)
			var set func(T)
			if from != nil && !readOnly {
				set = func(v T) { *p = from(v) }
			}
			return staged(namedvars.Stage(b, name, namedvars.NewFunctional(func() T { return to(*p) }, set), opts...))
		}
	}
}

// WithPrefix prepends prefix to every bound name.
func WithPrefix(prefix string) Option {
	return func(c *config) {
		c.prefix = prefix
	}
}

type plan struct {
	name     string
	addr     any
	readOnly bool
	bind     binder
	opts     []namedvars.VarOption
}

// Struct registers a variable for every tagged field of the struct pointed to
// by target. Each variable references the field, so changes made through the
// variable are visible in the struct and vice versa.
//
// Registration is all or nothing: if any tagged field is unexported, of an
// unsupported type, or named like another variable, nothing is registered and
// all problems are returned together. This holds under concurrent
// registrations into s.
func Struct(s *namedvars.Scope, target any, opts ...Option) ([]namedvars.Var, error) {
	c := &config{binders: make(map[reflect.Type]binder)}
	for _, opt := range opts {
		opt(c)
	}

	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("bind %T: %w", target, errNotStruct)
	}
	rv = rv.Elem()
	rt := rv.Type()

	var plans []plan
	var errs []error
	for i := range rt.NumField() {
		field := rt.Field(i)
		raw, ok := field.Tag.Lookup(TagKey)
		if !ok {
			continue
		}

		tag, err := ParseTag(raw)
		if err != nil {
			errs = append(errs, &FieldError{Struct: rt, Field: field.Name, Err: err})
			continue
		}
		if tag == nil {
			continue
		}
		if !field.IsExported() {
			errs = append(errs, &FieldError{Struct: rt, Field: field.Name, Err: errUnexported})
			continue
		}

		b, ok := c.binders[field.Type]
		if !ok {
			b, ok = builtinBinders[field.Type]
		}
		if !ok {
			errs = append(errs, &FieldError{Struct: rt, Field: field.Name, Err: fmt.Errorf("%w %v", ErrUnsupportedType, field.Type)})
			continue
		}

		name := c.prefix + lo.Ternary(tag.Name != "", tag.Name, field.Name)
		var varOpts []namedvars.VarOption
		if tag.Description != "" {
			varOpts = append(varOpts, namedvars.WithDescription(tag.Description))
		}
		plans = append(plans, plan{
			name:     name,
			addr:     rv.Field(i).Addr().Interface(),
			readOnly: tag.ReadOnly,
			bind:     b,
			opts:     varOpts,
		})
	}

	dups := lo.FindDuplicatesBy(plans, func(p plan) string { return p.name })
	for _, p := range dups {
		errs = append(errs, &namedvars.ErrDuplicateName{Name: p.name})
	}
	for _, p := range plans {
		if s.Has(p.name) {
			errs = append(errs, &namedvars.ErrDuplicateName{Name: p.name})
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	batch := s.NewBatch()
	for _, p := range plans {
		if _, err := p.bind(batch, p.name, p.addr, p.readOnly, p.opts); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return batch.Commit()
}
