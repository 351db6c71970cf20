package namedvars

import "errors"

// Kind identifies the storage strategy behind a variable.
type Kind int

const (
	KindStored Kind = iota
	KindFunctional
	KindReference
)

func (k Kind) String() string {
	switch k {
	case KindStored:
		return "stored"
	case KindFunctional:
		return "functional"
	case KindReference:
		return "reference"
	default:
		return "unknown"
	}
}

// Value reads and writes one storage location of type T.
//
// The set of implementations is closed: Stored, Functional and Reference.
type Value[T any] interface {
	Get() (T, error)
	Set(v T) error
	Kind() Kind

	value()
}

var errNoGetter = errors.New("no getter configured")

// Stored owns its value slot.
type Stored[T any] struct {
	v T
}

// NewStored creates a stored value holding initial.
func NewStored[T any](initial T) *Stored[T] {
	return &Stored[T]{v: initial}
}

func (s *Stored[T]) Get() (T, error) { return s.v, nil }

func (s *Stored[T]) Set(v T) error {
	s.v = v
	return nil
}

func (s *Stored[T]) Kind() Kind { return KindStored }

func (*Stored[T]) value() {}

// Functional delegates to caller supplied closures and owns nothing.
// Panics raised by the closures propagate to the caller.
type Functional[T any] struct {
	get func() T
	set func(T)
}

// NewFunctional creates a functional value. A nil set makes the value read-only.
func NewFunctional[T any](get func() T, set func(T)) *Functional[T] {
	return &Functional[T]{get: get, set: set}
}

func (f *Functional[T]) Get() (T, error) {
	if f.get == nil {
		var zero T
		return zero, &ErrAccess{Op: "read", Err: errNoGetter}
	}
	return f.get(), nil
}

func (f *Functional[T]) Set(v T) error {
	if f.set == nil {
		return &ErrAccess{Op: "write", Err: ErrReadOnly}
	}
	f.set(v)
	return nil
}

func (f *Functional[T]) Kind() Kind { return KindFunctional }

// ReadOnly reports whether the value has no setter.
func (f *Functional[T]) ReadOnly() bool { return f.set == nil }

func (*Functional[T]) value() {}

// Reference accesses a slot owned by someone else.
// The slot is located again on every access; nothing is cached.
type Reference[T any] struct {
	locate func() (*T, error)
}

// NewReference creates a reference whose slot is found by locate.
func NewReference[T any](locate func() (*T, error)) *Reference[T] {
	return &Reference[T]{locate: locate}
}

// RefOf creates a reference to the fixed slot p.
func RefOf[T any](p *T) *Reference[T] {
	return NewReference(func() (*T, error) { return p, nil })
}

func (r *Reference[T]) Get() (T, error) {
	p, err := r.slot("read")
	if err != nil {
		var zero T
		return zero, err
	}
	return *p, nil
}

func (r *Reference[T]) Set(v T) error {
	p, err := r.slot("write")
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (r *Reference[T]) slot(op string) (*T, error) {
	if r.locate == nil {
		return nil, &ErrAccess{Op: op, Err: ErrNilSlot}
	}
	p, err := r.locate()
	if err != nil {
		return nil, &ErrAccess{Op: op, Err: err}
	}
	if p == nil {
		return nil, &ErrAccess{Op: op, Err: ErrNilSlot}
	}
	return p, nil
}

func (r *Reference[T]) Kind() Kind { return KindReference }

func (*Reference[T]) value() {}
