package namedvars

import (
	"errors"
	"fmt"
	"reflect"
)

// Common errors for value access
var (
	// ErrNilSlot is reported through *ErrAccess when a reference locates no storage.
	ErrNilSlot = errors.New("storage slot is nil")

	// ErrReadOnly is reported through *ErrAccess when a functional value has no setter.
	ErrReadOnly = errors.New("variable is read-only")
)

// Error types for proper error handling with errors.Is/As
type (
	// ErrDuplicateName is returned when a scope already holds a variable with the name.
	ErrDuplicateName struct {
		Name string
	}

	// ErrInvalidName is returned when a variable name is empty.
	ErrInvalidName struct {
		Name string
	}

	// ErrUnknownVariable is returned when a variable name is not recognized
	ErrUnknownVariable struct {
		Name string
	}

	// ErrUnsupportedParse is returned by ParseAndSet when no parser exists for the
	// variable's type.
	ErrUnsupportedParse struct {
		Name string
		Type reflect.Type
	}

	// ErrTypeMismatch is returned by checked casts and SetAny.
	ErrTypeMismatch struct {
		Name      string
		Declared  reflect.Type
		Requested reflect.Type
	}

	// ErrAccess is returned when a value's storage cannot be read or written.
	ErrAccess struct {
		Name string
		Op   string // "read" or "write"
		Err  error
	}
)

func (e *ErrDuplicateName) Error() string {
	return fmt.Sprintf("variable %s already registered", e.Name)
}

func (e *ErrInvalidName) Error() string {
	return fmt.Sprintf("invalid variable name: %q", e.Name)
}

func (e *ErrUnknownVariable) Error() string {
	return fmt.Sprintf("unknown variable: %s", e.Name)
}

func (e *ErrUnsupportedParse) Error() string {
	return fmt.Sprintf("%s: parsing %v is not supported", e.Name, e.Type)
}

func (e *ErrTypeMismatch) Error() string {
	return fmt.Sprintf("%s: declared as %v, not %v", e.Name, e.Declared, e.Requested)
}

func (e *ErrAccess) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s failed: %v", e.Name, e.Op, e.Err)
}

func (e *ErrAccess) Unwrap() error {
	return e.Err
}

// withName fills in the variable name on an access error raised by a value
// that does not know which variable it backs.
func withName(name string, err error) error {
	var accessErr *ErrAccess
	if errors.As(err, &accessErr) && accessErr.Name == "" {
		return &ErrAccess{Name: name, Op: accessErr.Op, Err: accessErr.Err}
	}
	return err
}
