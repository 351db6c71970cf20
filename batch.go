package namedvars

import (
	"errors"
	"slices"
)

var errBatchCommitted = errors.New("batch already committed")

// Batch collects variables that are registered together by Commit.
// A Batch is not safe for concurrent use.
type Batch struct {
	scope     *Scope
	vars      []Var
	committed bool
}

// NewBatch starts a batch of registrations into s.
func (s *Scope) NewBatch() *Batch {
	return &Batch{scope: s}
}

// Stage prepares a variable backed by value for registration by b.Commit.
// It checks the name and resolves the parser as Register does, but the
// variable is not visible in the scope until the batch is committed.
func Stage[T any](b *Batch, name string, value Value[T], opts ...VarOption) (*Variable[T], error) {
	if b.committed {
		return nil, errBatchCommitted
	}
	v, err := newVariable(b.scope, name, value, opts)
	if err != nil {
		return nil, err
	}
	b.vars = append(b.vars, v)
	return v, nil
}

// Len returns the number of staged variables.
func (b *Batch) Len() int {
	return len(b.vars)
}

// Commit registers every staged variable or none of them. A name that is
// already registered, or staged twice, fails the whole batch with
// *ErrDuplicateName (joined when there are several) and leaves the scope
// unchanged. A failed batch may be committed again.
func (b *Batch) Commit() ([]Var, error) {
	if b.committed {
		return nil, errBatchCommitted
	}
	if err := b.scope.insert(b.vars...); err != nil {
		return nil, err
	}
	b.committed = true
	return slices.Clone(b.vars), nil
}
