package namedvars

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/apstndb/namedvars/parser"
)

// Scope is a registry of uniquely named variables sharing one parser resolver.
//
// All Scope methods are safe for concurrent use. The variables themselves are not
// synchronized.
type Scope struct {
	vars     map[string]Var
	resolver parser.Resolver
	logger   *zap.Logger
	mu       sync.RWMutex
}

// ScopeOption configures a Scope.
type ScopeOption func(*Scope)

// WithResolver replaces the default parser resolver.
func WithResolver(r parser.Resolver) ScopeOption {
	return func(s *Scope) {
		s.resolver = r
	}
}

// WithLogger sets the logger used for registration diagnostics.
func WithLogger(l *zap.Logger) ScopeOption {
	return func(s *Scope) {
		s.logger = l
	}
}

// NewScope creates an empty scope.
func NewScope(opts ...ScopeOption) *Scope {
	s := &Scope{
		vars:     make(map[string]Var),
		resolver: parser.Default(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.resolver == nil {
		s.resolver = parser.Default()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Resolver returns the resolver supplied to new variables.
func (s *Scope) Resolver() parser.Resolver {
	return s.resolver
}

// Create registers a variable that owns its value, starting at initial.
func Create[T any](s *Scope, name string, initial T, opts ...VarOption) (*Variable[T], error) {
	return Register[T](s, name, NewStored(initial), opts...)
}

// Func registers a variable backed by get and set. A nil set makes it read-only.
func Func[T any](s *Scope, name string, get func() T, set func(T), opts ...VarOption) (*Variable[T], error) {
	return Register[T](s, name, NewFunctional(get, set), opts...)
}

// Register adds a variable backed by value. The parser for T is resolved
// through the scope's resolver; T without a parser is still registered but
// rejects ParseAndSet.
//
// If the name is taken the scope is left unchanged and *ErrDuplicateName is returned.
func Register[T any](s *Scope, name string, value Value[T], opts ...VarOption) (*Variable[T], error) {
	v, err := newVariable(s, name, value, opts)
	if err != nil {
		return nil, err
	}
	if err := s.insert(v); err != nil {
		return nil, err
	}
	return v, nil
}

func newVariable[T any](s *Scope, name string, value Value[T], opts []VarOption) (*Variable[T], error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ErrInvalidName{Name: name}
	}
	if value == nil {
		return nil, fmt.Errorf("%s: nil value", name)
	}
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, fmt.Errorf("%s: nil %T", name, value)
	}

	var o varOptions
	for _, opt := range opts {
		opt(&o)
	}

	// p is nil when the resolver has no parser for T.
	p, _, err := parser.Resolve[T](s.resolver)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return &Variable[T]{
		name:        name,
		typ:         reflect.TypeFor[T](),
		description: o.description,
		scope:       s,
		parser:      p,
		value:       value,
	}, nil
}

// insert adds vars under one lock. Either every variable is added or, when any
// name is taken or repeated, none is.
func (s *Scope) insert(vars ...Var) error {
	var errs []error
	seen := make(map[string]bool, len(vars))

	s.mu.Lock()
	for _, v := range vars {
		if _, exists := s.vars[v.Name()]; exists || seen[v.Name()] {
			errs = append(errs, &ErrDuplicateName{Name: v.Name()})
		}
		seen[v.Name()] = true
	}
	if len(errs) == 0 {
		for _, v := range vars {
			s.vars[v.Name()] = v
		}
	}
	s.mu.Unlock()

	if len(errs) > 0 {
		for _, err := range errs {
			s.logger.Warn("duplicate variable rejected", zap.String("name", err.(*ErrDuplicateName).Name))
		}
		if len(errs) == 1 {
			return errs[0]
		}
		return errors.Join(errs...)
	}

	for _, v := range vars {
		s.logger.Debug("variable registered",
			zap.String("name", v.Name()),
			zap.Stringer("type", v.Type()),
			zap.Stringer("kind", v.Kind()),
			zap.Bool("parseable", v.CanParse()),
		)
	}
	return nil
}

// Lookup returns the variable registered under name.
func (s *Scope) Lookup(name string) (Var, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.vars[name]
	return v, ok
}

// Has reports whether a variable is registered under name.
func (s *Scope) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// As recovers the typed variable behind v.
func As[T any](v Var) (*Variable[T], error) {
	if v == nil {
		return nil, &ErrUnknownVariable{}
	}

	tv, ok := v.(*Variable[T])
	if !ok {
		err := &ErrTypeMismatch{Name: v.Name(), Declared: v.Type(), Requested: reflect.TypeFor[T]()}
		if sc := v.Scope(); sc != nil {
			sc.logger.Debug("checked cast failed", zap.Error(err))
		}
		return nil, err
	}
	return tv, nil
}

// LookupAs looks up name and casts it to *Variable[T].
func LookupAs[T any](s *Scope, name string) (*Variable[T], error) {
	v, ok := s.Lookup(name)
	if !ok {
		return nil, &ErrUnknownVariable{Name: name}
	}
	return As[T](v)
}

// All iterates over a snapshot of the variables, sorted by name.
// Variables registered during iteration are not visited.
func (s *Scope) All() iter.Seq[Var] {
	s.mu.RLock()
	snapshot := lo.Values(s.vars)
	s.mu.RUnlock()

	slices.SortFunc(snapshot, func(a, b Var) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return slices.Values(snapshot)
}

// Names returns the sorted variable names.
func (s *Scope) Names() []string {
	s.mu.RLock()
	names := lo.Keys(s.vars)
	s.mu.RUnlock()

	slices.Sort(names)
	return names
}

// Len returns the number of registered variables.
func (s *Scope) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vars)
}
