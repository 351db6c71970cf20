package bind_test

import (
	"slices"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apstndb/namedvars"
	"github.com/apstndb/namedvars/bind"
	"github.com/apstndb/namedvars/parser"
)

type settings struct {
	Retries  int            `namedvar:"name=retries,desc='Attempts per request'"`
	Timeout  time.Duration  `namedvar:""`
	Ratio    *float64       `namedvar:"name=ratio"`
	Initial  parser.Char    `namedvar:"name=initial"`
	Build    string         `namedvar:"name=build,readonly"`
	Scratch  string         `namedvar:"-"`
	Untagged bool
}

func TestStruct(t *testing.T) {
	st := &settings{Retries: 3, Timeout: time.Second, Build: "abc123"}
	s := namedvars.NewScope()

	vars, err := bind.Struct(s, st)
	require.NoError(t, err)

	names := lo.Map(vars, func(v namedvars.Var, _ int) string { return v.Name() })
	assert.Equal(t, []string{"retries", "Timeout", "ratio", "initial", "build"}, names)
	assert.Equal(t, []string{"Timeout", "build", "initial", "ratio", "retries"}, s.Names())

	retries, ok := s.Lookup("retries")
	require.True(t, ok)
	assert.Equal(t, "Attempts per request", retries.Description())
	assert.Equal(t, namedvars.KindReference, retries.Kind())

	t.Run("writes reach the struct", func(t *testing.T) {
		require.NoError(t, retries.ParseAndSet("5"))
		assert.Equal(t, 5, st.Retries)

		timeout, err := namedvars.LookupAs[time.Duration](s, "Timeout")
		require.NoError(t, err)
		require.NoError(t, timeout.Set(time.Minute))
		assert.Equal(t, time.Minute, st.Timeout)

		ratio, _ := s.Lookup("ratio")
		require.NoError(t, ratio.ParseAndSet("0.75"))
		require.NotNil(t, st.Ratio)
		assert.Equal(t, 0.75, *st.Ratio)
		require.NoError(t, ratio.ParseAndSet("NULL"))
		assert.Nil(t, st.Ratio)

		initial, _ := s.Lookup("initial")
		require.NoError(t, initial.ParseAndSet("Zed"))
		assert.Equal(t, parser.Char('Z'), st.Initial)
	})

	t.Run("struct changes are visible", func(t *testing.T) {
		st.Retries = 11
		assert.Equal(t, "11", retries.String())
	})

	t.Run("readonly", func(t *testing.T) {
		build, _ := s.Lookup("build")
		assert.True(t, build.ReadOnly())
		assert.ErrorIs(t, build.ParseAndSet("other"), namedvars.ErrReadOnly)

		st.Build = "def456"
		assert.Equal(t, "def456", build.String())
	})

	assert.False(t, s.Has("Scratch"))
	assert.False(t, s.Has("Untagged"))
}

func TestStructValidatesBeforeRegistering(t *testing.T) {
	type bad struct {
		Good    int            `namedvar:"name=good"`
		Coords  [2]float64     `namedvar:"name=coords"`
		Labels  map[string]int `namedvar:"name=labels"`
		hidden  int            `namedvar:"name=hidden"`
		Unknown int            `namedvar:"name=unknown,min=1"`
	}

	s := namedvars.NewScope()
	vars, err := bind.Struct(s, &bad{})
	require.Error(t, err)
	assert.Empty(t, vars)
	assert.Zero(t, s.Len())

	assert.ErrorIs(t, err, bind.ErrUnsupportedType)

	var fieldErr *bind.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "Coords", fieldErr.Field)

	for _, field := range []string{"Coords", "Labels", "hidden", "Unknown"} {
		assert.ErrorContains(t, err, "."+field+":")
	}
}

func TestStructDuplicateNames(t *testing.T) {
	t.Run("within the struct", func(t *testing.T) {
		type twice struct {
			A int `namedvar:"name=n"`
			B int `namedvar:"name=n"`
		}
		s := namedvars.NewScope()
		_, err := bind.Struct(s, &twice{})

		var dup *namedvars.ErrDuplicateName
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "n", dup.Name)
		assert.Zero(t, s.Len())
	})

	t.Run("already in scope", func(t *testing.T) {
		s := namedvars.NewScope()
		_, err := namedvars.Create(s, "retries", 0)
		require.NoError(t, err)

		_, err = bind.Struct(s, &settings{})
		var dup *namedvars.ErrDuplicateName
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("prefix avoids collision", func(t *testing.T) {
		s := namedvars.NewScope()
		_, err := namedvars.Create(s, "retries", 0)
		require.NoError(t, err)

		vars, err := bind.Struct(s, &settings{}, bind.WithPrefix("client."))
		require.NoError(t, err)
		assert.Len(t, vars, 5)
		assert.True(t, s.Has("client.retries"))
	})
}

type level int

const (
	levelLow level = iota
	levelHigh
)

func (l level) String() string {
	return lo.Ternary(l == levelHigh, "HIGH", "LOW")
}

func TestStructWithType(t *testing.T) {
	type tuned struct {
		Level level `namedvar:"name=level"`
	}
	st := &tuned{}

	s := namedvars.NewScope(namedvars.WithResolver(
		parser.Extend(parser.Default(), parser.EnumRule([]level{levelLow, levelHigh}, false)),
	))

	_, err := bind.Struct(s, st)
	require.ErrorIs(t, err, bind.ErrUnsupportedType)

	_, err = bind.Struct(s, st, bind.WithType[level]())
	require.NoError(t, err)

	v, _ := s.Lookup("level")
	require.NoError(t, v.ParseAndSet("high"))
	assert.Equal(t, levelHigh, st.Level)
	assert.Equal(t, "HIGH", v.String())
}

func TestStructConcurrentRegistration(t *testing.T) {
	names := []string{"Timeout", "build", "initial", "ratio", "retries"}

	for _, contested := range names {
		t.Run(contested, func(t *testing.T) {
			for range 50 {
				s := namedvars.NewScope()

				var structErr, createErr error
				var wg conc.WaitGroup
				wg.Go(func() {
					_, structErr = bind.Struct(s, &settings{})
				})
				wg.Go(func() {
					_, createErr = namedvars.Create(s, contested, 0)
				})
				wg.Wait()

				// Exactly one side wins the contested name.
				require.NotEqual(t, structErr == nil, createErr == nil)
				if structErr == nil {
					assert.Equal(t, names, s.Names())
				} else {
					var dup *namedvars.ErrDuplicateName
					require.ErrorAs(t, structErr, &dup)
					assert.Equal(t, contested, dup.Name)
					assert.Equal(t, []string{contested}, s.Names())
				}
			}
		})
	}
}

type labelSet map[string]struct{}

func TestStructWithConverter(t *testing.T) {
	type tagged struct {
		Labels labelSet `namedvar:"name=labels"`
		Frozen labelSet `namedvar:"name=frozen,readonly"`
	}
	st := &tagged{Frozen: labelSet{"x": {}}}

	toSlice := func(set labelSet) []string {
		return slices.Sorted(slices.Values(lo.Keys(set)))
	}
	fromSlice := func(labels []string) labelSet {
		return lo.SliceToMap(labels, func(l string) (string, struct{}) { return l, struct{}{} })
	}

	s := namedvars.NewScope(namedvars.WithResolver(
		parser.Extend(parser.Default(), parser.For(parser.Split(","))),
	))
	vars, err := bind.Struct(s, st, bind.WithConverter(toSlice, fromSlice))
	require.NoError(t, err)
	require.Len(t, vars, 2)

	labels, err := namedvars.LookupAs[[]string](s, "labels")
	require.NoError(t, err)
	assert.Equal(t, namedvars.KindFunctional, labels.Kind())

	require.NoError(t, labels.ParseAndSet("b, a, b"))
	assert.Equal(t, labelSet{"a": {}, "b": {}}, st.Labels)
	assert.Equal(t, "a, b", labels.String())

	st.Labels["c"] = struct{}{}
	got, err := labels.Get()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got)

	frozen, _ := s.Lookup("frozen")
	assert.True(t, frozen.ReadOnly())
	assert.ErrorIs(t, frozen.ParseAndSet("y"), namedvars.ErrReadOnly)
	assert.Equal(t, "x", frozen.String())

	t.Run("without from", func(t *testing.T) {
		s := namedvars.NewScope()
		_, err := bind.Struct(s, &tagged{}, bind.WithConverter(toSlice, nil))
		require.NoError(t, err)
		labels, _ := s.Lookup("labels")
		assert.True(t, labels.ReadOnly())
	})
}

func TestStructInvalidTarget(t *testing.T) {
	s := namedvars.NewScope()
	for _, target := range []any{nil, settings{}, (*settings)(nil), lo.ToPtr(1)} {
		_, err := bind.Struct(s, target)
		assert.Error(t, err, "target %#v", target)
	}
}
