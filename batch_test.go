package namedvars_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apstndb/namedvars"
)

func TestBatchCommit(t *testing.T) {
	s := namedvars.NewScope()
	b := s.NewBatch()

	count, err := namedvars.Stage(b, "count", namedvars.NewStored(1))
	require.NoError(t, err)
	_, err = namedvars.Stage(b, "greeting", namedvars.NewStored("hi"))
	require.NoError(t, err)
	assert.Equal(t, 2, b.Len())
	assert.Zero(t, s.Len(), "staged variables are not visible before Commit")

	vars, err := b.Commit()
	require.NoError(t, err)
	require.Len(t, vars, 2)
	assert.Equal(t, []string{"count", "greeting"}, s.Names())

	got, err := namedvars.LookupAs[int](s, "count")
	require.NoError(t, err)
	assert.Same(t, count, got)

	_, err = b.Commit()
	assert.Error(t, err)
	_, err = namedvars.Stage(b, "late", namedvars.NewStored(0))
	assert.Error(t, err)
}

func TestBatchAllOrNothing(t *testing.T) {
	t.Run("name taken", func(t *testing.T) {
		s := namedvars.NewScope()
		b := s.NewBatch()
		_, err := namedvars.Stage(b, "a", namedvars.NewStored(1))
		require.NoError(t, err)
		_, err = namedvars.Stage(b, "b", namedvars.NewStored(2))
		require.NoError(t, err)

		_, err = namedvars.Create(s, "b", 0)
		require.NoError(t, err)

		vars, err := b.Commit()
		assert.Nil(t, vars)
		var dup *namedvars.ErrDuplicateName
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "b", dup.Name)
		assert.Equal(t, []string{"b"}, s.Names())
	})

	t.Run("name staged twice", func(t *testing.T) {
		s := namedvars.NewScope()
		b := s.NewBatch()
		for i := range 2 {
			_, err := namedvars.Stage(b, "twice", namedvars.NewStored(i))
			require.NoError(t, err)
		}

		_, err := b.Commit()
		var dup *namedvars.ErrDuplicateName
		require.ErrorAs(t, err, &dup)
		assert.Zero(t, s.Len())
	})

	t.Run("invalid name fails at stage", func(t *testing.T) {
		s := namedvars.NewScope()
		b := s.NewBatch()
		_, err := namedvars.Stage(b, " ", namedvars.NewStored(1))
		var invalid *namedvars.ErrInvalidName
		require.ErrorAs(t, err, &invalid)
		assert.Zero(t, b.Len())
	})
}
