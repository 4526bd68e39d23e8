package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeCodec stands in for the codec structs the With* options configure.
type fakeCodec struct {
	level   int
	comment string
}

func withLevel(level int) Option[*fakeCodec] {
	return New(func(c *fakeCodec) error {
		if level < 0 {
			return errors.New("level cannot be negative")
		}
		c.level = level

		return nil
	})
}

func withComment(comment string) Option[*fakeCodec] {
	return NoError(func(c *fakeCodec) {
		c.comment = comment
	})
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		c := &fakeCodec{}
		err := Apply(c, withLevel(3), withComment("first"), withComment("second"))
		require.NoError(t, err)
		require.Equal(t, 3, c.level)
		require.Equal(t, "second", c.comment)
	})

	t.Run("stops at first error", func(t *testing.T) {
		c := &fakeCodec{}
		err := Apply(c, withLevel(3), withLevel(-1), withComment("unreached"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "level cannot be negative")
		require.Equal(t, 3, c.level, "options before the failure must apply")
		require.Empty(t, c.comment, "options after the failure must not apply")
	})

	t.Run("no options is a no-op", func(t *testing.T) {
		c := &fakeCodec{level: 7}
		require.NoError(t, Apply(c))
		require.Equal(t, 7, c.level)
	})
}

func TestNew(t *testing.T) {
	c := &fakeCodec{}

	require.NoError(t, withLevel(9).apply(c))
	require.Equal(t, 9, c.level)

	require.Error(t, withLevel(-5).apply(c))
	require.Equal(t, 9, c.level, "rejected value must not be stored")
}

func TestNoError(t *testing.T) {
	c := &fakeCodec{}
	require.NoError(t, withComment("noted").apply(c))
	require.Equal(t, "noted", c.comment)
}

func TestGenericTargets(t *testing.T) {
	var n int
	opt := NoError(func(p *int) { *p = 42 })
	require.NoError(t, opt.apply(&n))
	require.Equal(t, 42, n)
}
