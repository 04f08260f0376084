package kotlinpoet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameAllocator(t *testing.T) {
	t.Run("usage", func(t *testing.T) {
		names := NewNameAllocator()
		assert.Equal(t, "foo", names.NewNameWithTag("foo", 1))
		assert.Equal(t, "bar", names.NewNameWithTag("bar", 2))
		assert.Equal(t, "foo", names.Get(1))
		assert.Equal(t, "bar", names.Get(2))
	})
	t.Run("name collision", func(t *testing.T) {
		names := NewNameAllocator()
		assert.Equal(t, "foo", names.NewName("foo"))
		assert.Equal(t, "foo_", names.NewName("foo"))
		assert.Equal(t, "foo__", names.NewName("foo"))
	})
	t.Run("name collision with tag", func(t *testing.T) {
		names := NewNameAllocator()
		assert.Equal(t, "foo", names.NewNameWithTag("foo", 1))
		assert.Equal(t, "foo_", names.NewNameWithTag("foo", 2))
		assert.Equal(t, "foo__", names.NewNameWithTag("foo", 3))
		assert.Equal(t, "foo__", names.Get(3))
	})
	t.Run("character mapping", func(t *testing.T) {
		names := NewNameAllocator()
		assert.Equal(t, "a_b", names.NewName("a-b"))
		assert.Equal(t, "a_b_", names.NewName("a🍺b"))
		assert.Equal(t, "_1ab", names.NewName("1ab"))
	})
	t.Run("keywords", func(t *testing.T) {
		names := NewNameAllocator()
		assert.Equal(t, "when_", names.NewName("when"))
		assert.Equal(t, "fun_", names.NewName("fun"))
		empty := NewEmptyNameAllocator()
		assert.Equal(t, "when", empty.NewName("when"))
	})
	t.Run("tag reuse", func(t *testing.T) {
		names := NewNameAllocator()
		names.NewNameWithTag("foo", 1)
		assertUsageError(t, func() { names.NewNameWithTag("bar", 1) })
	})
	t.Run("unknown tag", func(t *testing.T) {
		names := NewNameAllocator()
		assert.False(t, names.Contains(1))
		assertUsageError(t, func() { names.Get(1) })
	})
	t.Run("copy", func(t *testing.T) {
		outer := NewNameAllocator()
		outer.NewNameWithTag("foo", 1)
		inner := outer.Copy()
		assert.Equal(t, "bar", inner.NewNameWithTag("bar", 2))
		assert.Equal(t, "foo_", inner.NewNameWithTag("foo", 3))
		assert.Equal(t, "foo", inner.Get(1))

		assert.False(t, outer.Contains(2))
		assert.Equal(t, "bar", outer.NewNameWithTag("bar", 2))
	})
}
