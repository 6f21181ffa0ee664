package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLRU(t *testing.T) {
	c := NewLRU(10)

	c.Set("a", []byte("1234"))
	c.Set("b", []byte("5678"))
	assert.Equal(t, int64(8), c.Size())

	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1234", string(v))

	// "b" is least recently used and makes room for "c".
	c.Set("c", []byte("90"))
	c.Set("d", []byte("xy"))
	_, ok = c.Get("b")
	assert.False(t, ok)
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, int64(8), c.Size())

	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestLRU_Replace(t *testing.T) {
	c := NewLRU(10)
	c.Set("a", []byte("1234"))
	c.Set("a", []byte("12"))
	assert.Equal(t, int64(2), c.Size())
	assert.Equal(t, 1, c.Len())
}

func TestLRU_TooLarge(t *testing.T) {
	c := NewLRU(3)
	c.Set("a", []byte("1234"))
	assert.Zero(t, c.Len())
}

func TestLRU_Invalidate(t *testing.T) {
	c := NewLRU(10)
	c.Set("a", []byte("1"))
	c.Invalidate("a")
	c.Invalidate("missing")
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Zero(t, c.Size())
}
