package cache_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldrules/pkg/cache"
)

func TestLRU(t *testing.T) {
	t.Parallel()

	t.Run("put get update", func(t *testing.T) {
		c := cache.NewLRU[string, int](2)
		c.Put("a", 1)
		c.Put("a", 2)

		v, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 2, v)
		assert.Equal(t, 1, c.Len())

		_, ok = c.Get("missing")
		assert.False(t, ok)
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		c := cache.NewLRU[string, int](2)
		c.Put("a", 1)
		c.Put("b", 2)
		_, _ = c.Get("a")
		c.Put("c", 3)

		_, ok := c.Get("b")
		assert.False(t, ok)
		_, ok = c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("get or load", func(t *testing.T) {
		c := cache.NewLRU[string, string](4)
		calls := 0
		load := func() (string, error) {
			calls++
			return "v", nil
		}

		for range 3 {
			v, err := c.GetOrLoad("k", load)
			require.NoError(t, err)
			assert.Equal(t, "v", v)
		}
		assert.Equal(t, 1, calls)
	})

	t.Run("load errors are not cached", func(t *testing.T) {
		c := cache.NewLRU[string, int](4)
		boom := errors.New("boom")

		_, err := c.GetOrLoad("k", func() (int, error) { return 0, boom })
		assert.ErrorIs(t, err, boom)
		assert.Zero(t, c.Len())
	})

	t.Run("concurrent use", func(t *testing.T) {
		c := cache.NewLRU[string, int](16)
		var wg sync.WaitGroup
		for i := range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := range 100 {
					key := fmt.Sprintf("k%d", (i*j)%32)
					c.Put(key, j)
					_, _ = c.Get(key)
				}
			}()
		}
		wg.Wait()
		assert.LessOrEqual(t, c.Len(), 16)
	})

	t.Run("invalid capacity", func(t *testing.T) {
		assert.Panics(t, func() { cache.NewLRU[string, int](0) })
	})
}
