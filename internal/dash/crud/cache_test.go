package crud

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_ConcurrentFetchesDeduplicated(t *testing.T) {
	t.Parallel()

	cache := NewCache()
	var calls atomic.Int32
	gate := make(chan struct{})

	const workers = 16
	var wg sync.WaitGroup
	results := make([]any, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := cache.do("item|q|1|20", func() (any, error) {
				calls.Add(1)
				<-gate
				return "page", nil
			})
			assert.NoError(t, err)
			results[i] = v
		}()
	}

	// All workers are either waiting on the flight or about to join it.
	close(gate)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, "page", v)
	}
}

func TestCache_ErrorsNotCached(t *testing.T) {
	t.Parallel()

	cache := NewCache()
	calls := 0

	_, err := cache.do("item||1|20", func() (any, error) {
		calls++
		return nil, errors.New("boom")
	})
	require.Error(t, err)

	v, err := cache.do("item||1|20", func() (any, error) {
		calls++
		return "page", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "page", v)
	assert.Equal(t, 2, calls)
}

func TestCache_InvalidateDropsOnlyEntityPrefix(t *testing.T) {
	t.Parallel()

	cache := NewCache()
	fetchConst := func(v string) func() (any, error) {
		return func() (any, error) { return v, nil }
	}

	_, err := cache.do("category||1|20", fetchConst("cats"))
	require.NoError(t, err)
	_, err = cache.do("product||1|20", fetchConst("prods"))
	require.NoError(t, err)

	cache.Invalidate("category")

	// Category refetches, product is still served from cache.
	catCalls := 0
	v, err := cache.do("category||1|20", func() (any, error) {
		catCalls++
		return "fresh cats", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh cats", v)
	assert.Equal(t, 1, catCalls)

	v, err = cache.do("product||1|20", func() (any, error) {
		t.Fatal("product fetch must not run")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "prods", v)
}
