package memo_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/groupica/canica/memo"
)

// TestNop_RemembersNothing verifies the default store never returns a hit.
func TestNop_RemembersNothing(t *testing.T) {
	c := memo.Nop()
	c.Put("k", 42)

	_, ok := c.Get("k")
	assert.False(t, ok, "Nop must not remember values")
}

// TestInMemory_RoundTrip verifies Put/Get on the map-backed store.
func TestInMemory_RoundTrip(t *testing.T) {
	c := memo.InMemory()

	_, ok := c.Get("k")
	assert.False(t, ok, "empty cache must miss")

	c.Put("k", 42)
	v, ok := c.Get("k")
	require.True(t, ok, "stored key must hit")
	assert.Equal(t, 42, v)
}

// TestDo_CachesResults verifies fn runs once per key on a real store.
func TestDo_CachesResults(t *testing.T) {
	c := memo.InMemory()
	calls := 0
	fn := func() (int, error) {
		calls++

		return 7, nil
	}

	v, err := memo.Do(c, "k", fn)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	v, err = memo.Do(c, "k", fn)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, 1, calls, "second Do with same key must hit the cache")
}

// TestDo_ErrorsNotCached verifies a failing fn is retried on the next call.
func TestDo_ErrorsNotCached(t *testing.T) {
	c := memo.InMemory()
	boom := errors.New("boom")
	calls := 0

	_, err := memo.Do(c, "k", func() (int, error) {
		calls++

		return 0, boom
	})
	assert.ErrorIs(t, err, boom)

	v, err := memo.Do(c, "k", func() (int, error) {
		calls++

		return 9, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 9, v)
	assert.Equal(t, 2, calls, "errors must never be cached")
}

// TestDo_NilCacheActsLikeNop verifies a nil cache simply runs fn.
func TestDo_NilCacheActsLikeNop(t *testing.T) {
	v, err := memo.Do[int](nil, "k", func() (int, error) { return 3, nil })
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

// TestKey_StableAndDiscriminating checks the signature builder on scalars,
// slices and matrices.
func TestKey_StableAndDiscriminating(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	b := mat.NewDense(2, 2, []float64{1, 2, 3, 5})

	assert.Equal(t,
		memo.Key("svd", a, 3, uint64(17)),
		memo.Key("svd", a, 3, uint64(17)),
		"equal arguments must produce equal keys")

	assert.NotEqual(t,
		memo.Key("svd", a, 3, uint64(17)),
		memo.Key("svd", b, 3, uint64(17)),
		"a single differing matrix entry must change the key")

	assert.NotEqual(t,
		memo.Key("svd", a, 3, uint64(17)),
		memo.Key("svd", a, 4, uint64(17)),
		"a differing scalar must change the key")

	assert.NotEqual(t,
		memo.Key([]float64{1, 2}, []float64{3}),
		memo.Key([]float64{1}, []float64{2, 3}),
		"slice boundaries must be part of the signature")
}
