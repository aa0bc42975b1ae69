// file: internal/cache/cache_test.go
// version: 2.0.0
// guid: b2c3d4e5-f6a7-8b9c-0d1e-2f3a4b5c6d7e

package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is an adjustable time source for TTL tests.
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time          { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
}

func TestGetOrComputeHitWithinTTL(t *testing.T) {
	clock := newClock()
	c := New(60*time.Second, WithClock(clock.Now))

	calls := 0
	compute := func() (any, error) {
		calls++
		return calls, nil
	}

	v, err := c.GetOrCompute("cart", "u1", compute)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	clock.Advance(59 * time.Second)
	v, err = c.GetOrCompute("cart", "u1", compute)
	require.NoError(t, err)
	assert.Equal(t, 1, v, "cached value returned without re-invoking compute")
	assert.Equal(t, 1, calls)
}

func TestGetOrComputeExpiresAtTTL(t *testing.T) {
	clock := newClock()
	c := New(60*time.Second, WithClock(clock.Now))

	calls := 0
	compute := func() (any, error) {
		calls++
		return calls, nil
	}

	_, err := c.GetOrCompute("cart", "u1", compute)
	require.NoError(t, err)

	// Exactly at TTL the entry is stale.
	clock.Advance(60 * time.Second)
	v, err := c.GetOrCompute("cart", "u1", compute)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, c.Len(), "expired entry replaced, not accumulated")
}

func TestInvalidateForcesRecompute(t *testing.T) {
	c := New(time.Hour)

	calls := 0
	compute := func() (any, error) {
		calls++
		return calls, nil
	}

	_, err := c.GetOrCompute("orders", "u1", compute)
	require.NoError(t, err)

	c.Invalidate("orders", "u1")
	v, err := c.GetOrCompute("orders", "u1", compute)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestInvalidateMissingKeyIsNoop(t *testing.T) {
	c := New(time.Hour)
	c.Invalidate("cart", "nobody")
	assert.Equal(t, 0, c.Len())
}

func TestEmptyUIDBypassesCache(t *testing.T) {
	c := New(time.Hour)

	calls := 0
	for i := 0; i < 5; i++ {
		v, err := c.GetOrCompute("cart", "", func() (any, error) {
			calls++
			return calls, nil
		})
		require.NoError(t, err)
		assert.Equal(t, calls, v)
	}
	assert.Equal(t, 5, calls)
	assert.Equal(t, 0, c.Len(), "anonymous calls never populate the cache")
}

func TestComputeErrorNotCached(t *testing.T) {
	c := New(time.Hour)

	boom := errors.New("store unavailable")
	calls := 0
	_, err := c.GetOrCompute("cart", "u1", func() (any, error) {
		calls++
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())

	// Next call re-attempts and can succeed.
	v, err := c.GetOrCompute("cart", "u1", func() (any, error) {
		calls++
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 2, calls)
}

func TestKeysAreIsolatedByPrefixAndUser(t *testing.T) {
	c := New(time.Hour)

	_, err := c.GetOrCompute("cart", "u1", func() (any, error) { return "cart-u1", nil })
	require.NoError(t, err)
	_, err = c.GetOrCompute("orders", "u1", func() (any, error) { return "orders-u1", nil })
	require.NoError(t, err)
	_, err = c.GetOrCompute("cart", "u2", func() (any, error) { return "cart-u2", nil })
	require.NoError(t, err)

	assert.Equal(t, 3, c.Len())

	c.Invalidate("cart", "u1")
	v, err := c.GetOrCompute("orders", "u1", func() (any, error) { return "recomputed", nil })
	require.NoError(t, err)
	assert.Equal(t, "orders-u1", v, "invalidation is a point removal")
}

func TestPerPrefixTTL(t *testing.T) {
	clock := newClock()
	c := New(60*time.Second,
		WithClock(clock.Now),
		WithPrefixTTL("orders", 10*time.Second))

	cartCalls, orderCalls := 0, 0
	_, err := c.GetOrCompute("cart", "u1", func() (any, error) { cartCalls++; return cartCalls, nil })
	require.NoError(t, err)
	_, err = c.GetOrCompute("orders", "u1", func() (any, error) { orderCalls++; return orderCalls, nil })
	require.NoError(t, err)

	clock.Advance(30 * time.Second)

	_, err = c.GetOrCompute("cart", "u1", func() (any, error) { cartCalls++; return cartCalls, nil })
	require.NoError(t, err)
	_, err = c.GetOrCompute("orders", "u1", func() (any, error) { orderCalls++; return orderCalls, nil })
	require.NoError(t, err)

	assert.Equal(t, 1, cartCalls, "cart entry still live under default TTL")
	assert.Equal(t, 2, orderCalls, "orders entry expired under its shorter TTL")
}
