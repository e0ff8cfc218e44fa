package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetOrCreate(t *testing.T) {
	current := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	c := &Cache{now: func() time.Time { return current }}

	calls := 0
	create := func() (interface{}, error) {
		calls++
		return calls, nil
	}

	v, err := c.GetOrCreate("key", time.Minute, create)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = c.GetOrCreate("key", time.Minute, create)
	require.NoError(t, err)
	assert.Equal(t, 1, v, "value should come from the cache")
	assert.Equal(t, 1, c.Len())

	current = current.Add(2 * time.Minute)

	v, err = c.GetOrCreate("key", time.Minute, create)
	require.NoError(t, err)
	assert.Equal(t, 2, v, "expired value should be recreated")
	assert.Equal(t, 1, c.Len())
}

func TestCache_ErrorsAreNotCached(t *testing.T) {
	c := &Cache{}

	_, err := c.GetOrCreate("key", time.Minute, func() (interface{}, error) {
		return nil, errors.New("boom")
	})
	require.EqualError(t, err, "boom")

	v, err := c.GetOrCreate("key", time.Minute, func() (interface{}, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestCache_ZeroTTLDisablesStorage(t *testing.T) {
	c := &Cache{}

	calls := 0
	for i := 0; i < 3; i++ {
		_, err := c.GetOrCreate("key", 0, func() (interface{}, error) {
			calls++
			return calls, nil
		})
		require.NoError(t, err)
	}

	assert.Equal(t, 3, calls)
	assert.Equal(t, 0, c.Len())
}

func TestCache_ConcurrentMissesShareOneCall(t *testing.T) {
	c := &Cache{}

	var calls int32
	release := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.GetOrCreate("key", time.Minute, func() (interface{}, error) {
				atomic.AddInt32(&calls, 1)
				<-release
				return "value", nil
			})
			assert.NoError(t, err)
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&calls), int32(2))
}

func TestCache_CleanUp(t *testing.T) {
	current := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	c := &Cache{now: func() time.Time { return current }}

	for _, key := range []string{"a", "b"} {
		_, err := c.GetOrCreate(key, time.Minute, func() (interface{}, error) {
			return key, nil
		})
		require.NoError(t, err)
	}
	require.Equal(t, 2, c.Len())

	current = current.Add(time.Hour)
	c.CleanUp()

	assert.Equal(t, 0, c.Len())
}
