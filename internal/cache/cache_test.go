package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTL_Expiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New[string](30 * time.Second).WithClock(func() time.Time { return now })

	c.Set("default_markup", "1.5")
	v, ok := c.Get("default_markup")
	assert.True(t, ok)
	assert.Equal(t, "1.5", v)

	now = now.Add(29 * time.Second)
	_, ok = c.Get("default_markup")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok = c.Get("default_markup")
	assert.False(t, ok)
}

func TestTTL_Invalidate(t *testing.T) {
	c := New[int](time.Minute)
	c.Set("a", 1)
	c.Invalidate("a")

	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestTTL_ZeroTTLDisablesCaching(t *testing.T) {
	c := New[int](0)
	c.Set("a", 1)

	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestTTL_GetOrLoad(t *testing.T) {
	c := New[float64](time.Minute)
	calls := 0
	load := func() (float64, error) {
		calls++
		return 50, nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrLoad("usd_to_php_rate", load)
		assert.NoError(t, err)
		assert.Equal(t, 50.0, v)
	}
	assert.Equal(t, 1, calls)

	_, err := c.GetOrLoad("broken", func() (float64, error) { return 0, errors.New("db down") })
	assert.Error(t, err)
	_, ok := c.Get("broken")
	assert.False(t, ok)
}
