package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/honganh1206/datetime/datetime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()

	c, err := Open(InMemory, ttl)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	return c
}

func TestCache_ParseMiss(t *testing.T) {
	c := openTestCache(t, 0)

	_, ok, err := c.Parse("2023-10-15", "%Y-%m-%d")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_ParseHit(t *testing.T) {
	c := openTestCache(t, time.Hour)
	dt := datetime.Datetime{Year: 2023, Month: 10, Day: 15}

	require.NoError(t, c.PutParse("2023-10-15", "%Y-%m-%d", dt))

	got, ok, err := c.Parse("2023-10-15", "%Y-%m-%d")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, dt, got)

	// Same input, other pattern
	_, ok, err = c.Parse("2023-10-15", "%Y/%m/%d")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_Guess(t *testing.T) {
	c := openTestCache(t, 0)
	dt := datetime.Datetime{Year: 2023, Month: 10, Day: 15}

	require.NoError(t, c.PutGuess("15/10/2023", "%d/%m/%Y", dt))

	got, format, ok, err := c.Guess("15/10/2023")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "%d/%m/%Y", format)
	assert.Equal(t, dt, got)

	// Guess and parse entries do not collide
	_, ok, err = c.Parse("15/10/2023", "%d/%m/%Y")
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := c.Len()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCache_Expiry(t *testing.T) {
	c := openTestCache(t, 10*time.Millisecond)

	require.NoError(t, c.PutParse("10:00", "%H:%M", datetime.Default()))
	time.Sleep(50 * time.Millisecond)

	_, ok, err := c.Parse("10:00", "%H:%M")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_PersistsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "cache.db")
	dt := datetime.Datetime{Year: 1999, Month: 12, Day: 31}

	c, err := Open(path, 0)
	require.NoError(t, err)
	require.NoError(t, c.PutParse("99-12-31", "%y-%m-%d", dt))
	require.NoError(t, c.Close())

	c, err = Open(path, 0)
	require.NoError(t, err)
	defer c.Close()

	got, ok, err := c.Parse("99-12-31", "%y-%m-%d")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, dt, got)
}

func TestCache_ParseKeysDoNotCollide(t *testing.T) {
	c := openTestCache(t, 0)
	stored := datetime.Datetime{Year: 1999, Month: 1, Day: 1}

	require.NoError(t, c.PutParse("1999\x002023", "%Y\x002023", stored))

	_, ok, err := c.Parse("2023\x001999\x002023", "%Y")
	require.NoError(t, err)
	assert.False(t, ok)

	got, ok, err := c.Parse("1999\x002023", "%Y\x002023")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, stored, got)
}

func TestParseKey_Unambiguous(t *testing.T) {
	pairs := [][2]string{
		{"2023-10", "%Y-%m"},
		{"-10", "%Y-%m2023"},
		{"%m2023-10", "%Y-"},
		{"", "%Y-%m2023-10"},
	}

	seen := map[string][2]string{}
	for _, p := range pairs {
		key := parseKey(p[0], p[1])
		prev, dup := seen[key]
		assert.False(t, dup, "%q collides with %q", p, prev)
		seen[key] = p
	}
}
