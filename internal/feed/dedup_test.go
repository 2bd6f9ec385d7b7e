package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupCache_SeenTracksRecency(t *testing.T) {
	c := newDedupCache(2)

	assert.False(t, c.Seen("a"))
	assert.False(t, c.Seen("b"))
	assert.True(t, c.Seen("a"))
	assert.True(t, c.Seen("b"))
}

func TestDedupCache_EvictsOldestAtCapacity(t *testing.T) {
	c := newDedupCache(2)

	c.Seen("a")
	c.Seen("b")
	c.Seen("c") // evicts "a"

	assert.False(t, c.Seen("a"))
	assert.True(t, c.Seen("c"))
}

func TestDedupCache_RefreshProtectsFromEviction(t *testing.T) {
	c := newDedupCache(2)

	c.Seen("a")
	c.Seen("b")
	c.Seen("a") // refresh: "b" is now the oldest
	c.Seen("c") // evicts "b"

	assert.True(t, c.Seen("a"))
	assert.False(t, c.Seen("b"))
}

func TestDedupCache_MinimumCapacity(t *testing.T) {
	c := newDedupCache(0)

	assert.False(t, c.Seen("a"))
	assert.True(t, c.Seen("a"))
	assert.False(t, c.Seen("b")) // capacity 1: "a" evicted
	assert.False(t, c.Seen("a"))
}
