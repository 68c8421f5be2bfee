package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Unique(t *testing.T) {
	seen := map[string]bool{}
	for range 1000 {
		id := New()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestNew_DistinctShortPrefixes(t *testing.T) {
	seen := map[string]bool{}
	for range 50 {
		short := New()[:8]
		assert.False(t, seen[short], "ids made back to back share prefix %s", short)
		seen[short] = true
	}
}

func TestSequence(t *testing.T) {
	next := Sequence("t")
	assert.Equal(t, "t-1", next())
	assert.Equal(t, "t-2", next())
}
