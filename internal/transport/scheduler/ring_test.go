package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRingEmptyLookupMisses(t *testing.T) {
	r := NewRing()
	_, ok := r.Snapshot().Lookup("abcde")
	assert.False(t, ok, "empty ring must report no coverage")
}

func TestRingLookupIsStableAndDistributes(t *testing.T) {
	r := NewRing()
	r.SetEndpoints([]string{"s-a:8002", "s-b:8002"})
	snap := r.Snapshot()

	endpoint, ok := snap.Lookup("aaaaa")
	assert.True(t, ok)
	assert.Contains(t, []string{"s-a:8002", "s-b:8002"}, endpoint)

	// Looking the same key up twice against the same snapshot must agree.
	again, ok := snap.Lookup("aaaaa")
	assert.True(t, ok)
	assert.Equal(t, endpoint, again)
}

func TestRingDistributesAcrossBothEndpoints(t *testing.T) {
	r := NewRing()
	r.SetEndpoints([]string{"s-a:8002", "s-b:8002"})
	snap := r.Snapshot()

	seen := make(map[string]bool)
	keys := []string{"aaaaa", "bbbbb", "ccccc", "ddddd", "eeeee", "fffff", "ggggg", "hhhhh"}
	for _, k := range keys {
		endpoint, ok := snap.Lookup(k)
		assert.True(t, ok)
		seen[endpoint] = true
	}

	assert.Len(t, seen, 2, "a realistic key spread should land on both endpoints")
}

func TestRingLookupRejectsShortRouteKey(t *testing.T) {
	r := NewRing()
	r.SetEndpoints([]string{"s-a:8002", "s-b:8002"})
	snap := r.Snapshot()

	_, ok := snap.Lookup("abcd")
	assert.False(t, ok, "a route key shorter than RouteKeyLength must miss even on a populated ring")
}

func TestRingSnapshotIndependentOfLaterMutation(t *testing.T) {
	r := NewRing()
	r.SetEndpoints([]string{"s-a:8002"})
	snap := r.Snapshot()

	r.SetEndpoints([]string{"s-b:8002"})

	endpoint, ok := snap.Lookup("aaaaa")
	assert.True(t, ok)
	assert.Equal(t, "s-a:8002", endpoint, "a taken snapshot must not see later SetEndpoints calls")
}
