package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUUIDGeneratorHostIDStableAcrossCalls(t *testing.T) {
	g := NewGenerator()

	first := g.HostID()
	second := g.HostID()

	assert.Equal(t, first, second)
}

func TestUUIDGeneratorPeerIDFreshEveryCall(t *testing.T) {
	g := NewGenerator()

	a := g.PeerID()
	b := g.PeerID()

	assert.NotEqual(t, a, b)
}

func TestFixedGeneratorCyclesThenRepeatsLast(t *testing.T) {
	g := &Fixed{Host: "host-1", Peers: []string{"p1", "p2"}}

	assert.Equal(t, "host-1", g.HostID())
	assert.Equal(t, "p1", g.PeerID())
	assert.Equal(t, "p2", g.PeerID())
	assert.Equal(t, "p2", g.PeerID())
}
