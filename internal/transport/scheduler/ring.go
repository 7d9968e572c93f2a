package scheduler

import (
	"hash/fnv"
	"sync"

	rendezvous "github.com/dgryski/go-rendezvous"
)

// Ring is the Shard Router: a read-mostly mapping from a task-id prefix
// ("route key") to the scheduler endpoint that owns it. It is owned by the
// scheduler client and updated out-of-band (e.g. by a dynconfig refresh
// calling SetEndpoints as scheduler membership changes); the reconciler
// only ever takes a read-locked Snapshot.
type Ring struct {
	mu    sync.RWMutex
	nodes []string
	ring  *rendezvous.Rendezvous
}

// NewRing creates an empty ring. Until SetEndpoints is called at least
// once, every Snapshot().Lookup returns ok=false.
func NewRing() *Ring {
	return &Ring{}
}

// SetEndpoints replaces the set of scheduler endpoints the ring
// distributes route keys across. Safe to call concurrently with Snapshot.
func (r *Ring) SetEndpoints(endpoints []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nodes = append([]string(nil), endpoints...)
	if len(r.nodes) == 0 {
		r.ring = nil
		return
	}
	r.ring = rendezvous.New(r.nodes, fnvHash)
}

// Snapshot clones just enough of the ring to survive a full reconciliation
// scan, then releases the lock — the snapshot itself needs no further
// locking since it is never mutated.
func (r *Ring) Snapshot() *RingSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return &RingSnapshot{ring: r.ring}
}

// RouteKeyLength is the task-id prefix length the ring routes on
// (spec.md: task.id[0:5]). A task id shorter than this has no well-formed
// route key and is rejected by Lookup rather than hashed as-is.
const RouteKeyLength = 5

// RingSnapshot is an immutable view of the ring taken under a single read
// lock, per spec.md §5's "hash ring snapshot" design note.
type RingSnapshot struct {
	ring *rendezvous.Rendezvous
}

// Lookup maps a route key (spec.md: task.id[0:5]) to the scheduler
// endpoint that currently owns it. ok is false when the ring has no
// endpoints configured at all, or when routeKey is shorter than
// RouteKeyLength — spec.md §8's "task id shorter than 5 characters"
// boundary scenario. A non-empty rendezvous ring otherwise always
// assigns every key to some member, so these are the only "missing key"
// cases this router recognizes.
func (s *RingSnapshot) Lookup(routeKey string) (endpoint string, ok bool) {
	if len(routeKey) < RouteKeyLength {
		return "", false
	}
	if s.ring == nil {
		return "", false
	}
	return s.ring.Lookup(routeKey), true
}

func fnvHash(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
