// Package idgen generates the host and peer identifiers this core
// announces. A host id is stable for the process lifetime; a peer id is
// minted fresh for every piece of work that needs one.
package idgen

import "github.com/google/uuid"

// Generator is the narrow identity surface the announcers and
// reconciler consume.
type Generator interface {
	HostID() string
	PeerID() string
}

// uuidGenerator backs Generator with google/uuid, matching the
// uuid.New().String() idiom used throughout this codebase's RPC layers.
type uuidGenerator struct {
	hostID string
}

// NewGenerator mints a host id once (stable for the process lifetime)
// and returns fresh peer ids on every PeerID call.
func NewGenerator() Generator {
	return &uuidGenerator{hostID: uuid.New().String()}
}

func (g *uuidGenerator) HostID() string {
	return g.hostID
}

func (g *uuidGenerator) PeerID() string {
	return uuid.New().String()
}

// Fixed is a deterministic Generator for tests: HostID is constant,
// PeerID cycles through a caller-supplied sequence and then repeats the
// last value.
type Fixed struct {
	Host  string
	Peers []string
	n     int
}

func (f *Fixed) HostID() string { return f.Host }

func (f *Fixed) PeerID() string {
	if len(f.Peers) == 0 {
		return ""
	}
	if f.n >= len(f.Peers) {
		return f.Peers[len(f.Peers)-1]
	}
	id := f.Peers[f.n]
	f.n++
	return id
}
