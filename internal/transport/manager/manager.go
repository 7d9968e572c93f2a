// Package manager defines the wire contract and client interface for the
// Manager control plane: the registry of seed peers and cluster membership.
// The Manager itself is an external collaborator; this package only
// stipulates the narrow RPC surface the announcer core depends on.
package manager

import "context"

// SourceType mirrors the wire-level registration source enum.
type SourceType uint32

const (
	SourceTypePeerSource SourceType = iota
	SourceTypeSeedPeerSource
)

// UpdateSeedPeerRequest registers (or re-registers, idempotently) a seed
// peer with the manager.
type UpdateSeedPeerRequest struct {
	SourceType      SourceType
	Hostname        string
	Type            string
	IDC             string
	Location        string
	IP              string
	Port            int32
	DownloadPort    int32
	ClusterID       uint64
}

// DeleteSeedPeerRequest deregisters a seed peer. Matched field-for-field
// against the UpdateSeedPeerRequest that registered it, per the pairing
// invariant in spec.md §3.
type DeleteSeedPeerRequest struct {
	SourceType SourceType
	Hostname   string
	IP         string
	ClusterID  uint64
}

// Client is the narrow Manager RPC surface the ManagerAnnouncer consumes.
type Client interface {
	UpdateSeedPeer(ctx context.Context, req *UpdateSeedPeerRequest) error
	DeleteSeedPeer(ctx context.Context, req *DeleteSeedPeerRequest) error
}
