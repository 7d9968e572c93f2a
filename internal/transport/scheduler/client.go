package scheduler

import "context"

// PeersStream is the client side of the announce_peers client-streaming
// RPC: one frame per Send, a single CloseAndRecv to finish the call.
// Mirrors the shape grpc-go generates for client-streaming methods.
type PeersStream interface {
	Send(*AnnouncePeersRequest) error
	CloseAndRecv() error
}

// Client is the narrow Scheduler RPC surface the SchedulerAnnouncer and
// reconciler consume. Ring is exposed directly (not wrapped) because
// spec.md §4.5 treats it as shared state owned by the client, not a method
// call — the reconciler takes its own Snapshot under the client's read
// lock.
type Client interface {
	InitAnnounceHost(ctx context.Context, req *AnnounceHostRequest) error
	AnnounceHost(ctx context.Context, req *AnnounceHostRequest) error
	DeleteHost(ctx context.Context, req *DeleteHostRequest) error
	DeleteTask(ctx context.Context, req *DeleteTaskRequest) error

	// AnnouncePeers opens a client-streaming RPC. taskID is the first
	// peer's task id in the batch, used by the transport to stick the
	// stream to the correct backend shard.
	AnnouncePeers(ctx context.Context, taskID string) (PeersStream, error)

	// Ring exposes the shard router so the reconciler can take a single
	// read-locked snapshot per reconciliation pass.
	Ring() *Ring
}
