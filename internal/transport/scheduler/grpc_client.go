package scheduler

import (
	"context"

	"github.com/cuemby/scoutd/internal/transport/rpccodec"
	"google.golang.org/grpc"
)

const (
	serviceName         = "scoutd.scheduler.v1.Scheduler"
	methodInitAnnounce  = "/" + serviceName + "/InitAnnounceHost"
	methodAnnounceHost  = "/" + serviceName + "/AnnounceHost"
	methodDeleteHost    = "/" + serviceName + "/DeleteHost"
	methodDeleteTask    = "/" + serviceName + "/DeleteTask"
	methodAnnouncePeers = "/" + serviceName + "/AnnouncePeers"
)

// grpcClient is the production Client implementation. It wraps a
// *grpc.ClientConn and carries the ring the reconciler snapshots.
type grpcClient struct {
	conn *grpc.ClientConn
	ring *Ring
}

var _ Client = (*grpcClient)(nil)

// NewGRPCClient wraps an established connection to a scheduler. The
// returned client owns an empty Ring; callers populate it via
// Ring().SetEndpoints as membership becomes known (e.g. from a manager
// dynconfig refresh — out of scope for this core).
func NewGRPCClient(conn *grpc.ClientConn) Client {
	return &grpcClient{conn: conn, ring: NewRing()}
}

func (c *grpcClient) InitAnnounceHost(ctx context.Context, req *AnnounceHostRequest) error {
	var empty struct{}
	return c.conn.Invoke(ctx, methodInitAnnounce, req, &empty, grpc.CallContentSubtype(rpccodec.Name))
}

func (c *grpcClient) AnnounceHost(ctx context.Context, req *AnnounceHostRequest) error {
	var empty struct{}
	return c.conn.Invoke(ctx, methodAnnounceHost, req, &empty, grpc.CallContentSubtype(rpccodec.Name))
}

func (c *grpcClient) DeleteHost(ctx context.Context, req *DeleteHostRequest) error {
	var empty struct{}
	return c.conn.Invoke(ctx, methodDeleteHost, req, &empty, grpc.CallContentSubtype(rpccodec.Name))
}

func (c *grpcClient) DeleteTask(ctx context.Context, req *DeleteTaskRequest) error {
	var empty struct{}
	return c.conn.Invoke(ctx, methodDeleteTask, req, &empty, grpc.CallContentSubtype(rpccodec.Name))
}

func (c *grpcClient) Ring() *Ring {
	return c.ring
}

func (c *grpcClient) AnnouncePeers(ctx context.Context, taskID string) (PeersStream, error) {
	desc := &grpc.StreamDesc{StreamName: "AnnouncePeers", ClientStreams: true}
	// taskID sticks the stream to the backend shard owning it; real
	// transports thread it through as routing metadata. Carried here as a
	// documented parameter so callers don't need to know the mechanism.
	stream, err := c.conn.NewStream(ctx, desc, methodAnnouncePeers, grpc.CallContentSubtype(rpccodec.Name))
	if err != nil {
		return nil, err
	}
	return &peersStream{stream: stream}, nil
}

type peersStream struct {
	stream grpc.ClientStream
}

func (s *peersStream) Send(req *AnnouncePeersRequest) error {
	return s.stream.SendMsg(req)
}

func (s *peersStream) CloseAndRecv() error {
	if err := s.stream.CloseSend(); err != nil {
		return err
	}
	var empty struct{}
	return s.stream.RecvMsg(&empty)
}
