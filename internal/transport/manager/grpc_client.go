package manager

import (
	"context"

	"github.com/cuemby/scoutd/internal/transport/rpccodec"
	"google.golang.org/grpc"
)

const (
	serviceName          = "scoutd.manager.v1.Manager"
	methodUpdateSeedPeer = "/" + serviceName + "/UpdateSeedPeer"
	methodDeleteSeedPeer = "/" + serviceName + "/DeleteSeedPeer"
)

// grpcClient is the production Client implementation: it invokes the
// Manager's gRPC surface over a caller-owned *grpc.ClientConn, using the
// gob wire codec registered by internal/transport/rpccodec.
type grpcClient struct {
	conn *grpc.ClientConn
}

var _ Client = (*grpcClient)(nil)

// NewGRPCClient wraps an established connection to the manager.
func NewGRPCClient(conn *grpc.ClientConn) Client {
	return &grpcClient{conn: conn}
}

func (c *grpcClient) UpdateSeedPeer(ctx context.Context, req *UpdateSeedPeerRequest) error {
	var empty struct{}
	return c.conn.Invoke(ctx, methodUpdateSeedPeer, req, &empty, grpc.CallContentSubtype(rpccodec.Name))
}

func (c *grpcClient) DeleteSeedPeer(ctx context.Context, req *DeleteSeedPeerRequest) error {
	var empty struct{}
	return c.conn.Invoke(ctx, methodDeleteSeedPeer, req, &empty, grpc.CallContentSubtype(rpccodec.Name))
}
