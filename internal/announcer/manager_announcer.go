// Package announcer implements the two long-running announcer tasks:
// ManagerAnnouncer (seed-peer registration) and SchedulerAnnouncer
// (host heartbeat + peer inventory reconciliation).
package announcer

import (
	"context"
	"fmt"

	"github.com/cuemby/scoutd/internal/errs"
	"github.com/cuemby/scoutd/internal/lifecycle"
	"github.com/cuemby/scoutd/internal/log"
	"github.com/cuemby/scoutd/internal/metrics"
	"github.com/cuemby/scoutd/internal/transport/manager"
)

// SeedPeerConfig carries the fields the ManagerAnnouncer registers and
// later deregisters. Enable gates whether any Manager RPC is issued at
// all.
type SeedPeerConfig struct {
	Enable     bool
	SourceType manager.SourceType
	Hostname   string
	Type       string
	IDC        string
	Location   string
	IP         string
	Port       int32
	DownloadPort int32
	ClusterID  uint64
}

// ManagerAnnouncer registers this host as a seed peer at startup and
// deregisters it on shutdown. State machine: Registered <- Init ->
// Unregistered; no retries, no republication.
type ManagerAnnouncer struct {
	Config   SeedPeerConfig
	Client   manager.Client
	Shutdown *lifecycle.Signal
	Drain    *lifecycle.DrainBarrier
}

// Run is the single entry point: it blocks until shutdown. If seed-peer
// registration is disabled, no Manager RPC is ever issued.
func (a *ManagerAnnouncer) Run(ctx context.Context) error {
	logger := log.WithComponent("manager_announcer")
	a.Drain.Acquire()
	defer a.Drain.Release()

	if !a.Config.Enable {
		<-a.Shutdown.Done()
		return nil
	}

	req := &manager.UpdateSeedPeerRequest{
		SourceType:   a.Config.SourceType,
		Hostname:     a.Config.Hostname,
		Type:         a.Config.Type,
		IDC:          a.Config.IDC,
		Location:     a.Config.Location,
		IP:           a.Config.IP,
		Port:         a.Config.Port,
		DownloadPort: a.Config.DownloadPort,
		ClusterID:    a.Config.ClusterID,
	}
	if err := a.Client.UpdateSeedPeer(ctx, req); err != nil {
		metrics.SeedPeerRegistrationsTotal.WithLabelValues("update", "error").Inc()
		return fmt.Errorf("%w: update_seed_peer: %v", errs.ErrStartupRPC, err)
	}
	metrics.SeedPeerRegistrationsTotal.WithLabelValues("update", "ok").Inc()

	<-a.Shutdown.Done()

	del := &manager.DeleteSeedPeerRequest{
		SourceType: a.Config.SourceType,
		Hostname:   a.Config.Hostname,
		IP:         a.Config.IP,
		ClusterID:  a.Config.ClusterID,
	}
	if err := a.Client.DeleteSeedPeer(ctx, del); err != nil {
		logger.Error().Err(err).Msg("delete_seed_peer failed during shutdown")
		metrics.SeedPeerRegistrationsTotal.WithLabelValues("delete", "error").Inc()
		return nil
	}
	metrics.SeedPeerRegistrationsTotal.WithLabelValues("delete", "ok").Inc()
	return nil
}
