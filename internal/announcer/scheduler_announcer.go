package announcer

import (
	"context"
	"fmt"
	"time"

	"github.com/cuemby/scoutd/internal/errs"
	"github.com/cuemby/scoutd/internal/idgen"
	"github.com/cuemby/scoutd/internal/lifecycle"
	"github.com/cuemby/scoutd/internal/log"
	"github.com/cuemby/scoutd/internal/metrics"
	"github.com/cuemby/scoutd/internal/model"
	"github.com/cuemby/scoutd/internal/reconciler"
	"github.com/cuemby/scoutd/internal/storage"
	"github.com/cuemby/scoutd/internal/telemetry"
	"github.com/cuemby/scoutd/internal/transport/scheduler"
)

// SchedulerAnnouncer heartbeats the host to the scheduler and keeps
// peer inventory reconciled.
type SchedulerAnnouncer struct {
	Identity         model.HostIdentity
	Client           scheduler.Client
	Shutdown         *lifecycle.Signal
	Drain            *lifecycle.DrainBarrier
	IDGen            idgen.Generator
	Store            storage.Store
	Telemetry        *telemetry.Collector
	AnnounceInterval time.Duration
	TaskTTL          time.Duration
}

// NewSchedulerAnnouncer constructs the announcer and synchronously
// performs init_announce_host followed by the first announce_peers
// reconciliation. Either failure aborts daemon startup, per spec.md §4.3.
func NewSchedulerAnnouncer(ctx context.Context, a SchedulerAnnouncer) (*SchedulerAnnouncer, error) {
	snapshot, err := a.Telemetry.Snapshot(a.Identity)
	if err != nil {
		metrics.TelemetrySnapshotErrorsTotal.Inc()
		return nil, err
	}

	req := announceHostRequest(a.Identity, snapshot, a.AnnounceInterval)
	if err := a.Client.InitAnnounceHost(ctx, req); err != nil {
		return nil, fmt.Errorf("%w: init_announce_host: %v", errs.ErrStartupRPC, err)
	}
	metrics.HostAnnouncesTotal.WithLabelValues("init", "ok").Inc()

	rec := &reconciler.Reconciler{
		HostID:  a.Identity.HostID,
		Client:  a.Client,
		Store:   a.Store,
		IDGen:   a.IDGen,
		TaskTTL: a.TaskTTL,
	}
	if err := rec.Run(ctx); err != nil {
		return nil, err
	}

	return &a, nil
}

// Run is the steady-state loop: a fresh snapshot and announce_host every
// AnnounceInterval, until shutdown fires, at which point delete_host is
// attempted and Run returns. Shutdown preempts a pending tick.
func (a *SchedulerAnnouncer) Run(ctx context.Context) {
	logger := log.WithComponent("scheduler_announcer")
	a.Drain.Acquire()
	defer a.Drain.Release()

	ticker := time.NewTicker(a.AnnounceInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.Shutdown.Done():
			del := &scheduler.DeleteHostRequest{HostID: a.Identity.HostID}
			if err := a.Client.DeleteHost(ctx, del); err != nil {
				logger.Error().Err(err).Msg("delete_host failed during shutdown")
			}
			return

		case <-ticker.C:
			if a.Shutdown.Fired() {
				continue
			}
			snapshot, err := a.Telemetry.Snapshot(a.Identity)
			if err != nil {
				metrics.TelemetrySnapshotErrorsTotal.Inc()
				logger.Error().Err(err).Msg("telemetry snapshot failed, skipping cycle")
				continue
			}
			req := announceHostRequest(a.Identity, snapshot, a.AnnounceInterval)
			if err := a.Client.AnnounceHost(ctx, req); err != nil {
				metrics.HostAnnouncesTotal.WithLabelValues("steady_state", "error").Inc()
				logger.Error().Err(err).Msg("announce_host failed")
				continue
			}
			metrics.HostAnnouncesTotal.WithLabelValues("steady_state", "ok").Inc()
		}
	}
}

func announceHostRequest(identity model.HostIdentity, snapshot *model.HostSnapshot, interval time.Duration) *scheduler.AnnounceHostRequest {
	return &scheduler.AnnounceHostRequest{
		Host: &scheduler.Host{
			ID:              identity.HostID,
			Type:            uint32(identity.Type),
			Hostname:        identity.Hostname,
			IP:              identity.IP,
			Port:            identity.Port,
			DownloadPort:    identity.DownloadPort,
			OS:              identity.OS,
			PlatformFamily:  identity.PlatformFamily,
			KernelVersion:   identity.KernelVersion,
			Cpu: &scheduler.Cpu{
				LogicalCount:   snapshot.Cpu.LogicalCount,
				PhysicalCount:  snapshot.Cpu.PhysicalCount,
				Percent:        snapshot.Cpu.Percent,
				ProcessPercent: snapshot.Cpu.ProcessPercent,
			},
			Memory: &scheduler.Memory{
				Total:              snapshot.Memory.Total,
				Available:          snapshot.Memory.Available,
				Used:               snapshot.Memory.Used,
				Free:               snapshot.Memory.Free,
				UsedPercent:        snapshot.Memory.UsedPercent,
				ProcessUsedPercent: snapshot.Memory.ProcessUsedPercent,
			},
			Network: &scheduler.Network{
				TCPConnectionCount:       snapshot.Network.TCPConnectionCount,
				UploadTCPConnectionCount: snapshot.Network.UploadTCPConnectionCount,
				IDC:                      snapshot.Network.IDC,
				Location:                 snapshot.Network.Location,
			},
			Disk: &scheduler.Disk{
				Total:             snapshot.Disk.Total,
				Free:              snapshot.Disk.Free,
				Used:              snapshot.Disk.Used,
				UsedPercent:       snapshot.Disk.UsedPercent,
				InodesTotal:       snapshot.Disk.InodesTotal,
				InodesUsed:        snapshot.Disk.InodesUsed,
				InodesFree:        snapshot.Disk.InodesFree,
				InodesUsedPercent: snapshot.Disk.InodesUsedPercent,
			},
			Build: &scheduler.Build{
				GitVersion: snapshot.Build.Version,
				GitCommit:  snapshot.Build.Commit,
				GoVersion:  snapshot.Build.GoVersion,
				Platform:   snapshot.Build.Platform,
			},
			SchedulerClusterID: 0,
		},
		Interval: interval,
	}
}
