// Package reconciler implements the Peer Inventory Reconciler: scans
// local task storage, shards tasks across scheduler endpoints by a
// rendezvous-hashed route key, and streams peer announcements with
// bounded fan-out.
package reconciler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cuemby/scoutd/internal/errs"
	"github.com/cuemby/scoutd/internal/idgen"
	"github.com/cuemby/scoutd/internal/log"
	"github.com/cuemby/scoutd/internal/metrics"
	"github.com/cuemby/scoutd/internal/model"
	"github.com/cuemby/scoutd/internal/storage"
	"github.com/cuemby/scoutd/internal/transport/scheduler"
	"golang.org/x/sync/semaphore"
)

const (
	// maxConcurrentStreams bounds in-flight AnnouncePeers RPCs.
	maxConcurrentStreams = 5
	// peersPerFrame bounds the size of a single AnnouncePeersRequest.
	peersPerFrame = 10
)

// RequestTimeout bounds a single stream-frame send. Exported so callers
// (and tests) can override it; spec default is 10s.
var RequestTimeout = 10 * time.Second

// Reconciler runs one announce_peers pass over local inventory.
type Reconciler struct {
	HostID  string
	Client  scheduler.Client
	Store   storage.Store
	IDGen   idgen.Generator
	TaskTTL time.Duration
}

// Run executes a single reconciliation pass. It returns an error only
// for the two startup-aborting conditions in spec.md §7:
// get_tasks failing, or a task's route key missing from the ring.
func (r *Reconciler) Run(ctx context.Context) error {
	logger := log.WithComponent("reconciler")
	timer := metrics.NewTimer()
	defer timer.ObserveDuration(metrics.ReconciliationDuration)
	defer metrics.ReconciliationCyclesTotal.Inc()

	ringSnapshot := r.Client.Ring().Snapshot()

	tasks, err := r.Store.GetTasks()
	if err != nil {
		return fmt.Errorf("%w: get_tasks: %v", errs.ErrReconciliation, err)
	}

	now := time.Now()
	buckets := make(map[string][]*scheduler.Peer)

	for _, task := range tasks {
		if task.IsExpired(now, r.TaskTTL) || !task.IsFinished() {
			if err := r.Client.DeleteTask(ctx, &scheduler.DeleteTaskRequest{HostID: r.HostID, TaskID: task.ID}); err != nil {
				logger.Error().Err(err).Str("task_id", task.ID).Msg("delete_task failed")
			} else {
				metrics.TasksEvictedTotal.Inc()
			}
			continue
		}

		pieces, err := r.Store.GetPieces(task.ID)
		if err != nil {
			logger.Error().Err(err).Str("task_id", task.ID).Msg("get_pieces failed, treating as empty")
			pieces = nil
		}

		peer := buildPeer(r.IDGen.PeerID(), r.HostID, task, pieces)

		routeKey := task.ID
		if len(routeKey) > scheduler.RouteKeyLength {
			routeKey = routeKey[:scheduler.RouteKeyLength]
		}
		endpoint, ok := ringSnapshot.Lookup(routeKey)
		if !ok {
			return fmt.Errorf("%w: %w: route key %q for task %s not covered by ring", errs.ErrReconciliation, errs.ErrHashRing, routeKey, task.ID)
		}

		buckets[endpoint] = append(buckets[endpoint], peer)
	}

	return r.announceBuckets(ctx, buckets)
}

func buildPeer(peerID, hostID string, task model.Task, pieces []model.Piece) *scheduler.Peer {
	wirePieces := make([]*scheduler.Piece, 0, len(pieces))
	for _, p := range pieces {
		wirePieces = append(wirePieces, &scheduler.Piece{
			Number:   p.Number,
			ParentID: p.ParentID,
			Offset:   p.Offset,
			Length:   p.Length,
			Digest:   p.Digest,
		})
	}
	return &scheduler.Peer{
		ID: peerID,
		Task: &scheduler.Task{
			ID:            task.ID,
			PieceLength:   task.PieceLength,
			ContentLength: task.ContentLength,
		},
		Pieces: wirePieces,
		Host:   &scheduler.Host{ID: hostID},
	}
}

// announceBuckets fans out one AnnouncePeersRequest-stream per scheduler
// endpoint bucket, capped at maxConcurrentStreams in flight. On the
// first SendTimeout observed, it stops waiting on the remaining
// in-flight streams — they keep running against the buffered result
// channel, but the reconciliation itself reports success, per spec.md
// §4.4's detach-all-on-timeout escape hatch.
func (r *Reconciler) announceBuckets(ctx context.Context, buckets map[string][]*scheduler.Peer) error {
	logger := log.WithComponent("reconciler")
	sem := semaphore.NewWeighted(maxConcurrentStreams)
	results := make(chan error, len(buckets))

	for endpoint, peers := range buckets {
		endpoint, peers := endpoint, peers
		if err := sem.Acquire(ctx, 1); err != nil {
			results <- err
			continue
		}
		go func() {
			defer sem.Release(1)
			results <- r.announceOne(ctx, endpoint, peers)
		}()
	}

	detached := false
	for i := 0; i < len(buckets); i++ {
		if detached {
			break
		}
		err := <-results
		switch {
		case err == nil:
		case errors.Is(err, errs.ErrSendTimeout):
			metrics.SendTimeoutsTotal.Inc()
			logger.Warn().Msg("send timeout, detaching remaining announcements")
			detached = true
		default:
			logger.Error().Err(err).Msg("per-task announce error")
		}
	}

	return nil
}

// announceOne streams one endpoint's peer bucket in frames of
// peersPerFrame, each bounded by RequestTimeout.
func (r *Reconciler) announceOne(ctx context.Context, endpoint string, peers []*scheduler.Peer) error {
	if len(peers) == 0 || peers[0].Task == nil {
		return nil
	}

	stream, err := r.Client.AnnouncePeers(ctx, peers[0].Task.ID)
	if err != nil {
		return err
	}
	metrics.SchedulerStreamsActive.Inc()
	defer metrics.SchedulerStreamsActive.Dec()

	for start := 0; start < len(peers); start += peersPerFrame {
		end := start + peersPerFrame
		if end > len(peers) {
			end = len(peers)
		}
		frame := &scheduler.AnnouncePeersRequest{Peers: peers[start:end]}

		sendCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
		err := sendWithTimeout(sendCtx, stream, frame)
		cancel()
		if err != nil {
			return err
		}
		metrics.PeersAnnouncedTotal.Add(float64(len(frame.Peers)))
	}

	return stream.CloseAndRecv()
}

func sendWithTimeout(ctx context.Context, stream scheduler.PeersStream, frame *scheduler.AnnouncePeersRequest) error {
	done := make(chan error, 1)
	go func() {
		done <- stream.Send(frame)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return errs.ErrSendTimeout
	}
}
