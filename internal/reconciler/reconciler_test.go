package reconciler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cuemby/scoutd/internal/errs"
	"github.com/cuemby/scoutd/internal/idgen"
	"github.com/cuemby/scoutd/internal/model"
	"github.com/cuemby/scoutd/internal/storage"
	"github.com/cuemby/scoutd/internal/transport/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStream records every frame sent, optionally delaying to exercise the
// SendTimeout path.
type fakeStream struct {
	mu     sync.Mutex
	frames []*scheduler.AnnouncePeersRequest
	delay  time.Duration
	sendErr error
}

func (s *fakeStream) Send(req *scheduler.AnnouncePeersRequest) error {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.sendErr != nil {
		return s.sendErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, req)
	return nil
}

func (s *fakeStream) CloseAndRecv() error { return nil }

// fakeClient is a minimal scheduler.Client double.
type fakeClient struct {
	ring         *scheduler.Ring
	deletedTasks []string
	streams      map[string]*fakeStream
	streamDelay  time.Duration
	mu           sync.Mutex
}

func newFakeClient(endpoints []string) *fakeClient {
	r := scheduler.NewRing()
	r.SetEndpoints(endpoints)
	return &fakeClient{ring: r, streams: make(map[string]*fakeStream)}
}

func (c *fakeClient) InitAnnounceHost(ctx context.Context, req *scheduler.AnnounceHostRequest) error {
	return nil
}
func (c *fakeClient) AnnounceHost(ctx context.Context, req *scheduler.AnnounceHostRequest) error {
	return nil
}
func (c *fakeClient) DeleteHost(ctx context.Context, req *scheduler.DeleteHostRequest) error {
	return nil
}
func (c *fakeClient) DeleteTask(ctx context.Context, req *scheduler.DeleteTaskRequest) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletedTasks = append(c.deletedTasks, req.TaskID)
	return nil
}
func (c *fakeClient) Ring() *scheduler.Ring { return c.ring }

func (c *fakeClient) AnnouncePeers(ctx context.Context, taskID string) (scheduler.PeersStream, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := &fakeStream{delay: c.streamDelay}
	c.streams[taskID] = s
	return s, nil
}

func finishedAt(d time.Duration) *time.Time {
	t := time.Now().Add(-d)
	return &t
}

func TestRunSkipsUnfinishedAndExpiredTasks(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.PutTask(model.Task{ID: "aaaaa-unfinished"}))
	require.NoError(t, store.PutTask(model.Task{ID: "bbbbb-expired", FinishedAt: finishedAt(2 * time.Hour)}))
	require.NoError(t, store.PutTask(model.Task{ID: "ccccc-fresh", FinishedAt: finishedAt(time.Minute)}))

	client := newFakeClient([]string{"s-a:8002"})
	rec := &Reconciler{
		HostID:  "host-1",
		Client:  client,
		Store:   store,
		IDGen:   &idgen.Fixed{Host: "host-1", Peers: []string{"peer-1"}},
		TaskTTL: time.Hour,
	}

	err := rec.Run(context.Background())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"aaaaa-unfinished", "bbbbb-expired"}, client.deletedTasks)
	assert.Contains(t, client.streams, "ccccc-fresh")
}

func TestRunFailsWhenRingMissesRouteKey(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.PutTask(model.Task{ID: "aaaaa-fresh", FinishedAt: finishedAt(time.Minute)}))

	client := newFakeClient(nil) // empty ring: nothing is covered
	rec := &Reconciler{
		HostID:  "host-1",
		Client:  client,
		Store:   store,
		IDGen:   &idgen.Fixed{Host: "host-1", Peers: []string{"peer-1"}},
		TaskTTL: time.Hour,
	}

	err := rec.Run(context.Background())
	assert.Error(t, err)
}

func TestRunFailsOnTaskIDShorterThanRouteKeyLength(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.PutTask(model.Task{ID: "abcd", FinishedAt: finishedAt(time.Minute)}))

	client := newFakeClient([]string{"s-a:8002"}) // populated ring: still must miss
	rec := &Reconciler{
		HostID:  "host-1",
		Client:  client,
		Store:   store,
		IDGen:   &idgen.Fixed{Host: "host-1", Peers: []string{"peer-1"}},
		TaskTTL: time.Hour,
	}

	err := rec.Run(context.Background())
	assert.ErrorIs(t, err, errs.ErrHashRing)
}

func TestAnnounceOneChunksPeersIntoFramesOfTen(t *testing.T) {
	client := newFakeClient([]string{"s-a:8002"})
	rec := &Reconciler{HostID: "host-1", Client: client}

	peers := make([]*scheduler.Peer, 25)
	for i := range peers {
		peers[i] = &scheduler.Peer{ID: "p", Task: &scheduler.Task{ID: "aaaaa"}}
	}

	err := rec.announceOne(context.Background(), "s-a:8002", peers)
	require.NoError(t, err)

	stream := client.streams["aaaaa"]
	require.NotNil(t, stream)
	assert.Len(t, stream.frames, 3) // 10 + 10 + 5
	for _, frame := range stream.frames[:2] {
		assert.Len(t, frame.Peers, peersPerFrame)
	}
	assert.Len(t, stream.frames[2].Peers, 5)
}

func TestAnnounceOneReturnsSendTimeoutOnSlowSend(t *testing.T) {
	origTimeout := RequestTimeout
	RequestTimeout = 10 * time.Millisecond
	defer func() { RequestTimeout = origTimeout }()

	client := newFakeClient([]string{"s-a:8002"})
	client.streamDelay = 50 * time.Millisecond
	rec := &Reconciler{HostID: "host-1", Client: client}

	peers := []*scheduler.Peer{{ID: "p", Task: &scheduler.Task{ID: "aaaaa"}}}

	err := rec.announceOne(context.Background(), "s-a:8002", peers)
	assert.ErrorIs(t, err, errs.ErrSendTimeout)
}
