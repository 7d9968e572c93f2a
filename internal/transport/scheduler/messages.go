// Package scheduler defines the wire contract, hash-ring-backed shard
// router, and client interface for the Scheduler control plane. Scheduler
// instances are external collaborators sharded by consistent hashing over
// task-id prefixes; this package stipulates the RPC surface and owns the
// ring the reconciler consumes a read-locked snapshot of.
package scheduler

import "time"

// Cpu is the wire form of model.Cpu.
type Cpu struct {
	LogicalCount   uint32
	PhysicalCount  uint32
	Percent        float64
	ProcessPercent float64
}

// Memory is the wire form of model.Memory.
type Memory struct {
	Total              uint64
	Available          uint64
	Used               uint64
	Free               uint64
	UsedPercent        float64
	ProcessUsedPercent float64
}

// Disk is the wire form of model.Disk.
type Disk struct {
	Total             uint64
	Free              uint64
	Used              uint64
	UsedPercent       float64
	InodesTotal       uint64
	InodesUsed        uint64
	InodesFree        uint64
	InodesUsedPercent float64
}

// Network is the wire form of model.Network.
type Network struct {
	TCPConnectionCount       uint32
	UploadTCPConnectionCount uint32
	IDC                      string
	Location                 string
}

// Build is the wire form of model.Build.
type Build struct {
	GitVersion string
	GitCommit  string
	GoVersion  string
	Platform   string
}

// Host is the wire form of a HostIdentity + resource vector, exactly as
// sent to the scheduler. scheduler_cluster_id is always reported as 0 —
// spec.md §4.1/§9 notes it is unimplemented upstream of this core.
type Host struct {
	ID                 string
	Type               uint32
	Hostname           string
	IP                 string
	Port               int32
	DownloadPort       int32
	OS                 string
	Platform           string
	PlatformFamily     string
	PlatformVersion    string
	KernelVersion      string
	Cpu                *Cpu
	Memory             *Memory
	Network            *Network
	Disk               *Disk
	Build              *Build
	SchedulerClusterID uint32
}

// AnnounceHostRequest is sent by init_announce_host and announce_host.
type AnnounceHostRequest struct {
	Host     *Host
	Interval time.Duration
}

// Task is the task header embedded in a Peer announcement — deliberately a
// subset of model.Task (no timestamps): the scheduler only needs identity
// and sizing to route and account for the task.
type Task struct {
	ID            string
	PieceLength   int64
	ContentLength int64
}

// Piece is the wire form of model.Piece.
type Piece struct {
	Number   uint32
	ParentID string
	Offset   uint64
	Length   uint64
	Digest   string
}

// Peer is an announcement record: a task header, its pieces, and a
// reference to the local host.
type Peer struct {
	ID     string
	Task   *Task
	Pieces []*Piece
	Host   *Host
}

// AnnouncePeersRequest is one frame of the announce_peers stream. Frames
// are capped at 10 peers (spec.md §4.4).
type AnnouncePeersRequest struct {
	Peers []*Peer
}

// DeleteHostRequest deletes a host row from a scheduler.
type DeleteHostRequest struct {
	HostID string
}

// DeleteTaskRequest evicts one task for this host from a scheduler.
type DeleteTaskRequest struct {
	HostID string
	TaskID string
}
