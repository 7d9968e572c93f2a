// Package model holds the process-internal representation of hosts, tasks
// and pieces. These types are distinct from the wire messages in
// internal/transport: they are what the reconciler and telemetry collector
// read from storage and build into announcements, not what travels over
// gRPC.
package model

import "time"

// HostType mirrors the wire-level host type enum. Values are stable across
// the process lifetime once chosen at daemon start.
type HostType uint32

const (
	HostTypeNormal HostType = iota
	HostTypeSuperSeed
	HostTypeStrongSeed
	HostTypeWeakSeed
)

func (t HostType) String() string {
	switch t {
	case HostTypeSuperSeed:
		return "super_seed"
	case HostTypeStrongSeed:
		return "strong_seed"
	case HostTypeWeakSeed:
		return "weak_seed"
	default:
		return "normal"
	}
}

// HostIdentity is constant for the process lifetime: created once at daemon
// start, read by every announcer and the telemetry collector.
type HostIdentity struct {
	HostID         string
	Hostname       string
	IP             string
	IDC            string
	Location       string
	Port           int32
	DownloadPort   int32
	OS             string
	PlatformFamily string
	KernelVersion  string
	Type           HostType
}

// Cpu is the CPU slice of a HostSnapshot.
type Cpu struct {
	LogicalCount   uint32
	PhysicalCount  uint32
	Percent        float64
	ProcessPercent float64
}

// Memory is the memory slice of a HostSnapshot.
type Memory struct {
	Total              uint64
	Available          uint64
	Used               uint64
	Free               uint64
	UsedPercent        float64
	ProcessUsedPercent float64
}

// Disk is the disk slice of a HostSnapshot, sampled against the storage
// directory.
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

// Network is the network slice of a HostSnapshot.
type Network struct {
	IDC                     string
	Location                string
	TCPConnectionCount      uint32
	UploadTCPConnectionCount uint32
}

// Build carries version/commit/compiler information into the wire message.
type Build struct {
	Version        string
	Commit         string
	GoVersion      string
	Platform       string
}

// HostSnapshot is HostIdentity plus a freshly sampled resource vector. It
// lives for exactly one announcement cycle and is never persisted.
type HostSnapshot struct {
	Identity HostIdentity
	Cpu      Cpu
	Memory   Memory
	Disk     Disk
	Network  Network
	Build    Build
}

// Task is owned by external storage; the core only reads it.
type Task struct {
	ID            string
	PieceLength   int64
	ContentLength int64 // -1 when unknown
	CreatedAt     time.Time
	FinishedAt    *time.Time
}

// IsFinished reports whether the task has a finish timestamp.
func (t Task) IsFinished() bool {
	return t.FinishedAt != nil
}

// IsExpired reports whether the task finished more than ttl ago. An
// unfinished task is never "expired" by this predicate alone — callers must
// also check IsFinished, matching spec.md's "expired OR not finished"
// eviction condition.
func (t Task) IsExpired(now time.Time, ttl time.Duration) bool {
	if t.FinishedAt == nil {
		return false
	}
	return now.Sub(*t.FinishedAt) > ttl
}

// Piece belongs to exactly one Task.
type Piece struct {
	Number   uint32
	ParentID string
	Offset   uint64
	Length   uint64
	Digest   string
}
