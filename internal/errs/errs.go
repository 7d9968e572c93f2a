// Package errs defines the sentinel error kinds from the announcer's error
// handling design: which failures abort startup and which are logged and
// swallowed. Call sites wrap one of these with fmt.Errorf("...: %w", Err...)
// so errors.Is drives the policy.
package errs

import "errors"

var (
	// ErrStartupRPC marks a Manager update_seed_peer or scheduler
	// init_announce_host failure. Daemon startup aborts.
	ErrStartupRPC = errors.New("startup rpc failed")

	// ErrReconciliation marks a get_tasks failure or a missing hash-ring
	// route. Daemon startup aborts.
	ErrReconciliation = errors.New("reconciliation failed")

	// ErrHashRing marks a task whose route key has no entry in the ring
	// snapshot.
	ErrHashRing = errors.New("task id has no scheduler in hash ring")

	// ErrSendTimeout marks a stream-chunk send that exceeded
	// REQUEST_TIMEOUT. announce_peers detaches remaining work and returns
	// success when it sees this.
	ErrSendTimeout = errors.New("send timeout")

	// ErrResource marks a telemetry snapshot failure (e.g. disk usage
	// sampling). The caller skips the cycle.
	ErrResource = errors.New("resource sampling failed")
)
