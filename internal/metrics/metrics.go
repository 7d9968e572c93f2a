// Package metrics declares the Prometheus instruments the announcer core
// publishes. Collectors are package-level vars registered against the
// default registry, following the convention used by the rest of this
// codebase's control-plane components.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HostAnnouncesTotal counts announce_host/init_announce_host RPCs by
	// outcome.
	HostAnnouncesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scoutd_host_announces_total",
			Help: "Total number of host announcements to the scheduler, by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	SeedPeerRegistrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scoutd_seed_peer_registrations_total",
			Help: "Total number of seed peer register/deregister calls to the manager, by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	ReconciliationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scoutd_reconciliation_duration_seconds",
			Help:    "Duration of a full peer inventory reconciliation cycle",
			Buckets: prometheus.DefBuckets,
		},
	)

	ReconciliationCyclesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scoutd_reconciliation_cycles_total",
			Help: "Total number of completed reconciliation cycles",
		},
	)

	TasksEvictedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scoutd_tasks_evicted_total",
			Help: "Total number of tasks evicted from the scheduler during reconciliation",
		},
	)

	PeersAnnouncedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scoutd_peers_announced_total",
			Help: "Total number of peers included in AnnouncePeersRequest frames",
		},
	)

	SchedulerStreamsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "scoutd_scheduler_streams_active",
			Help: "Number of in-flight announce_peers streams",
		},
	)

	SendTimeoutsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scoutd_send_timeouts_total",
			Help: "Total number of stream-chunk sends that exceeded REQUEST_TIMEOUT",
		},
	)

	TelemetrySnapshotErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scoutd_telemetry_snapshot_errors_total",
			Help: "Total number of failed host telemetry snapshots",
		},
	)
)

func init() {
	prometheus.MustRegister(
		HostAnnouncesTotal,
		SeedPeerRegistrationsTotal,
		ReconciliationDuration,
		ReconciliationCyclesTotal,
		TasksEvictedTotal,
		PeersAnnouncedTotal,
		SchedulerStreamsActive,
		SendTimeoutsTotal,
		TelemetrySnapshotErrorsTotal,
	)
}

// Timer measures an operation's duration and reports it to a histogram on
// completion, mirroring the collector/timer convention this codebase's
// other metrics-producing packages use.
type Timer struct {
	start time.Time
}

// NewTimer starts a timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the elapsed time since NewTimer into h.
func (t *Timer) ObserveDuration(h prometheus.Histogram) {
	h.Observe(time.Since(t.start).Seconds())
}
