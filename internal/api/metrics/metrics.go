// Package metrics defines and registers all custom Prometheus metrics for the
// trip-planner API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry on package init
// through promauto; HTTP request metrics come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tripplanner"

// Result label values shared by the field counters.
const (
	ResultAccepted   = "accepted"
	ResultLocked     = "locked"
	ResultDenied     = "denied"
	ResultInvalid    = "invalid"
	ResultStoreError = "store_error"
)

// ── Field metrics ─────────────────────────────────────────────────────────────

// FieldWritesTotal counts owner write attempts on governed fields.
// Labels:
//   - field: "emergency_info" or "user_role"
//   - result: accepted, locked, denied, invalid, store_error
var FieldWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "field_writes_total",
		Help:      "Total number of owner write attempts on governed fields.",
	},
	[]string{"field", "result"},
)

// OverridesTotal counts admin can_edit toggles.
// Labels:
//   - field: the governed field targeted
//   - result: accepted, denied, store_error
var OverridesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "overrides_total",
		Help:      "Total number of admin override attempts.",
	},
	[]string{"field", "result"},
)

// StoreErrorsTotal counts failed key/value store calls.
// Label:
//   - op: get, upsert, delete, list, subscribe
var StoreErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_errors_total",
		Help:      "Total number of failed key/value store operations.",
	},
	[]string{"op"},
)

// WatchersActive tracks open projection watch streams.
var WatchersActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "watchers_active",
		Help:      "Current number of open field watch streams.",
	},
)

// ChangeEventsDroppedTotal counts change notifications a subscriber missed
// because its buffer was full.
// Label:
//   - source: "memory" or "redis"
var ChangeEventsDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "change_events_dropped_total",
		Help:      "Total number of change notifications dropped on a full subscriber.",
	},
	[]string{"source"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the number of audit events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsTotal counts audit persistence outcomes.
// Labels:
//   - action: write, override, grant_admin, revoke_admin, remove
//   - result: "ok", "error" or "dropped"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of audit events persisted, by action and result.",
	},
	[]string{"action", "result"},
)

// AuditPersistDuration measures how long a single audit insert takes.
var AuditPersistDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_persist_duration_seconds",
		Help:      "Duration of audit event persistence from dequeue to insert.",
		Buckets:   prometheus.DefBuckets,
	},
)
