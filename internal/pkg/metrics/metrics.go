// Package metrics defines and registers the custom Prometheus metrics of the
// workshop API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default registry on package init through
// promauto; HTTP request metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "workshop"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register/login/verify outcomes.
// Labels:
//   - operation: "register", "login" or "verify"
//   - result: "success" or a short failure reason (e.g. "bad_credentials", "expired")
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by operation and result.",
	},
	[]string{"operation", "result"},
)

// ── Work order metrics ────────────────────────────────────────────────────────

// WorkordersCreatedTotal counts newly created work orders.
// Label:
//   - replay: "true" when an Idempotency-Key matched an earlier create
var WorkordersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "workorders_created_total",
		Help:      "Total number of work order create requests, by idempotent replay.",
	},
	[]string{"replay"},
)

// StatusChangesTotal counts status writes on work orders and tasks.
// Labels:
//   - entity: "workorder" or "task"
//   - status: the canonical status written
var StatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_changes_total",
		Help:      "Total number of status updates, by entity and new status.",
	},
	[]string{"entity", "status"},
)

// IdempotencyLookupsTotal counts idempotency store decisions.
// Label:
//   - result: "hit", "miss" or "error"
var IdempotencyLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotency_lookups_total",
		Help:      "Total number of idempotency key lookups, by result.",
	},
	[]string{"result"},
)

// ── Activity metrics ──────────────────────────────────────────────────────────

// ActivityQueueDepth tracks the number of activities waiting in each worker channel.
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activities pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityDroppedTotal counts activities discarded because a worker channel was full.
var ActivityDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_dropped_total",
		Help:      "Total number of activities dropped on a full dispatcher queue.",
	},
)

// ActivityProcessingDuration measures how long persisting one activity takes.
// Label:
//   - result: "ok" or "error"
var ActivityProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "activity_processing_duration_seconds",
		Help:      "Duration of activity processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
