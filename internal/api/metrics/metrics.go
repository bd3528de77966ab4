// Package metrics defines and registers all custom Prometheus metrics for the
// HR workforce service. It is the single source of truth for metric names,
// labels, and help strings. Metrics register themselves with the default
// registry at init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hr"

// ── Outbox metrics ────────────────────────────────────────────────────────────

// OutboxPublishedTotal counts events successfully delivered downstream.
// Label:
//   - event_type: the event type (e.g. "employee.verified")
var OutboxPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "outbox_published_total",
		Help:      "Total number of outbox events successfully published.",
	},
	[]string{"event_type"},
)

// OutboxPublishErrorsTotal counts delivery attempts that failed. The event
// stays unpublished and is retried on the next poll.
// Label:
//   - event_type: the event type
var OutboxPublishErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "outbox_publish_errors_total",
		Help:      "Total number of failed outbox publish attempts.",
	},
	[]string{"event_type"},
)

// OutboxBatchSize tracks how many events each poll picked up. A batch pinned
// at the configured limit means the dispatcher is falling behind.
var OutboxBatchSize = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "outbox_batch_size",
		Help:      "Number of unpublished events fetched per dispatcher poll.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
	},
)

// OutboxCleanupDeletedTotal counts published events removed by retention cleanup.
var OutboxCleanupDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "outbox_cleanup_deleted_total",
		Help:      "Total number of published outbox events removed by retention cleanup.",
	},
)

// ── Verification metrics ──────────────────────────────────────────────────────

// VerificationTransitionsTotal counts verification state transitions.
// Label:
//   - to: the status entered by the transition (e.g. "verified")
var VerificationTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verification_transitions_total",
		Help:      "Total number of verification state transitions, by resulting status.",
	},
	[]string{"to"},
)

// ── Employee metrics ──────────────────────────────────────────────────────────

// EmployeesCreatedTotal counts newly created employee records.
var EmployeesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "employees_created_total",
		Help:      "Total number of employee records created.",
	},
)

// ── Role metrics ──────────────────────────────────────────────────────────────

// RoleAssignmentsTotal counts role grants.
// Label:
//   - role: the role code assigned (e.g. "MANAGER")
var RoleAssignmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_assignments_total",
		Help:      "Total number of role assignments, by role code.",
	},
	[]string{"role"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
