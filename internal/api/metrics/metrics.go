// Package metrics defines and registers all custom Prometheus metrics for the
// maturity assessment API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation (promauto) and exposed on /metrics by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "maturity"

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditEventsTotal counts audit entries accepted by the recorder.
// Label:
//   - event_type: "visit", "login", "login_failed", "logout", "code_validation"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of audit entries recorded, by event type.",
	},
	[]string{"event_type"},
)

// AuditWriteErrorsTotal counts audit entries that could not be persisted.
var AuditWriteErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_write_errors_total",
		Help:      "Total number of audit entries dropped because persistence failed.",
	},
)

// AuditQueueDepth tracks entries waiting to be written.
var AuditQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in the dispatcher queue.",
	},
)

// ── Assessment metrics ────────────────────────────────────────────────────────

// CodeValidationsTotal counts assessment code validation attempts.
// Label:
//   - result: "valid", "not_found", "inactive", "expired", "exhausted", "invalid", "error"
var CodeValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "code_validations_total",
		Help:      "Total number of assessment code validation attempts, by result.",
	},
	[]string{"result"},
)

// SessionsCompletedTotal counts assessment sessions that reached completion.
var SessionsCompletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assessment_sessions_completed_total",
		Help:      "Total number of completed assessment sessions.",
	},
)

// ── Lead capture & hours ──────────────────────────────────────────────────────

// OrganizationRequestsTotal counts lead-capture submissions.
// Label:
//   - request_type: "demo", "assessment", "consultation", "other"
var OrganizationRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "organization_requests_total",
		Help:      "Total number of organization requests submitted, by request type.",
	},
	[]string{"request_type"},
)

// HoursLoggedTotal sums hours recorded in the client hours module.
var HoursLoggedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "hours_logged_total",
		Help:      "Total number of consultant hours logged.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
