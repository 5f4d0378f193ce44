// Package metrics defines and registers all custom Prometheus metrics for
// the StockFlow shell service. Metrics register with the default registry
// on package load through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "stockflow"

// ── Navigation metrics ───────────────────────────────────────────────────────

// AdmissionsTotal counts route guard decisions.
// Labels:
//   - outcome: "admit", "redirect_login" or "redirect_home"
//   - route: the admitted path, or "other" for redirects
var AdmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admissions_total",
		Help:      "Total number of navigation requests evaluated by the route guard.",
	},
	[]string{"outcome", "route"},
)

// ── Session metrics ──────────────────────────────────────────────────────────

// SessionTransitionsTotal counts session state changes.
// Labels:
//   - op: "login", "logout" or "register"
//   - result: "ok" or "error"
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of session login/logout attempts, by result.",
	},
	[]string{"op", "result"},
)

// SessionActive is 1 while a user is bound to the session.
var SessionActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "session_active",
		Help:      "Whether a user is currently signed in (1) or not (0).",
	},
)

// ── Audit metrics ────────────────────────────────────────────────────────────

// AuditEventsTotal counts session audit events by fate.
// Label:
//   - result: "recorded", "failed" or "dropped"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of session audit events, by result.",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks pending audit events per dispatcher worker.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
