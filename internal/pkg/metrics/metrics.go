// Package metrics defines and registers all custom Prometheus metrics for the
// DevCamper API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at package init via
// promauto; HTTP request metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "devcamper"

// ── Authorization metrics ─────────────────────────────────────────────────────

// PolicyDecisionsTotal counts access policy evaluations.
// Labels:
//   - resource: "bootcamp", "course", "review", "user"
//   - action: "create", "update", "delete", "list", ...
//   - outcome: "allow" or "deny"
var PolicyDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "policy_decisions_total",
		Help:      "Total number of access policy decisions, by resource, action and outcome.",
	},
	[]string{"resource", "action", "outcome"},
)

// ── Token metrics ─────────────────────────────────────────────────────────────

// TokensIssuedTotal counts issued credentials.
// Label:
//   - kind: "session" or "reset"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of tokens issued, by kind.",
	},
	[]string{"kind"},
)

// ResetDeliveriesTotal counts reset-token mail deliveries.
// Label:
//   - result: "sent", "failed" (token rolled back)
var ResetDeliveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reset_deliveries_total",
		Help:      "Total number of password reset emails, by delivery result.",
	},
	[]string{"result"},
)

// ResetsConsumedTotal counts password reset attempts.
// Label:
//   - result: "ok" or "invalid"
var ResetsConsumedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resets_consumed_total",
		Help:      "Total number of password reset token submissions, by result.",
	},
	[]string{"result"},
)

// ── Listing metrics ───────────────────────────────────────────────────────────

// BootcampsCreatedTotal counts newly created bootcamps.
// Label:
//   - geocoded: "true" when an address was resolved to a location
var BootcampsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bootcamps_created_total",
		Help:      "Total number of bootcamps created.",
	},
	[]string{"geocoded"},
)
