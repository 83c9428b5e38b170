// Package metrics defines and registers all custom Prometheus metrics for
// the task-tracker API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register themselves with the default
// registry via promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tasktracker"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignInsTotal counts sign-in attempts.
// Labels:
//   - method: "credentials" or the OAuth provider name (e.g. "google")
//   - outcome: "ok", "denied", or "error"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of sign-in attempts, labelled by method and outcome.",
	},
	[]string{"method", "outcome"},
)

// RegistrationsTotal counts successful credential registrations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successful credential registrations.",
	},
)

// ReconcilesTotal counts OAuth reconciliation attempts.
// Label:
//   - outcome: "ok" (permitted), "denied", or "error"
var ReconcilesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "oauth_reconciles_total",
		Help:      "Total number of OAuth reconciliation attempts, labelled by outcome.",
	},
	[]string{"outcome"},
)

// LinkAnomaliesTotal counts sign-ins where the provider account link pointed
// at a different identity than the one resolved by email. These permit the
// sign-in against the linked owner but need operator inspection.
var LinkAnomaliesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "oauth_link_anomalies_total",
		Help:      "Total number of account links found bound to a different identity.",
	},
)

// RoleBackfillsTotal counts role claim backfills performed on tokens minted
// without a role.
// Label:
//   - result: "ok" or "error"
var RoleBackfillsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_backfills_total",
		Help:      "Total number of session token role backfills, labelled by result.",
	},
	[]string{"result"},
)
