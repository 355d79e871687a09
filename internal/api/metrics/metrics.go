// Package metrics defines and registers all custom Prometheus metrics for the
// demand desk API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at package init via
// promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "demanddesk"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - outcome: "success", "not_found", or "bad_password"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"outcome"},
)

// DemandsCreatedTotal counts newly submitted demands.
// Label:
//   - category: the demand category as submitted (e.g. "web")
var DemandsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "demands_created_total",
		Help:      "Total number of demands created, by category.",
	},
	[]string{"category"},
)

// StatusTransitionsTotal counts admin status changes that were accepted.
// Label:
//   - to: the status applied (e.g. "en-cours")
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of accepted demand status transitions, by target status.",
	},
	[]string{"to"},
)

// NotifyEventsTotal counts lifecycle events handled by the notification
// dispatcher.
// Labels:
//   - kind: "demand_created" or "status_changed"
//   - result: "ok" or "error"
var NotifyEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notify_events_total",
		Help:      "Total number of lifecycle events processed by the dispatcher.",
	},
	[]string{"kind", "result"},
)
