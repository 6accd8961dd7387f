// Package metrics defines the custom Prometheus metrics for the incident
// tracker. It is the single source of truth for metric names, labels, and
// help strings; counters register themselves with the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "incident"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure" (bad credentials, missing or mismatched organization)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// UsersRegisteredTotal counts accounts created through the API.
// Label:
//   - role: "User", "IT", or "Analyst"
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of accounts registered, by role.",
	},
	[]string{"role"},
)

// AlertsCreatedTotal counts alerts submitted.
var AlertsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alerts_created_total",
		Help:      "Total number of alerts created.",
	},
)

// AlertTransitionsTotal counts workflow transitions applied to alerts.
// Label:
//   - status: the status the alert was advanced to ("Classified", "Reviewed")
var AlertTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alert_transitions_total",
		Help:      "Total number of alert workflow transitions, by target status.",
	},
	[]string{"status"},
)

// TicketsCreatedTotal counts tickets derived from alerts.
var TicketsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tickets_created_total",
		Help:      "Total number of tickets created from alerts.",
	},
)
