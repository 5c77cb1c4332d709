// Package metrics defines and registers the custom Prometheus metrics of the
// warehouse auth service. HTTP request metrics come from the echoprometheus
// middleware; the counters here track authentication and account lifecycle.
//
// All metrics are registered with the default registry on package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "warehouse_auth"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "bad_credentials", "inactive", "invalid" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts accepted self-service registrations.
// Label:
//   - role: the requested role
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of self-service registrations awaiting approval, by role.",
	},
	[]string{"role"},
)

// LifecycleChangesTotal counts accounts whose activation state was set.
// Label:
//   - action: "activate" or "deactivate"
var LifecycleChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lifecycle_changes_total",
		Help:      "Total number of accounts activated or deactivated by administrators.",
	},
	[]string{"action"},
)

// RevocationsTotal counts refresh tokens placed on the revocation list.
var RevocationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refresh_revocations_total",
		Help:      "Total number of refresh tokens revoked by logout.",
	},
)
