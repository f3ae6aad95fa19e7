// Package metrics defines and registers all custom Prometheus metrics for the
// supplier-management API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "supplier_api"

// LoginsTotal counts login attempts by outcome.
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

// SupplierRequestsTotal counts supplier request lifecycle events.
// Label:
//   - status: "pending" (created), "approved", "declined"
var SupplierRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "supplier_requests_total",
		Help:      "Total number of supplier request state changes, by status.",
	},
	[]string{"status"},
)
