// Package metrics declares the portal gateway's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "supplier_portal"

var (
	// LoginsTotal counts portal login attempts by result.
	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Portal login attempts partitioned by result.",
	}, []string{"result"})

	// GuardRedirectsTotal counts requests the route guard turned away.
	GuardRedirectsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_redirects_total",
		Help:      "Route guard redirects partitioned by reason.",
	}, []string{"reason"})

	// PollsTotal counts notification poll cycles by result.
	PollsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_polls_total",
		Help:      "Notification badge poll cycles partitioned by result.",
	}, []string{"result"})

	// SessionsDestroyedTotal counts destroyed sessions by cause.
	SessionsDestroyedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_destroyed_total",
		Help:      "Sessions destroyed partitioned by cause.",
	}, []string{"cause"})
)
