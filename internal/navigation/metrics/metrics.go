package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks post-auth navigation decisions. IdentityWaitExhausted is the
// one worth alerting on: it means signed-in users are being bounced back to
// sign-in because their identity never propagated.
type Metrics struct {
	Decisions             *prometheus.CounterVec
	IdentityWaitAttempts  prometheus.Histogram
	IdentityWaitExhausted prometheus.Counter
	FailOpenDecisions     prometheus.Counter
}

// New creates the navigation metrics registered against reg. Production code
// passes prometheus.DefaultRegisterer; tests pass a fresh registry so
// repeated construction does not collide.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cardspace_navigation_decisions_total",
			Help: "Post-auth navigation decisions by kind",
		}, []string{"kind"}),
		IdentityWaitAttempts: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "cardspace_navigation_identity_wait_attempts",
			Help:    "Identity poll attempts used per decision",
			Buckets: prometheus.LinearBuckets(0, 1, 11),
		}),
		IdentityWaitExhausted: factory.NewCounter(prometheus.CounterOpts{
			Name: "cardspace_navigation_identity_wait_exhausted_total",
			Help: "Decisions that exhausted the identity wait budget",
		}),
		FailOpenDecisions: factory.NewCounter(prometheus.CounterOpts{
			Name: "cardspace_navigation_fail_open_total",
			Help: "Decisions that failed open to onboarding after an unexpected error",
		}),
	}
}
