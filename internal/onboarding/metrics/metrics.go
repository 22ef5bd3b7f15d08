package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks onboarding flag persistence behavior. The write-verify
// retry and fail-closed counters are the ones worth alerting on: sustained
// growth means the backing store is misbehaving.
type Metrics struct {
	Completions     prometheus.Counter
	CompletionFails prometheus.Counter
	WriteRetries    prometheus.Counter
	FailClosedReads prometheus.Counter
	Resets          prometheus.Counter
}

// New creates the onboarding metrics registered against reg. Production code
// passes prometheus.DefaultRegisterer; tests pass a fresh registry so
// repeated construction does not collide.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Completions: factory.NewCounter(prometheus.CounterOpts{
			Name: "cardspace_onboarding_completions_total",
			Help: "Successful onboarding completion writes",
		}),
		CompletionFails: factory.NewCounter(prometheus.CounterOpts{
			Name: "cardspace_onboarding_completion_failures_total",
			Help: "Completion writes that failed for both keys after retry",
		}),
		WriteRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "cardspace_onboarding_write_retries_total",
			Help: "Write pairs retried after a failed verification read-back",
		}),
		FailClosedReads: factory.NewCounter(prometheus.CounterOpts{
			Name: "cardspace_onboarding_fail_closed_reads_total",
			Help: "Status reads that failed closed after exhausting retries",
		}),
		Resets: factory.NewCounter(prometheus.CounterOpts{
			Name: "cardspace_onboarding_resets_total",
			Help: "Debug resets of onboarding status",
		}),
	}
}
